package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Quality QualityConfig `yaml:"quality" mapstructure:"quality"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the two input workbooks.
type DataConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	EventsFile string `yaml:"events_file" mapstructure:"events_file"`
	AlertsFile string `yaml:"alerts_file" mapstructure:"alerts_file"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
}

// EventsPath resolves the events workbook location. Absolute file
// names bypass the data dir.
func (d DataConfig) EventsPath() string {
	if filepath.IsAbs(d.EventsFile) {
		return d.EventsFile
	}
	return filepath.Join(d.Dir, d.EventsFile)
}

// AlertsPath resolves the alerts workbook location.
func (d DataConfig) AlertsPath() string {
	if filepath.IsAbs(d.AlertsFile) {
		return d.AlertsFile
	}
	return filepath.Join(d.Dir, d.AlertsFile)
}

// QualityConfig bounds the plausibility checks applied during
// normalization. Dates outside [min_year, current year + max_year_slack]
// and coordinates outside the easting/northing window are flagged.
type QualityConfig struct {
	MinYear      int     `yaml:"min_year" mapstructure:"min_year"`
	MaxYearSlack int     `yaml:"max_year_slack" mapstructure:"max_year_slack"`
	EastMin      float64 `yaml:"east_min" mapstructure:"east_min"`
	EastMax      float64 `yaml:"east_max" mapstructure:"east_max"`
	NorthMin     float64 `yaml:"north_min" mapstructure:"north_min"`
	NorthMax     float64 `yaml:"north_max" mapstructure:"north_max"`
}

// ExportConfig configures file export output.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SLOPEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.events_file", "eventos_geotecnicos.xlsx")
	v.SetDefault("data.alerts_file", "alertas_seguridad.xlsx")
	v.SetDefault("data.sheet", "")
	v.SetDefault("quality.min_year", 2000)
	v.SetDefault("quality.max_year_slack", 1)
	v.SetDefault("quality.east_min", 200000)
	v.SetDefault("quality.east_max", 800000)
	v.SetDefault("quality.north_min", 6000000)
	v.SetDefault("quality.north_max", 8000000)
	v.SetDefault("export.dir", "export")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields the given command mode depends on:
// "load" for the pipeline commands, "serve" adds the listener checks.
func (c *Config) Validate(mode string) error {
	switch mode {
	case "load", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Data.EventsFile != "", "data.events_file is required")
	check(c.Data.AlertsFile != "", "data.alerts_file is required")
	check(c.Quality.MinYear >= 1900, "quality.min_year must be >= 1900")
	check(c.Quality.MaxYearSlack >= 0, "quality.max_year_slack must be >= 0")
	check(c.Quality.EastMin < c.Quality.EastMax, "quality.east_min must be < quality.east_max")
	check(c.Quality.NorthMin < c.Quality.NorthMax, "quality.north_min must be < quality.north_max")

	if mode == "serve" {
		check(c.Server.Port > 0 && c.Server.Port < 65536, "server.port must be > 0 and < 65536")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
