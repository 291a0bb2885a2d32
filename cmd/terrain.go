package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/andina-geotech/slopewatch/internal/terrain"
)

var terrainFormat string

var terrainCmd = &cobra.Command{
	Use:   "terrain <model.stl|model.dxf> [more models...]",
	Short: "Summarize CAD terrain models",
	Long:  "Reads STL pit-surface meshes and DXF bench plans and prints geometry summaries: triangle counts, surface area, extents, entity counts per layer.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		models := make([]*terrain.Model, 0, len(args))
		for _, path := range args {
			m, err := terrain.Load(path)
			if err != nil {
				return err
			}
			models = append(models, m)
		}

		switch terrainFormat {
		case "json":
			return encodeJSON(os.Stdout, models)
		case "table":
			formatTerrainTable(os.Stdout, models)
			return nil
		default:
			return eris.Errorf("unknown format %q, want table or json", terrainFormat)
		}
	},
}

func formatTerrainTable(out io.Writer, models []*terrain.Model) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MODEL\tKIND\tDETAIL")

	for _, m := range models {
		switch m.Kind {
		case terrain.KindMesh:
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d triangles (%s), %.0f m2 surface, %.0f x %.0f x %.0f m\n",
				m.Name, m.Kind, m.Mesh.Triangles, m.Mesh.Format, m.Mesh.SurfaceArea,
				m.Mesh.Size.Width, m.Mesh.Size.Depth, m.Mesh.Size.Height)
		case terrain.KindPlan:
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d entities on %d layers\n",
				m.Name, m.Kind, m.Plan.Entities, len(m.Plan.Layers))
		}
	}

	_ = w.Flush()
}

func init() {
	terrainCmd.Flags().StringVar(&terrainFormat, "format", "table", "output format: table or json")
	rootCmd.AddCommand(terrainCmd)
}
