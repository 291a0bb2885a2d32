package terrain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_STLModel(t *testing.T) {
	path := writeBinarySTL(t, nil, unitSquare)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(path), m.Name)
	assert.Equal(t, KindMesh, m.Kind)
	require.NotNil(t, m.Mesh)
	assert.Nil(t, m.Plan)
	assert.Equal(t, 2, m.Mesh.Triangles)
}

func TestLoad_DXFModel(t *testing.T) {
	path := writeTextFile(t, "bancos.dxf", benchPlanDXF)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bancos.dxf", m.Name)
	assert.Equal(t, KindPlan, m.Kind)
	require.NotNil(t, m.Plan)
	assert.Nil(t, m.Mesh)
	assert.Equal(t, 4, m.Plan.Entities)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTextFile(t, "model.obj", "v 0 0 0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model format")
}
