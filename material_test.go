package halfedge3d

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterials(t *testing.T) {
	src := `# two materials
newmtl red
Ka 0.1 0 0
Kd 1 0 0
Ks 0.5 0.5 0.5
Ns 20
illum 2

newmtl plain
Kd 0.5 0.5 0.5
`
	mats, err := ParseMaterials(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, mats, 2)

	red := mats[0]
	assert.Equal(t, "red", red.Name)
	assert.Equal(t, mgl32.Vec3{0.1, 0, 0}, red.Ambient)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, red.Diffuse)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, red.Specular)
	assert.Equal(t, float32(20), red.SpecularExponent)

	assert.Equal(t, "plain", mats[1].Name)
	assert.Equal(t, mgl32.Vec3{}, mats[1].Ambient)
}

func TestParseMaterialsErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		message string
	}{
		{"colour before newmtl", "Kd 1 1 1\n", "before newmtl"},
		{"short colour", "newmtl a\nKa 1 1\n", "line 2"},
		{"bad exponent", "newmtl a\nNs shiny\n", "Ns"},
		{"missing exponent", "newmtl a\nNs\n", "needs a value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMaterials(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoadMaterialFile(t *testing.T) {
	mat, err := LoadMaterialFile("models/ship.mtl", "")
	require.NoError(t, err)
	assert.Equal(t, "hull", mat.Name)
	assert.Equal(t, float32(32), mat.SpecularExponent)

	named, err := LoadMaterialFile("models/ship.mtl", "hull")
	require.NoError(t, err)
	assert.Equal(t, mat, named)

	_, err = LoadMaterialFile("models/ship.mtl", "sail")
	assert.ErrorContains(t, err, `"sail" not found`)
}
