package halfedge3d

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plyQuad = `ply
format ascii 1.0
comment unit square in XY
element vertex 4
property uchar red
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
end_header
255 0 0 0
255 1 0 0
255 1 1 0
255 0 1 0
3 0 1 2
3 0 2 3
`

func TestParsePLY(t *testing.T) {
	data, err := ParsePLY(strings.NewReader(plyQuad))
	require.NoError(t, err)

	require.Len(t, data.Vertices, 4)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, data.Vertices[2].Position)
	assert.Equal(t, []Triangle{{0, 1, 2}, {0, 2, 3}}, data.Faces)
	for _, v := range data.Vertices {
		assert.InDelta(t, 1, v.Normal.Z(), 1e-6)
	}

	m := mustBuild(t, data, BuildOptions{})
	assert.Len(t, m.BoundaryEdges(), 4)
}

func TestParsePLYNormals(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 3
property float nx
property float ny
property float nz
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 1 0 0 0 0
0 1 0 1 0 0
0 1 0 0 0 1
3 0 2 1
`
	data, err := ParsePLY(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, data.Vertices[2].Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, data.Vertices[0].Normal)
}

func TestParsePLYErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		message string
	}{
		{"no magic", "format ascii 1.0\n", "magic"},
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n", "unsupported PLY format"},
		{"no header end", "ply\nformat ascii 1.0\nelement vertex 0\n", "header"},
		{"no position", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nend_header\n0\n", "lacks x, y or z"},
		{"short vertex list", strings.Replace(plyQuad, "255 0 1 0\n3 0 1 2\n3 0 2 3\n", "", 1), "reading vertices"},
		{"quad face", strings.Replace(plyQuad, "3 0 2 3", "4 0 1 2 3", 1), "4 corners"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePLY(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestParsePLYRejectsPolygons(t *testing.T) {
	_, err := ParsePLY(strings.NewReader(strings.Replace(plyQuad, "3 0 2 3", "4 0 1 2 3", 1)))
	assert.ErrorIs(t, err, ErrUnsupportedPolygon)
}
