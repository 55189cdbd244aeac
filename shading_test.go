package halfedge3d

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlitColor(t *testing.T) {
	mat := &Material{Ambient: mgl32.Vec3{0.5, 0.5, 0.5}}
	light := Light{Ambient: mgl64.Vec3{1, 0.5, 0}}

	assert.Equal(t, color.RGBA{R: 128, G: 64, B: 0, A: 255}, unlitColor(mat, light))
}

func TestLitColor(t *testing.T) {
	light := Light{
		Direction: mgl64.Vec3{0, -1, 0},
		Color:     mgl64.Vec3{1, 1, 1},
		Ambient:   mgl64.Vec3{0.2, 0.2, 0.2},
	}
	up := mgl64.Vec3{0, 1, 0}

	cases := []struct {
		name     string
		mat      *Material
		normal   mgl64.Vec3
		toEye    mgl64.Vec3
		expected color.RGBA
	}{
		{
			name:     "facing the light",
			mat:      &Material{Diffuse: mgl32.Vec3{1, 0, 0}},
			normal:   up,
			toEye:    up,
			expected: color.RGBA{R: 255, A: 255},
		},
		{
			name:     "facing away gets ambient only",
			mat:      &Material{Ambient: mgl32.Vec3{1, 1, 1}, Diffuse: mgl32.Vec3{1, 0, 0}},
			normal:   mgl64.Vec3{0, -1, 0},
			toEye:    up,
			expected: color.RGBA{R: 51, G: 51, B: 51, A: 255},
		},
		{
			name:     "specular highlight along the half vector",
			mat:      &Material{Specular: mgl32.Vec3{0, 0, 1}, SpecularExponent: 10},
			normal:   up,
			toEye:    up,
			expected: color.RGBA{B: 255, A: 255},
		},
		{
			name:     "unnormalised normal",
			mat:      &Material{Diffuse: mgl32.Vec3{0, 1, 0}},
			normal:   mgl64.Vec3{0, 5, 0},
			toEye:    up,
			expected: color.RGBA{G: 255, A: 255},
		},
		{
			name:     "degenerate normal",
			mat:      &Material{Ambient: mgl32.Vec3{1, 1, 1}, Diffuse: mgl32.Vec3{1, 1, 1}},
			normal:   mgl64.Vec3{},
			toEye:    up,
			expected: color.RGBA{R: 51, G: 51, B: 51, A: 255},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, litColor(tc.mat, light, tc.normal, tc.toEye))
		})
	}
}

func TestLitColorClamps(t *testing.T) {
	mat := &Material{Ambient: mgl32.Vec3{1, 1, 1}, Diffuse: mgl32.Vec3{1, 1, 1}}
	light := Light{Direction: mgl64.Vec3{0, -1, 0}, Color: mgl64.Vec3{2, 2, 2}, Ambient: mgl64.Vec3{1, 1, 1}}

	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, litColor(mat, light, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}))
}

func TestParseShading(t *testing.T) {
	for _, s := range []Shading{ShadingLit, ShadingUnlit} {
		parsed, err := ParseShading(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseShading("")
	require.NoError(t, err)
	assert.Equal(t, ShadingLit, parsed)

	_, err = ParseShading("toon")
	assert.Error(t, err)
}
