package halfedge3d

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Models, 2)
	ground := cfg.Models[1]
	assert.Equal(t, "quad", ground.Generator)
	assert.Equal(t, [3]float64{0, -2, 0}, ground.Position)
	assert.Equal(t, [3]float64{10, 10, 10}, ground.Scale)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.toml", `
[camera]
fov = 60.0

[build]
twin_lookup = "map"

[[model]]
name = "box"
generator = "cube"
position = [1.0, 2.0, 3.0]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 60.0, cfg.Camera.FOV)
	assert.Equal(t, "perspective", cfg.Camera.Projection)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, LookupMap, cfg.Build.BuildOptions().Lookup)

	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "box", cfg.Models[0].Name)
	assert.Equal(t, [3]float64{1, 1, 1}, cfg.Models[0].Scale)
}

func TestLoadConfigKeepsDefaultModels(t *testing.T) {
	path := writeFile(t, t.TempDir(), "scene.toml", "[log]\nlevel = \"debug\"\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Models, cfg.Models)
}

func TestLoadConfigDemoScene(t *testing.T) {
	cfg, err := LoadConfig("scene.toml")
	require.NoError(t, err)
	require.Len(t, cfg.Models, 3)
	assert.Equal(t, "terrain", cfg.Models[1].Generator)
	assert.Equal(t, 24, cfg.Models[1].Terrain.Resolution)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", "[camera\nfov = 1\n", "error parsing config file"},
		{"unknown field", "[camera]\nzoom = 2.0\n", "error parsing config file"},
		{"twin lookup", "[build]\ntwin_lookup = \"hash\"\n", "unknown twin lookup"},
		{"projection", "[camera]\nprojection = \"fisheye\"\n", "unknown camera projection"},
		{"log level", "[log]\nlevel = \"loud\"\n", "log level"},
		{"near and far", "[camera]\nnear = 5.0\nfar = 1.0\n", "near"},
		{"path and generator", "[[model]]\nname = \"a\"\npath = \"a.obj\"\ngenerator = \"cube\"\n", "exactly one of path and generator"},
		{"no source", "[[model]]\nname = \"a\"\n", "exactly one of path and generator"},
		{"generator", "[[model]]\nname = \"a\"\ngenerator = \"sphere\"\n", "unknown generator"},
		{"duplicate name", "[[model]]\nname = \"a\"\ngenerator = \"cube\"\n[[model]]\nname = \"a\"\ngenerator = \"quad\"\n", "used twice"},
		{"shading", "[[model]]\nname = \"a\"\ngenerator = \"cube\"\nshading = \"toon\"\n", "unknown shading"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "scene.toml", tc.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigConversions(t *testing.T) {
	cfg := DefaultConfig()

	opts := cfg.RenderOptions()
	assert.Equal(t, color.RGBA{A: 153}, opts.ShadowColor)
	assert.Equal(t, color.RGBA{A: 255}, opts.OutlineColor)
	assert.Equal(t, float32(2), opts.EdgeWidth)

	light := cfg.SceneLight()
	assert.Equal(t, -1.0, light.Direction.Y())

	cam := cfg.NewCamera()
	assert.IsType(t, &LookAtPerspectiveCamera{}, cam)

	cfg.Camera.Projection = "orthographic"
	assert.IsType(t, &OrthographicCamera{}, cfg.NewCamera())
}

func TestRGBAPremultiplies(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 128, G: 0, B: 0, A: 128}, rgba([4]float64{1, 0, 0, 0.5}))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba([4]float64{2, 2, 2, 2}))
}
