package halfedge3d

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window WindowConfig  `toml:"window"`
	Camera CameraConfig  `toml:"camera"`
	Light  LightConfig   `toml:"light"`
	Render RenderConfig  `toml:"render"`
	Build  BuildConfig   `toml:"build"`
	Log    LogConfig     `toml:"log"`
	Models []ModelConfig `toml:"model"`
}

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
}

type CameraConfig struct {
	// Projection is "perspective" or "orthographic".
	Projection string `toml:"projection"`
	// FOV is the vertical field of view in degrees.
	FOV         float64 `toml:"fov"`
	Near        float64 `toml:"near"`
	Far         float64 `toml:"far"`
	OrthoHeight float64 `toml:"ortho_height"`

	OrbitDistance float64 `toml:"orbit_distance"`
	OrbitHeight   float64 `toml:"orbit_height"`
	// OrbitSpeed is in radians per second.
	OrbitSpeed float64 `toml:"orbit_speed"`
}

type LightConfig struct {
	Direction [3]float64 `toml:"direction"`
	Color     [3]float64 `toml:"color"`
	Ambient   [3]float64 `toml:"ambient"`
}

type RenderConfig struct {
	Background    [3]float64 `toml:"background"`
	CullBackFaces bool       `toml:"cull_back_faces"`
	AntiAlias     bool       `toml:"anti_alias"`
	Outline       bool       `toml:"outline"`
	EdgeWidth     float64    `toml:"edge_width"`
	OutlineColor  [4]float64 `toml:"outline_color"`
	Shadow        bool       `toml:"shadow"`
	ShadowPlane   float64    `toml:"shadow_plane"`
	ShadowColor   [4]float64 `toml:"shadow_color"`
}

type BuildConfig struct {
	// TwinLookup is "scan" or "map".
	TwinLookup        string `toml:"twin_lookup"`
	AllowNonManifold  bool   `toml:"allow_non_manifold"`
	SkipInvalidAssets bool   `toml:"skip_invalid_assets"`
	Watch             bool   `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// ModelConfig describes one model in the scene. Exactly one of Path and
// Generator is set.
type ModelConfig struct {
	Name string `toml:"name"`
	// Path is an .obj, .ply or .dxf file, relative to the config file.
	Path string `toml:"path"`
	// Material is an .mtl file; for OBJ models the file's own mtllib is
	// used when this is empty.
	Material string `toml:"material"`
	// Generator is one of "triangle", "quad", "cube" or "terrain".
	Generator string        `toml:"generator"`
	Terrain   TerrainParams `toml:"terrain"`
	// Reverse flips DXF winding.
	Reverse bool `toml:"reverse"`
	// Centre moves the mesh so its bounding box is centred on the origin.
	Centre bool `toml:"centre"`

	Position [3]float64 `toml:"position"`
	// Rotation is in degrees about X, Y and Z.
	Rotation [3]float64 `toml:"rotation"`
	Scale    [3]float64 `toml:"scale"`

	Shading        string `toml:"shading"`
	CastsShadow    bool   `toml:"casts_shadow"`
	ReceivesShadow bool   `toml:"receives_shadow"`
	Outline        bool   `toml:"outline"`
	Bob            bool   `toml:"bob"`
}

// DefaultConfig is the demo scene: a ship over a ground plane, an orbiting
// camera and a light from above.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "halfedge3d", Resizable: true},
		Camera: CameraConfig{
			Projection:    "perspective",
			FOV:           45,
			Near:          0.01,
			Far:           100,
			OrthoHeight:   5,
			OrbitDistance: 10,
			OrbitHeight:   10,
			OrbitSpeed:    1,
		},
		Light: LightConfig{
			Direction: [3]float64{-0.3, -1, -0.2},
			Color:     [3]float64{1, 1, 1},
			Ambient:   [3]float64{0.4, 0.4, 0.4},
		},
		Render: RenderConfig{
			Background:    [3]float64{0.1, 0.1, 0.15},
			CullBackFaces: true,
			AntiAlias:     true,
			Outline:       true,
			EdgeWidth:     2,
			OutlineColor:  [4]float64{0, 0, 0, 1},
			Shadow:        true,
			ShadowPlane:   -2,
			ShadowColor:   [4]float64{0, 0, 0, 0.6},
		},
		Build: BuildConfig{TwinLookup: "scan", SkipInvalidAssets: true},
		Log:   LogConfig{Level: "info"},
		Models: []ModelConfig{
			{
				Name:        "ship",
				Path:        "models/ship.obj",
				Material:    "models/ship.mtl",
				Scale:       [3]float64{1, 1, 1},
				CastsShadow: true,
				Outline:     true,
				Bob:         true,
			},
			{
				Name:           "ground",
				Generator:      "quad",
				Position:       [3]float64{0, -2, 0},
				Scale:          [3]float64{10, 10, 10},
				Shading:        "unlit",
				ReceivesShadow: true,
			},
		},
	}
}

// LoadConfig decodes a TOML file over DefaultConfig, so a file only needs
// the settings it changes. A file with [[model]] entries replaces the
// default models.
func LoadConfig(fileName string) (*Config, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %s: %w", fileName, err)
	}

	cfg := DefaultConfig()
	cfg.Models = nil
	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("error parsing config file %s at %d:%d: %w", fileName, row, col, err)
		}
		return nil, fmt.Errorf("error parsing config file %s: %w", fileName, err)
	}
	if cfg.Models == nil {
		cfg.Models = DefaultConfig().Models
	}
	for i := range cfg.Models {
		if cfg.Models[i].Scale == [3]float64{} {
			cfg.Models[i].Scale = [3]float64{1, 1, 1}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", fileName, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Camera.Projection {
	case "perspective":
		if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
			errs = append(errs, fmt.Errorf("camera fov %v out of range", c.Camera.FOV))
		}
		if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
			errs = append(errs, fmt.Errorf("camera near %v and far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far))
		}
	case "orthographic":
		if c.Camera.OrthoHeight <= 0 {
			errs = append(errs, fmt.Errorf("camera ortho_height %v must be positive", c.Camera.OrthoHeight))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown camera projection %q", c.Camera.Projection))
	}
	if _, err := c.Build.lookup(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	names := make(map[string]bool)
	for i, m := range c.Models {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("model %d has no name", i))
		} else if names[m.Name] {
			errs = append(errs, fmt.Errorf("model name %q used twice", m.Name))
		}
		names[m.Name] = true

		if (m.Path == "") == (m.Generator == "") {
			errs = append(errs, fmt.Errorf("model %q needs exactly one of path and generator", m.Name))
		}
		if m.Generator != "" && !isGenerator(m.Generator) {
			errs = append(errs, fmt.Errorf("model %q: unknown generator %q", m.Name, m.Generator))
		}
		if _, err := ParseShading(m.Shading); err != nil {
			errs = append(errs, fmt.Errorf("model %q: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (b BuildConfig) lookup() (TwinLookup, error) {
	switch b.TwinLookup {
	case "", "scan":
		return LookupScan, nil
	case "map":
		return LookupMap, nil
	}
	return LookupScan, fmt.Errorf("unknown twin lookup %q", b.TwinLookup)
}

// BuildOptions converts the build section for Build.
func (b BuildConfig) BuildOptions() BuildOptions {
	lookup, _ := b.lookup()
	return BuildOptions{Lookup: lookup, AllowNonManifold: b.AllowNonManifold}
}

func (c *Config) RenderOptions() RenderOptions {
	r := c.Render
	return RenderOptions{
		CullBackFaces: r.CullBackFaces,
		Outline:       r.Outline,
		EdgeWidth:     float32(r.EdgeWidth),
		OutlineColor:  rgba(r.OutlineColor),
		Shadow:        r.Shadow,
		ShadowPlane:   r.ShadowPlane,
		ShadowColor:   rgba(r.ShadowColor),
	}
}

func (c *Config) SceneLight() Light {
	return Light{
		Direction: mgl64.Vec3(c.Light.Direction),
		Color:     mgl64.Vec3(c.Light.Color),
		Ambient:   mgl64.Vec3(c.Light.Ambient),
	}
}

// NewCamera builds the configured camera for a viewport of the window size.
func (c *Config) NewCamera() Camera {
	var cam Camera
	switch c.Camera.Projection {
	case "orthographic":
		cam = NewOrthographicCamera(c.Camera.OrthoHeight, -c.Camera.Far, c.Camera.Far)
	default:
		cam = NewLookAtPerspectiveCamera(mgl64.DegToRad(c.Camera.FOV), 1, c.Camera.Near, c.Camera.Far, mgl64.Vec3{})
	}
	cam.Transform().SetPosition(mgl64.Vec3{0, c.Camera.OrbitHeight, c.Camera.OrbitDistance})
	cam.SetResolution(c.Window.Width, c.Window.Height)
	return cam
}

// BackgroundColor is the colour the screen is cleared to.
func (c *Config) BackgroundColor() color.RGBA {
	b := c.Render.Background
	return rgba([4]float64{b[0], b[1], b[2], 1})
}

// rgba converts non-premultiplied components in [0, 1] to the
// premultiplied colour ebiten expects.
func rgba(c [4]float64) color.RGBA {
	a := math.Min(math.Max(c[3], 0), 1)
	ch := func(v float64) uint8 {
		return uint8(clamp(int(math.Round(v*a*255)), 0, 255))
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: uint8(math.Round(a * 255))}
}
