package halfedge3d

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

type LoadOptions struct {
	Build BuildOptions
	// BaseDir resolves relative model and material paths.
	BaseDir string
	// SkipInvalid drops assets that fail to load instead of failing the
	// whole load.
	SkipInvalid bool
}

var generators = map[string]func(ModelConfig) MeshData{
	"triangle": func(ModelConfig) MeshData { return SingleTriangle() },
	"quad":     func(ModelConfig) MeshData { return Quad() },
	"cube":     func(ModelConfig) MeshData { return Cube() },
	"terrain":  func(c ModelConfig) MeshData { return GenerateTerrain(c.Terrain) },
}

func isGenerator(name string) bool {
	_, ok := generators[name]
	return ok
}

// LoadModels loads every configured model concurrently. The result keeps
// the configuration order. With SkipInvalid, a model that fails is logged
// and left out; otherwise the first failure cancels the rest and is
// returned.
func LoadModels(ctx context.Context, configs []ModelConfig, opts LoadOptions) ([]*Model, error) {
	models := make([]*Model, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range configs {
		g.Go(func() error {
			m, err := LoadModel(ctx, cfg, opts)
			if err != nil {
				if opts.SkipInvalid && ctx.Err() == nil {
					Logger().Warn("skipping model", "model", cfg.Name, "err", err)
					return nil
				}
				return err
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := models[:0]
	for _, m := range models {
		if m != nil {
			out = append(out, m)
		}
	}
	Logger().Info("models loaded", "loaded", len(out), "configured", len(configs))
	return out, nil
}

// LoadModel reads or generates one model and applies its configuration.
func LoadModel(ctx context.Context, cfg ModelConfig, opts LoadOptions) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, mtl, err := loadMeshData(cfg, opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", cfg.Name, err)
	}
	if cfg.Centre {
		CentreMeshData(&data)
	}

	m, err := NewModel(cfg.Name, data, opts.Build)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if mtl.path != "" {
		mat, err := LoadMaterialFile(mtl.path, mtl.name)
		switch {
		case err == nil:
			m.Material = mat
		case mtl.explicit:
			return nil, fmt.Errorf("model %s: %w", cfg.Name, err)
		default:
			Logger().Warn("using default material", "model", cfg.Name, "err", err)
		}
	}

	if m.Shading, err = ParseShading(cfg.Shading); err != nil {
		return nil, fmt.Errorf("model %s: %w", cfg.Name, err)
	}
	m.CastsShadow = cfg.CastsShadow
	m.ReceivesShadow = cfg.ReceivesShadow
	m.Outline = cfg.Outline
	m.Bob = cfg.Bob
	applyPlacement(m.Transform, cfg)
	return m, nil
}

type materialRef struct {
	path     string
	name     string
	explicit bool
}

func loadMeshData(cfg ModelConfig, baseDir string) (MeshData, materialRef, error) {
	mtl := materialRef{path: resolvePath(baseDir, cfg.Material), explicit: cfg.Material != ""}

	if cfg.Generator != "" {
		gen, ok := generators[cfg.Generator]
		if !ok {
			return MeshData{}, mtl, fmt.Errorf("unknown generator %q", cfg.Generator)
		}
		return gen(cfg), mtl, nil
	}

	path := resolvePath(baseDir, cfg.Path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := LoadOBJFile(path)
		if err != nil {
			return MeshData{}, mtl, err
		}
		if !mtl.explicit && obj.MaterialLib != "" {
			mtl.path = filepath.Join(filepath.Dir(path), obj.MaterialLib)
			mtl.name = obj.Material
		}
		return obj.Mesh, mtl, nil
	case ".ply":
		data, err := LoadPLYFile(path)
		return data, mtl, err
	case ".dxf":
		data, err := LoadDXFFile(path, cfg.Reverse)
		return data, mtl, err
	}
	return MeshData{}, mtl, fmt.Errorf("unsupported model file %s", path)
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func applyPlacement(t *Transform, cfg ModelConfig) {
	t.SetPosition(mgl64.Vec3(cfg.Position))
	t.SetEuler(
		mgl64.DegToRad(cfg.Rotation[0]),
		mgl64.DegToRad(cfg.Rotation[1]),
		mgl64.DegToRad(cfg.Rotation[2]))
	scale := mgl64.Vec3(cfg.Scale)
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	t.SetScale(scale)
}
