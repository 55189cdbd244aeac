package halfedge3d

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Reloader watches the files behind file-backed models and rebuilds a
// model when one of its files changes. Rebuilt models are delivered on
// Updates fully built; a rebuild that fails is logged and the old model
// stays in place.
type Reloader struct {
	watcher *fsnotify.Watcher
	opts    LoadOptions
	// cleaned absolute path -> configs that read it
	files   map[string][]ModelConfig
	dirs    map[string]bool
	updates chan *Model
}

func NewReloader(configs []ModelConfig, opts LoadOptions) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	r := &Reloader{
		watcher: watcher,
		opts:    opts,
		files:   make(map[string][]ModelConfig),
		dirs:    make(map[string]bool),
		updates: make(chan *Model, len(configs)+1),
	}

	for _, cfg := range configs {
		paths := []string{
			resolvePath(opts.BaseDir, cfg.Path),
			resolvePath(opts.BaseDir, cfg.Material),
			implicitMaterialPath(cfg, opts.BaseDir),
		}
		for _, p := range paths {
			if p == "" {
				continue
			}
			if err := r.track(cfg, p); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("model %s: %w", cfg.Name, err)
			}
		}
	}
	return r, nil
}

// track records that cfg reads path and watches its directory. The
// directory rather than the file, so editors that replace a file on save
// are still seen.
func (r *Reloader) track(cfg ModelConfig, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	for _, c := range r.files[abs] {
		if c.Name == cfg.Name {
			return nil
		}
	}
	r.files[abs] = append(r.files[abs], cfg)

	dir := filepath.Dir(abs)
	if r.dirs[dir] {
		return nil
	}
	if err := r.watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	r.dirs[dir] = true
	return nil
}

// implicitMaterialPath returns the mtllib an OBJ model names for itself,
// or "" when the model has an explicit material or none at all.
func implicitMaterialPath(cfg ModelConfig, baseDir string) string {
	if cfg.Material != "" || !strings.EqualFold(filepath.Ext(cfg.Path), ".obj") {
		return ""
	}
	path := resolvePath(baseDir, cfg.Path)
	obj, err := LoadOBJFile(path)
	if err != nil || obj.MaterialLib == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), obj.MaterialLib)
}

// Updates delivers rebuilt models. It is closed when Run returns.
func (r *Reloader) Updates() <-chan *Model {
	return r.updates
}

// Run handles file events until ctx is done or the watcher is closed.
func (r *Reloader) Run(ctx context.Context) error {
	defer close(r.updates)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			Logger().Warn("file watcher error", "err", err)
		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			for _, cfg := range r.files[filepath.Clean(event.Name)] {
				if err := r.reload(ctx, cfg); err != nil {
					return err
				}
			}
		}
	}
}

func (r *Reloader) reload(ctx context.Context, cfg ModelConfig) error {
	m, err := LoadModel(ctx, cfg, r.opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		Logger().Warn("reload failed, keeping previous model", "model", cfg.Name, "err", err)
		return nil
	}
	Logger().Info("model reloaded", "model", cfg.Name)
	// the OBJ may now name a different mtllib
	if p := implicitMaterialPath(cfg, r.opts.BaseDir); p != "" {
		if err := r.track(cfg, p); err != nil {
			Logger().Warn("could not watch material", "model", cfg.Name, "err", err)
		}
	}
	select {
	case r.updates <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reloader) Close() error {
	return r.watcher.Close()
}
