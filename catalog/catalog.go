// Package catalog loads furniture configurations from YAML files.
//
// A catalog file maps item IDs to furniture sections:
//
//	oak_chair:
//	  type: DISPLAY_ENTITY
//	  rotatable: true
//	  restricted_rotation: VERY_STRICT
//	  seats: ["0,0.3,0"]
//	  hitbox:
//	    barrierHitboxes: ["0,0,0"]
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oriumgames/furniture"
)

// Options configures how a catalog is turned into a registry.
type Options struct {
	Log             *slog.Logger
	DisplayEntities bool
	DefaultKind     string
}

// LoadFile reads one catalog file. Sections are returned sorted by item ID.
func LoadFile(path string) ([]furniture.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sections map[string]furniture.Config
	if err := yaml.Unmarshal(b, &sections); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	ids := make([]string, 0, len(sections))
	for id := range sections {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]furniture.Config, 0, len(ids))
	for _, id := range ids {
		cfg := sections[id]
		cfg.ItemID = id
		out = append(out, cfg)
	}
	return out, nil
}

// Load reads every *.yml and *.yaml file in dir, in file name order.
func Load(dir string) ([]furniture.Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []furniture.Config
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		cfgs, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, cfgs...)
	}
	return out, nil
}

// Build builds a registry from configurations.
func Build(opts Options, cfgs []furniture.Config) (*furniture.Registry, error) {
	b := furniture.NewBuilder().
		Log(opts.Log).
		DisplayEntities(opts.DisplayEntities).
		Definitions(cfgs...)
	if opts.DefaultKind != "" {
		kind, ok := furniture.ParseKind(opts.DefaultKind)
		if !ok {
			return nil, fmt.Errorf("catalog: invalid default kind %q", opts.DefaultKind)
		}
		b.DefaultKind(kind)
	}
	return b.Build()
}

// LoadRegistry loads dir and builds its registry.
func LoadRegistry(dir string, opts Options) (*furniture.Registry, error) {
	cfgs, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return Build(opts, cfgs)
}
