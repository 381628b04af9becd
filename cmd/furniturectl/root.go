package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/spf13/cobra"

	"github.com/oriumgames/furniture"
	"github.com/oriumgames/furniture/catalog"
	"github.com/oriumgames/furniture/internal/config"
	"github.com/oriumgames/furniture/internal/memworld"
	"github.com/oriumgames/furniture/store"
)

var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "furniturectl",
	Short: "Furniture catalog and sandbox tool",
	Long: `furniturectl validates furniture catalogs and places, rotates and removes
furniture in a sandbox world persisted to SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing furniturectl.yaml")
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func loadRegistry(cfg config.Config, log *slog.Logger) (*furniture.Registry, error) {
	return catalog.LoadRegistry(cfg.CatalogDir, catalog.Options{
		Log:             log,
		DisplayEntities: cfg.DisplayEntities,
		DefaultKind:     cfg.DefaultKind,
	})
}

// sandbox is an in-memory world restored from, and committed back to, the
// placement store.
type sandbox struct {
	log    *slog.Logger
	reg    *furniture.Registry
	world  *memworld.World
	engine *furniture.Engine
	store  *store.Store
}

func openSandbox() (*sandbox, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.LogLevel)
	reg, err := loadRegistry(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	w := memworld.New(cfg.Ground)
	eng, err := furniture.NewEngine(furniture.EngineConfig{
		Registry:  reg,
		World:     w,
		Entities:  w,
		Models:    w,
		Lights:    w,
		Storages:  w,
		Jukeboxes: w,
		Log:       log,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	s := &sandbox{log: log, reg: reg, world: w, engine: eng, store: st}
	if err := s.restore(); err != nil {
		_ = st.Close()
		return nil, err
	}
	return s, nil
}

func (s *sandbox) restore() error {
	records, err := s.store.All()
	if err != nil {
		return err
	}
	for _, r := range records {
		snap, err := r.Placement(s.reg)
		if err != nil {
			s.log.Warn("furniture: dropping stored placement", "item", r.ItemID, "anchor", r.Anchor(), "error", err)
			continue
		}
		if _, err := s.engine.Place(snap.Definition, snap.Anchor, snap.Yaw, snap.Facing, furniture.Restore(snap)...); err != nil {
			s.log.Warn("furniture: failed to restore placement", "item", r.ItemID, "anchor", r.Anchor(), "error", err)
		}
	}
	return nil
}

func (s *sandbox) commit() error {
	return s.store.ReplaceAll(s.engine.Placements())
}

func (s *sandbox) close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("furniture: closing store", "error", err)
	}
}

func parsePos(s string) (cube.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return cube.Pos{}, fmt.Errorf("position %q: want x,y,z", s)
	}
	var pos cube.Pos
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return cube.Pos{}, fmt.Errorf("position %q: %w", s, err)
		}
		pos[i] = n
	}
	return pos, nil
}

var faces = map[string]cube.Face{
	"down":  cube.FaceDown,
	"up":    cube.FaceUp,
	"north": cube.FaceNorth,
	"south": cube.FaceSouth,
	"west":  cube.FaceWest,
	"east":  cube.FaceEast,
}

func parseFace(s string) (cube.Face, error) {
	f, ok := faces[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("invalid face %q", s)
	}
	return f, nil
}

func faceName(f cube.Face) string {
	for name, face := range faces {
		if face == f {
			return name
		}
	}
	return "unknown"
}
