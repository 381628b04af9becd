package furniture

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// LoadContext carries process-wide settings derived during the load phase.
// It is written while definitions are constructed and read-only afterwards.
type LoadContext struct {
	// Log receives configuration warnings. Defaults to slog.Default().
	Log *slog.Logger

	// SupportsDisplayEntities reports whether the host can render display entities.
	SupportsDisplayEntities bool

	// DefaultKind is the kind used when a definition does not request one.
	// It only applies when display entities are supported.
	DefaultKind *Kind

	hasEvolving bool
}

func (c *LoadContext) logger() *slog.Logger {
	if c.Log == nil {
		return slog.Default()
	}
	return c.Log
}

func (c *LoadContext) defaultKind() Kind {
	if !c.SupportsDisplayEntities {
		return KindItemFrame
	}
	if c.DefaultKind != nil {
		return *c.DefaultKind
	}
	return KindDisplayEntity
}

func (c *LoadContext) markEvolving() {
	c.hasEvolving = true
}

// HasEvolvingFurniture returns true if any definition built with this context
// has the Evolution capability.
func (c *LoadContext) HasEvolvingFurniture() bool {
	return c.hasEvolving
}

// Builder collects furniture configurations before building a Registry.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	ctx     LoadContext
	configs []Config
}

// NewBuilder creates a new furniture builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Log sets the logger that receives configuration warnings.
func (b *Builder) Log(l *slog.Logger) *Builder {
	b.ctx.Log = l
	return b
}

// DisplayEntities sets whether the host supports display entities.
func (b *Builder) DisplayEntities(supported bool) *Builder {
	b.ctx.SupportsDisplayEntities = supported
	return b
}

// DefaultKind sets the kind used by definitions that do not request one.
func (b *Builder) DefaultKind(k Kind) *Builder {
	b.ctx.DefaultKind = &k
	return b
}

// Definition adds a furniture configuration.
func (b *Builder) Definition(cfg Config) *Builder {
	b.configs = append(b.configs, cfg)
	return b
}

// Definitions adds several furniture configurations.
func (b *Builder) Definitions(cfgs ...Config) *Builder {
	b.configs = append(b.configs, cfgs...)
	return b
}

// Build constructs every definition and returns the registry.
// Configuration mistakes inside a section are corrected with warnings;
// missing or duplicate item IDs fail the build.
func (b *Builder) Build() (*Registry, error) {
	ctx := b.ctx
	r := &Registry{defs: make(map[string]*Definition, len(b.configs))}

	var errs []error
	for _, cfg := range b.configs {
		if _, dup := r.defs[cfg.ItemID]; dup {
			errs = append(errs, fmt.Errorf("furniture: duplicate item id %q", cfg.ItemID))
			continue
		}
		d, err := NewDefinition(&ctx, cfg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.defs[d.itemID] = d
		r.order = append(r.order, d.itemID)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for _, id := range r.order {
		evo, ok := Module[EvolutionModule](r.defs[id])
		if !ok || evo.NextStage == "" {
			continue
		}
		if _, exists := r.defs[evo.NextStage]; !exists {
			ctx.logger().Warn("furniture: evolution next stage is not a furniture",
				"item", id, "next_stage", evo.NextStage)
		}
	}

	r.evolving = ctx.HasEvolvingFurniture()
	r.supportsDisplay = ctx.SupportsDisplayEntities
	return r, nil
}

// Registry holds the definitions built at load time, keyed by item ID.
// It is read-only and safe for concurrent use.
type Registry struct {
	defs            map[string]*Definition
	order           []string
	evolving        bool
	supportsDisplay bool
}

// Definition returns the definition with the given item ID.
func (r *Registry) Definition(itemID string) (*Definition, bool) {
	d, ok := r.defs[itemID]
	return d, ok
}

// All returns every definition in load order.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// IDs returns the sorted item IDs.
func (r *Registry) IDs() []string {
	ids := slices.Clone(r.order)
	slices.Sort(ids)
	return ids
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// HasEvolvingFurniture returns true if any definition evolves.
// Hosts use it to decide whether to drive Engine.AdvanceEvolution at all.
func (r *Registry) HasEvolvingFurniture() bool {
	return r.evolving
}

// SupportsDisplayEntities reports the host capability the registry was built with.
func (r *Registry) SupportsDisplayEntities() bool {
	return r.supportsDisplay
}
