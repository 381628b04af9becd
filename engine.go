package furniture

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EngineConfig configures an Engine. Registry, World and Entities are required;
// every other collaborator is optional.
type EngineConfig struct {
	// Registry resolves item IDs read from entity tags to definitions.
	Registry *Registry

	// World and Entities are the host's block and entity storage.
	World    World
	Entities Entities

	// Renderer maintains hitboxes. Defaults to a new HitboxIndex.
	Renderer Renderer

	// Optional services. A nil service disables the matching behaviour.
	Models    Models
	Lights    Lights
	Locks     Locks
	Actions   Actions
	Storages  Storages
	Jukeboxes Jukeboxes

	// Handler receives lifecycle events. Defaults to NopHandler.
	Handler Handler

	// Log receives best-effort failures. Defaults to slog.Default().
	Log *slog.Logger
}

// Engine places, rotates and removes furniture. It is the only component
// that mutates placements.
//
// Concurrency:
// Every operation holds the engine lock for its whole duration, so one
// placement is never mutated by two operations at once. Handlers run under
// that lock and must not call back into the engine.
type Engine struct {
	conf EngineConfig
	log  *slog.Logger

	mu sync.Mutex

	// live maps base entities created by this engine to their item IDs
	live   map[uuid.UUID]string
	liveMu sync.RWMutex

	metrics *metrics
}

// NewEngine creates an engine from conf.
func NewEngine(conf EngineConfig) (*Engine, error) {
	switch {
	case conf.Registry == nil:
		return nil, errors.New("furniture: engine requires a registry")
	case conf.World == nil:
		return nil, errors.New("furniture: engine requires a world")
	case conf.Entities == nil:
		return nil, errors.New("furniture: engine requires entities")
	}
	if conf.Renderer == nil {
		conf.Renderer = NewHitboxIndex()
	}
	if conf.Handler == nil {
		conf.Handler = NopHandler{}
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}

	e := &Engine{
		conf: conf,
		log:  conf.Log,
		live: make(map[uuid.UUID]string),
	}
	m, err := newMetrics(e)
	if err != nil {
		return nil, fmt.Errorf("furniture: %w", err)
	}
	e.metrics = m
	return e, nil
}

// Registry returns the registry the engine resolves definitions with.
func (e *Engine) Registry() *Registry {
	return e.conf.Registry
}

// Renderer returns the renderer hitboxes are maintained in.
func (e *Engine) Renderer() Renderer {
	return e.conf.Renderer
}

// Len returns the number of placements created by this engine that are
// still alive.
func (e *Engine) Len() int {
	e.liveMu.RLock()
	defer e.liveMu.RUnlock()
	return len(e.live)
}

func (e *Engine) track(base uuid.UUID, itemID string) {
	e.liveMu.Lock()
	e.live[base] = itemID
	e.liveMu.Unlock()
}

func (e *Engine) untrack(base uuid.UUID) {
	e.liveMu.Lock()
	delete(e.live, base)
	e.liveMu.Unlock()
}

// HasEnoughSpace returns true if every hitbox cell of def, anchored at
// anchor and facing yaw, is replaceable. It has no side effects.
func (e *Engine) HasEnoughSpace(def *Definition, anchor cube.Pos, yaw float64) bool {
	for _, pos := range def.Hitbox().Locations(anchor, yaw) {
		if !e.conf.World.Replaceable(pos) {
			return false
		}
	}
	return true
}

// Place creates a placement of def anchored at anchor. The base entity is
// spawned first; model, seats and light follow and never unwind the base
// entity when they fail. The hitbox is registered last.
func (e *Engine) Place(def *Definition, anchor cube.Pos, yaw float64, facing cube.Face, opts ...PlaceOption) (*Placement, error) {
	o := defaultPlaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.place(def, anchor, yaw, facing, o)
	if err != nil {
		e.metrics.fail("place", err)
		return nil, err
	}
	return p, nil
}

// PlaceAgainst places def against the face of the clicked block, applying
// the limited placing and farmland rules first. against is the identifier
// of the clicked block.
func (e *Engine) PlaceAgainst(def *Definition, clicked cube.Pos, face cube.Face, yaw float64, against string, opts ...PlaceOption) (*Placement, error) {
	o := defaultPlaceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	anchor := clicked.Side(face)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkLimits(def, anchor, face, blockName(against)); err != nil {
		e.metrics.fail("place", err)
		return nil, err
	}
	p, err := e.place(def, anchor, yaw, face, o)
	if err != nil {
		e.metrics.fail("place", err)
		return nil, err
	}
	return p, nil
}

func (e *Engine) checkLimits(def *Definition, anchor cube.Pos, face cube.Face, against string) error {
	if def.FarmlandRequired() && (face != cube.FaceUp || against != "farmland") {
		return fmt.Errorf("%w: %s requires farmland", ErrPlacementDenied, def.ItemID())
	}
	lp, ok := Module[LimitedPlacingModule](def)
	if !ok {
		return nil
	}
	if !lp.AllowsFace(face) {
		return fmt.Errorf("%w: %s cannot be placed on face %v", ErrPlacementDenied, def.ItemID(), face)
	}
	if !lp.AllowsBlock(against) {
		return fmt.Errorf("%w: %s cannot be placed against %s", ErrPlacementDenied, def.ItemID(), against)
	}
	if lp.Amount > 0 {
		if n := e.countNearby(def.ItemID(), centreBottom(anchor), lp.Radius); n >= lp.Amount {
			return fmt.Errorf("%w: %d of %s within %.0f blocks", ErrPlacementDenied, n, def.ItemID(), lp.Radius)
		}
	}
	return nil
}

// countNearby counts base entities of itemID within radius of pos.
func (e *Engine) countNearby(itemID string, pos mgl64.Vec3, radius float64) int {
	n := 0
	for _, id := range e.conf.World.NearbyEntities(pos, radius) {
		tags, ok := e.conf.Entities.Tags(id)
		if !ok || tags.Has(KeySeatBase) {
			continue
		}
		if s, ok := tags.String(KeyFurniture); ok && s == itemID {
			n++
		}
	}
	return n
}

func (e *Engine) place(def *Definition, anchor cube.Pos, yaw float64, facing cube.Face, o placeOptions) (*Placement, error) {
	if registered, ok := e.conf.Registry.Definition(def.ItemID()); !ok || registered != def {
		return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownPlacement, def.ItemID())
	}
	if !e.conf.World.Loaded(anchor) {
		return nil, fmt.Errorf("place %s at %v: %w", def.ItemID(), anchor, ErrNotLoaded)
	}
	if o.checkSpace && !e.HasEnoughSpace(def, anchor, yaw) {
		return nil, fmt.Errorf("place %s at %v: %w", def.ItemID(), anchor, ErrNoSpace)
	}
	requested := yaw
	ctx := newContext(o.actor)
	e.conf.Handler.HandlePlace(&EventPlace{Ctx: ctx, Definition: def, Anchor: anchor, Facing: facing, Yaw: &yaw, Sounds: def.Sounds()})
	if ctx.Cancelled() {
		return nil, fmt.Errorf("place %s at %v: %w", def.ItemID(), anchor, ErrCancelled)
	}
	// The handler may have turned the hitbox into occupied cells.
	if o.checkSpace && yaw != requested && !e.HasEnoughSpace(def, anchor, yaw) {
		return nil, fmt.Errorf("place %s at %v with yaw %v: %w", def.ItemID(), anchor, yaw, ErrNoSpace)
	}

	pos := def.SpawnPosition(anchor, facing)
	base, err := e.conf.Entities.Spawn(baseSpec(def, pos, yaw, newBaseTags(def, anchor, yaw, facing, o)))
	if err != nil {
		return nil, fmt.Errorf("place %s at %v: %w: %w", def.ItemID(), anchor, ErrSpawnFailed, err)
	}
	tags, ok := e.conf.Entities.Tags(base)
	if !ok {
		_ = e.conf.Entities.Remove(base)
		return nil, fmt.Errorf("place %s at %v: %w: base has no tags", def.ItemID(), anchor, ErrSpawnFailed)
	}
	log := e.log.With("item", def.ItemID(), "base", base)

	if def.HasModel() && e.conf.Models != nil {
		if err := e.conf.Models.AttachModel(base, def.ModelID(), yaw); err != nil {
			log.Warn("furniture: failed to attach model", "model", def.ModelID(), "error", err)
		} else {
			tags.SetString(KeyModel, def.ModelID())
		}
	}
	if seating, ok := Module[SeatingModule](def); ok {
		tags.SetUUIDs(KeySeats, e.spawnSeats(def, base, pos, yaw, seating, log))
	}
	if level := def.LightLevel(); level > 0 && e.conf.Lights != nil {
		if err := e.conf.Lights.SetLight(cellOf(pos), level); err != nil {
			log.Warn("furniture: failed to set light", "pos", cellOf(pos), "error", err)
		}
	}

	p, err := readPlacement(base, tags, e.conf.Registry)
	if err != nil {
		return nil, err
	}
	if p.Disc != "" && e.conf.Jukeboxes != nil {
		if m, ok := Module[JukeboxModule](def); ok {
			if err := e.conf.Jukeboxes.Play(p, p.Disc, m); err != nil {
				log.Warn("furniture: failed to resume disc", "disc", p.Disc, "error", err)
			}
		}
	}

	e.track(base, def.ItemID())
	e.conf.Renderer.RefreshHitbox(p)
	e.metrics.place(def.ItemID())
	return p, nil
}

// spawnSeats spawns one seat per seat offset, rotated with the placement.
// Seats that fail to spawn are skipped.
func (e *Engine) spawnSeats(def *Definition, base uuid.UUID, pos mgl64.Vec3, yaw float64, m SeatingModule, log *slog.Logger) []uuid.UUID {
	seats := make([]uuid.UUID, 0, len(m.Seats))
	for i, seat := range m.Seats {
		tags := NewTags()
		tags.SetUUIDs(KeySeatBase, []uuid.UUID{base})
		id, err := e.conf.Entities.Spawn(seatSpec(def, pos.Add(rotateVec(seat.Offset, yaw)), yaw, tags))
		if err != nil {
			log.Warn("furniture: failed to spawn seat", "seat", i, "error", err)
			continue
		}
		seats = append(seats, id)
	}
	return seats
}

// Remove tears a placement down: light, seats, hitbox, then the base
// entity. Every step runs even if an earlier one fails; the failures are
// joined into the returned error.
func (e *Engine) Remove(base uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.remove(base)
	if err != nil {
		e.metrics.fail("remove", err)
	}
	return err
}

func (e *Engine) remove(base uuid.UUID) (*Placement, error) {
	p, tags, err := e.lookup(base)
	if err != nil {
		return nil, err
	}

	var errs []error
	if level := p.Definition.LightLevel(); level > 0 && e.conf.Lights != nil {
		if err := e.conf.Lights.ClearLight(p.LightPos()); err != nil {
			errs = append(errs, fmt.Errorf("clear light: %w", err))
		}
	}
	for _, seat := range p.Seats {
		for _, passenger := range e.conf.Entities.Passengers(seat) {
			if err := e.conf.Entities.Dismount(passenger); err != nil {
				errs = append(errs, fmt.Errorf("dismount %s: %w", passenger, err))
			}
		}
		if e.conf.Entities.Alive(seat) {
			if err := e.conf.Entities.Remove(seat); err != nil {
				errs = append(errs, fmt.Errorf("remove seat %s: %w", seat, err))
			}
		}
	}
	tags.Delete(KeySeats)
	if p.Disc != "" && e.conf.Jukeboxes != nil {
		if err := e.conf.Jukeboxes.Stop(p); err != nil {
			errs = append(errs, fmt.Errorf("stop disc: %w", err))
		}
	}
	e.conf.Renderer.ReleaseHitbox(base)
	if e.conf.Entities.Alive(base) {
		if err := e.conf.Entities.Remove(base); err != nil {
			errs = append(errs, fmt.Errorf("remove base %s: %w", base, err))
		}
	}
	e.untrack(base)
	e.metrics.remove(p.ItemID())
	e.conf.Handler.HandleRemove(&EventRemove{Placement: p})

	if err := errors.Join(errs...); err != nil {
		e.log.Warn("furniture: incomplete teardown", "item", p.ItemID(), "base", base, "error", err)
		return p, err
	}
	return p, nil
}

// Rotate turns a placement one step clockwise under its definition's
// rotation policy and refreshes its hitbox once.
func (e *Engine) Rotate(base uuid.UUID) (*Placement, error) {
	return e.RotateBy(uuid.Nil, base)
}

// RotateBy is like Rotate with the actor passed to the handler.
func (e *Engine) RotateBy(actor, base uuid.UUID) (*Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.rotate(actor, base)
	if err != nil {
		e.metrics.fail("rotate", err)
		return nil, err
	}
	return p, nil
}

func (e *Engine) rotate(actor, base uuid.UUID) (*Placement, error) {
	p, tags, err := e.lookup(base)
	if err != nil {
		return nil, err
	}
	def := p.Definition
	if !def.Rotatable() {
		return nil, fmt.Errorf("rotate %s: %w", def.ItemID(), ErrNotRotatable)
	}
	from := p.Rotation()
	to := from.Clockwise(def.RestrictedRotation())

	ctx := newContext(actor)
	e.conf.Handler.HandleRotate(&EventRotate{Ctx: ctx, Placement: p, From: from, To: to})
	if ctx.Cancelled() {
		return nil, fmt.Errorf("rotate %s: %w", def.ItemID(), ErrCancelled)
	}

	tags.SetFloat(KeyYaw, to.Yaw())
	if err := e.conf.Entities.SetRotation(base, to.Yaw()); err != nil {
		e.log.Warn("furniture: failed to rotate base entity", "item", def.ItemID(), "base", base, "error", err)
	}
	p, err = readPlacement(base, tags, e.conf.Registry)
	if err != nil {
		return nil, err
	}
	e.conf.Renderer.RefreshHitbox(p)
	e.metrics.rotate(def.ItemID())
	return p, nil
}

// Break removes a placement as if it was mined with tool and returns its
// drops. Storage contents are dropped along with the drop table's loot.
func (e *Engine) Break(actor, base uuid.UUID, tool Tool, rng *rand.Rand) ([]Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	drops, err := e.breakPlacement(actor, base, tool, rng)
	if err != nil {
		e.metrics.fail("break", err)
	}
	return drops, err
}

func (e *Engine) breakPlacement(actor, base uuid.UUID, tool Tool, rng *rand.Rand) ([]Item, error) {
	p, _, err := e.lookup(base)
	if err != nil {
		return nil, err
	}
	def := p.Definition
	if !def.HasHardness() {
		return nil, fmt.Errorf("break %s: %w", def.ItemID(), ErrUnbreakable)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	drops := def.Drop().Roll(def.ItemID(), tool, rng)
	drops = append(drops, p.Storage...)
	if p.Disc != "" {
		drops = append(drops, Item{ID: p.Disc, Count: 1})
	}

	ctx := newContext(actor)
	e.conf.Handler.HandleBreak(&EventBreak{Ctx: ctx, Placement: p, Tool: tool, Drops: &drops, Sounds: def.Sounds()})
	if ctx.Cancelled() {
		return nil, fmt.Errorf("break %s: %w", def.ItemID(), ErrCancelled)
	}
	_, err = e.remove(base)
	return drops, err
}

// Placement returns the snapshot of a base entity.
func (e *Engine) Placement(base uuid.UUID) (*Placement, error) {
	p, _, err := e.lookup(base)
	return p, err
}

// At returns the placement whose hitbox occupies pos.
func (e *Engine) At(pos cube.Pos) (*Placement, error) {
	base, ok := e.conf.Renderer.BaseAt(pos)
	if !ok {
		return nil, fmt.Errorf("%w: nothing at %v", ErrUnknownPlacement, pos)
	}
	return e.Placement(base)
}

// ByInteraction returns the placement owning an interaction entity ID.
func (e *Engine) ByInteraction(id int32) (*Placement, error) {
	base, ok := e.conf.Renderer.BaseByInteraction(id)
	if !ok {
		return nil, fmt.Errorf("%w: no interaction %d", ErrUnknownPlacement, id)
	}
	return e.Placement(base)
}

// SeatBase returns the base entity a seat belongs to.
func (e *Engine) SeatBase(seat uuid.UUID) (uuid.UUID, bool) {
	tags, ok := e.conf.Entities.Tags(seat)
	if !ok {
		return uuid.Nil, false
	}
	ids, ok := tags.UUIDs(KeySeatBase)
	if !ok || len(ids) != 1 {
		return uuid.Nil, false
	}
	return ids[0], true
}

// Placements returns every live placement created by this engine, ordered
// by base entity.
func (e *Engine) Placements() []*Placement {
	e.liveMu.RLock()
	bases := make([]uuid.UUID, 0, len(e.live))
	for base := range e.live {
		bases = append(bases, base)
	}
	e.liveMu.RUnlock()
	slices.SortFunc(bases, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })

	out := make([]*Placement, 0, len(bases))
	for _, base := range bases {
		if p, _, err := e.lookup(base); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) lookup(base uuid.UUID) (*Placement, *Tags, error) {
	tags, ok := e.conf.Entities.Tags(base)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownPlacement, base)
	}
	p, err := readPlacement(base, tags, e.conf.Registry)
	if err != nil {
		return nil, nil, err
	}
	return p, tags, nil
}
