package furniture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sit mounts passenger on the first free seat of a placement.
func (e *Engine) Sit(base, passenger uuid.UUID) (uuid.UUID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, _, err := e.lookup(base)
	if err != nil {
		return uuid.Nil, err
	}
	return e.sit(p, passenger)
}

func (e *Engine) sit(p *Placement, passenger uuid.UUID) (uuid.UUID, error) {
	if !p.Definition.HasSeats() {
		return uuid.Nil, fmt.Errorf("sit on %s: %w: seating", p.ItemID(), ErrMissingCapability)
	}
	for _, seat := range p.Seats {
		if !e.conf.Entities.Alive(seat) || len(e.conf.Entities.Passengers(seat)) > 0 {
			continue
		}
		if err := e.conf.Entities.Mount(seat, passenger); err != nil {
			return uuid.Nil, fmt.Errorf("sit on %s: %w", p.ItemID(), err)
		}
		return seat, nil
	}
	return uuid.Nil, fmt.Errorf("sit on %s: %w", p.ItemID(), ErrNoFreeSeat)
}

// Interact handles actor using a placement. Locked placements reject the
// actor, click actions run next, then storage opens or the actor sits down.
// A placement without a free seat is not an error.
func (e *Engine) Interact(actor, base uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.interact(actor, base); err != nil {
		e.metrics.fail("interact", err)
		return err
	}
	return nil
}

func (e *Engine) interact(actor, base uuid.UUID) error {
	p, _, err := e.lookup(base)
	if err != nil {
		return err
	}
	def := p.Definition
	if lock, ok := Module[LockModule](def); ok && lock.CanProtect && e.conf.Locks != nil {
		if !e.conf.Locks.CanInteract(actor, p, lock) {
			return fmt.Errorf("interact with %s: %w", def.ItemID(), ErrLocked)
		}
	}

	ctx := newContext(actor)
	e.conf.Handler.HandleInteract(&EventInteract{Ctx: ctx, Placement: p})
	if ctx.Cancelled() {
		return fmt.Errorf("interact with %s: %w", def.ItemID(), ErrCancelled)
	}

	if ca, ok := Module[ClickActionsModule](def); ok && e.conf.Actions != nil {
		for _, a := range ca.Actions {
			if !e.conf.Actions.CanRun(actor, a.Conditions) {
				continue
			}
			if err := e.conf.Actions.Perform(actor, p, a.Actions); err != nil {
				e.log.Warn("furniture: click action failed", "item", def.ItemID(), "base", base, "error", err)
			}
		}
	}

	if st, ok := Module[StorageModule](def); ok {
		if e.conf.Storages == nil {
			return nil
		}
		if err := e.conf.Storages.Open(actor, p, st); err != nil {
			return fmt.Errorf("open storage of %s: %w", def.ItemID(), err)
		}
		return nil
	}
	if !def.HasSeats() {
		return nil
	}
	if _, err := e.sit(p, actor); err != nil && !errors.Is(err, ErrNoFreeSeat) {
		return err
	}
	return nil
}

// AdvanceEvolution grows an evolving placement by delta. Once the stage
// reaches the configured delay, roll (in [0, 1)) is compared against the
// evolution probability; on success the placement is replaced by the next
// stage at the same anchor, yaw and facing. A failed roll keeps the stage at
// the delay so the next call rolls again.
func (e *Engine) AdvanceEvolution(base uuid.UUID, delta int, roll float64) (*Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, tags, err := e.lookup(base)
	if err != nil {
		return nil, err
	}
	def := p.Definition
	evo, ok := Module[EvolutionModule](def)
	if !ok {
		return nil, fmt.Errorf("evolve %s: %w: evolution", def.ItemID(), ErrMissingCapability)
	}

	stage := p.EvolutionStage + max(delta, 0)
	if stage < evo.Delay {
		tags.SetInt(KeyEvolution, stage)
		p.EvolutionStage = stage
		return p, nil
	}
	tags.SetInt(KeyEvolution, evo.Delay)
	p.EvolutionStage = evo.Delay

	next, ok := e.conf.Registry.Definition(evo.NextStage)
	if !ok || roll >= evo.Probability {
		return p, nil
	}

	ctx := newContext(uuid.Nil)
	e.conf.Handler.HandleEvolve(&EventEvolve{Ctx: ctx, Placement: p, Next: next})
	if ctx.Cancelled() {
		return nil, fmt.Errorf("evolve %s: %w", def.ItemID(), ErrCancelled)
	}
	if _, err := e.remove(base); err != nil {
		e.log.Warn("furniture: evolution teardown incomplete", "item", def.ItemID(), "base", base, "error", err)
	}
	np, err := e.place(next, p.Anchor, p.Yaw, p.Facing, placeOptions{})
	if err != nil {
		e.metrics.fail("evolve", err)
		return nil, fmt.Errorf("evolve %s into %s: %w", def.ItemID(), next.ItemID(), err)
	}
	return np, nil
}

// SetStorage replaces the contents of a STORAGE placement.
func (e *Engine) SetStorage(base uuid.UUID, items []Item) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, tags, err := e.storage(base)
	if err != nil {
		return err
	}
	tags.SetItems(KeyStorage, items)
	return nil
}

// Storage returns the contents of a STORAGE placement.
func (e *Engine) Storage(base uuid.UUID) ([]Item, error) {
	p, _, err := e.storage(base)
	if err != nil {
		return nil, err
	}
	return p.Storage, nil
}

func (e *Engine) storage(base uuid.UUID) (*Placement, *Tags, error) {
	p, tags, err := e.lookup(base)
	if err != nil {
		return nil, nil, err
	}
	if m, ok := Module[StorageModule](p.Definition); !ok || m.Type != StorageContainer {
		return nil, nil, fmt.Errorf("storage of %s: %w: storage", p.ItemID(), ErrMissingCapability)
	}
	return p, tags, nil
}

// InsertDisc inserts a disc into a jukebox placement and starts playing it.
func (e *Engine) InsertDisc(base uuid.UUID, disc string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, tags, m, err := e.jukebox(base)
	if err != nil {
		return err
	}
	if p.Disc != "" {
		return fmt.Errorf("insert %s into %s: %w", disc, p.ItemID(), ErrOccupied)
	}
	tags.SetString(KeyDisc, disc)
	p.Disc = disc
	if e.conf.Jukeboxes != nil {
		if err := e.conf.Jukeboxes.Play(p, disc, m); err != nil {
			e.log.Warn("furniture: failed to play disc", "item", p.ItemID(), "disc", disc, "error", err)
		}
	}
	return nil
}

// EjectDisc removes the disc of a jukebox placement and returns it. An
// empty jukebox returns "".
func (e *Engine) EjectDisc(base uuid.UUID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, tags, _, err := e.jukebox(base)
	if err != nil || p.Disc == "" {
		return "", err
	}
	tags.Delete(KeyDisc)
	if e.conf.Jukeboxes != nil {
		if err := e.conf.Jukeboxes.Stop(p); err != nil {
			e.log.Warn("furniture: failed to stop disc", "item", p.ItemID(), "disc", p.Disc, "error", err)
		}
	}
	return p.Disc, nil
}

func (e *Engine) jukebox(base uuid.UUID) (*Placement, *Tags, JukeboxModule, error) {
	p, tags, err := e.lookup(base)
	if err != nil {
		return nil, nil, JukeboxModule{}, err
	}
	m, ok := Module[JukeboxModule](p.Definition)
	if !ok {
		return nil, nil, JukeboxModule{}, fmt.Errorf("jukebox %s: %w: jukebox", p.ItemID(), ErrMissingCapability)
	}
	return p, tags, m, nil
}
