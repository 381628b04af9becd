// Package dfworld adapts a Dragonfly world to the furniture collaborator
// interfaces.
//
// Dragonfly has no entity-attached persistent data or riding, so the
// adapter keeps tags and passengers itself and spawns text entities as
// base and seat markers. Calls must happen inside a world transaction:
//
//	a := dfworld.New()
//	eng, _ := furniture.NewEngine(furniture.EngineConfig{
//	    Registry: reg, World: a, Entities: a, Lights: a,
//	})
//	a.Run(w, func() {
//	    _, _ = eng.Place(def, pos, yaw, cube.FaceUp)
//	})
package dfworld

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/oriumgames/furniture"
)

// ErrNoTx is returned when the adapter is used outside a transaction.
var ErrNoTx = errors.New("dfworld: not inside a world transaction")

// Adapter implements furniture.World, furniture.Entities and
// furniture.Lights over a Dragonfly world.
type Adapter struct {
	mu sync.Mutex
	tx *world.Tx

	// handles holds the marker entities spawned for placements
	handles map[uuid.UUID]*world.EntityHandle

	// tags holds the furniture tags of every spawned entity
	tags map[uuid.UUID]*furniture.Tags

	// vehicles maps passengers to the seat they ride
	vehicles map[uuid.UUID]uuid.UUID
}

// New creates an adapter.
func New() *Adapter {
	return &Adapter{
		handles:  make(map[uuid.UUID]*world.EntityHandle),
		tags:     make(map[uuid.UUID]*furniture.Tags),
		vehicles: make(map[uuid.UUID]uuid.UUID),
	}
}

// Compile-time checks.
var (
	_ furniture.World    = (*Adapter)(nil)
	_ furniture.Entities = (*Adapter)(nil)
	_ furniture.Lights   = (*Adapter)(nil)
)

// Run runs fn inside a transaction of w with the adapter bound to it, and
// waits for it to finish.
func (a *Adapter) Run(w *world.World, fn func()) {
	<-w.Exec(func(tx *world.Tx) {
		unbind := a.Bind(tx)
		defer unbind()
		fn()
	})
}

// Bind binds the adapter to tx until the returned function is called. Use
// it from code that already runs inside a transaction.
func (a *Adapter) Bind(tx *world.Tx) func() {
	a.mu.Lock()
	a.tx = tx
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		a.tx = nil
		a.mu.Unlock()
	}
}

func (a *Adapter) current() *world.Tx {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tx
}

func (a *Adapter) Loaded(pos cube.Pos) bool {
	tx := a.current()
	return tx != nil && !pos.OutOfBounds(tx.Range())
}

func (a *Adapter) Replaceable(pos cube.Pos) bool {
	tx := a.current()
	if tx == nil {
		return false
	}
	b := tx.Block(pos)
	if _, ok := b.(block.Air); ok {
		return true
	}
	r, ok := b.(block.Replaceable)
	return ok && r.ReplaceableBy(block.Air{})
}

func (a *Adapter) NearbyEntities(pos mgl64.Vec3, radius float64) []uuid.UUID {
	tx := a.current()
	if tx == nil {
		return nil
	}
	box := cube.Box(pos[0]-radius, pos[1]-radius, pos[2]-radius, pos[0]+radius, pos[1]+radius, pos[2]+radius)
	var out []uuid.UUID
	for e := range tx.EntitiesWithin(box) {
		if e.Position().Sub(pos).Len() <= radius {
			out = append(out, e.H().UUID())
		}
	}
	return out
}

func (a *Adapter) Spawn(spec furniture.SpawnSpec) (uuid.UUID, error) {
	tx := a.current()
	if tx == nil {
		return uuid.Nil, ErrNoTx
	}
	label := spec.ItemID
	if spec.Invisible {
		label = ""
	}
	h := entity.NewText(label, spec.Position)
	tx.AddEntity(h)
	id := h.UUID()

	tags := furniture.NewTags()
	if spec.Tags != nil {
		tags = spec.Tags.Clone()
	}
	a.mu.Lock()
	a.handles[id] = h
	a.tags[id] = tags
	a.mu.Unlock()
	return id, nil
}

func (a *Adapter) Remove(id uuid.UUID) error {
	tx := a.current()
	if tx == nil {
		return ErrNoTx
	}
	a.mu.Lock()
	h, ok := a.handles[id]
	delete(a.handles, id)
	delete(a.tags, id)
	for passenger, vehicle := range a.vehicles {
		if vehicle == id {
			delete(a.vehicles, passenger)
		}
	}
	a.mu.Unlock()
	if !ok {
		return nil
	}
	if e, ok := h.Entity(tx); ok {
		tx.RemoveEntity(e)
	}
	if err := h.Close(); err != nil {
		return fmt.Errorf("dfworld: close %s: %w", id, err)
	}
	return nil
}

func (a *Adapter) Alive(id uuid.UUID) bool {
	a.mu.Lock()
	h, ok := a.handles[id]
	a.mu.Unlock()
	if !ok {
		return false
	}
	tx := a.current()
	if tx == nil {
		return true
	}
	_, ok = h.Entity(tx)
	return ok
}

func (a *Adapter) Tags(id uuid.UUID) (*furniture.Tags, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tags[id]
	return t, ok
}

// SetRotation is a no-op: text entities have no visible rotation. The yaw
// is kept in the base entity's tags.
func (a *Adapter) SetRotation(id uuid.UUID, _ float64) error {
	if !a.Alive(id) {
		return fmt.Errorf("dfworld: no entity %s", id)
	}
	return nil
}

func (a *Adapter) Passengers(id uuid.UUID) []uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []uuid.UUID
	for passenger, vehicle := range a.vehicles {
		if vehicle == id {
			out = append(out, passenger)
		}
	}
	slices.SortFunc(out, func(x, y uuid.UUID) int { return bytes.Compare(x[:], y[:]) })
	return out
}

func (a *Adapter) Mount(vehicle, passenger uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.handles[vehicle]; !ok {
		return fmt.Errorf("dfworld: no entity %s", vehicle)
	}
	a.vehicles[passenger] = vehicle
	return nil
}

func (a *Adapter) Dismount(passenger uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.vehicles, passenger)
	return nil
}

// SetLight places a light block at pos if the cell is air.
func (a *Adapter) SetLight(pos cube.Pos, level int) error {
	tx := a.current()
	if tx == nil {
		return ErrNoTx
	}
	if _, ok := tx.Block(pos).(block.Air); !ok {
		return fmt.Errorf("dfworld: cannot light %v: cell is not air", pos)
	}
	tx.SetBlock(pos, block.Light{Level: level}, nil)
	return nil
}

// ClearLight removes the light block at pos, if any.
func (a *Adapter) ClearLight(pos cube.Pos) error {
	tx := a.current()
	if tx == nil {
		return ErrNoTx
	}
	if _, ok := tx.Block(pos).(block.Light); ok {
		tx.SetBlock(pos, block.Air{}, nil)
	}
	return nil
}
