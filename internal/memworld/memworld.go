// Package memworld implements every furniture collaborator in memory. It
// backs the package tests and the furniturectl sandbox.
package memworld

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/oriumgames/furniture"
)

// ErrNoEntity is returned for operations on entities that do not exist.
var ErrNoEntity = errors.New("memworld: no such entity")

// replaceable lists the blocks a placement may overwrite.
var replaceable = map[string]bool{
	"":            true,
	"air":         true,
	"short_grass": true,
	"tall_grass":  true,
	"fern":        true,
	"water":       true,
	"lava":        true,
	"snow_layer":  true,
}

// Entity is a spawned entity.
type Entity struct {
	ID       uuid.UUID
	Spec     furniture.SpawnSpec
	Position mgl64.Vec3
	Yaw      float64
	Tags     *furniture.Tags
}

// World is an in-memory world. Cells below Ground are stone, everything
// else is air unless set with SetBlock.
type World struct {
	Ground int

	// FailSpawn makes Spawn fail for specs it returns an error for.
	FailSpawn func(spec furniture.SpawnSpec) error

	mu       sync.Mutex
	blocks   map[cube.Pos]string
	unloaded map[[2]int]bool
	entities map[uuid.UUID]*Entity
	order    []uuid.UUID
	vehicles map[uuid.UUID]uuid.UUID
	lights   map[cube.Pos]int
	models   map[uuid.UUID]string
	discs    map[uuid.UUID]string
	opened   []uuid.UUID
}

// New creates a world whose ground ends below y = ground.
func New(ground int) *World {
	return &World{
		Ground:   ground,
		blocks:   make(map[cube.Pos]string),
		unloaded: make(map[[2]int]bool),
		entities: make(map[uuid.UUID]*Entity),
		vehicles: make(map[uuid.UUID]uuid.UUID),
		lights:   make(map[cube.Pos]int),
		models:   make(map[uuid.UUID]string),
		discs:    make(map[uuid.UUID]string),
	}
}

// Compile-time checks.
var (
	_ furniture.World     = (*World)(nil)
	_ furniture.Entities  = (*World)(nil)
	_ furniture.Lights    = (*World)(nil)
	_ furniture.Models    = (*World)(nil)
	_ furniture.Storages  = (*World)(nil)
	_ furniture.Jukeboxes = (*World)(nil)
)

func chunkOf(pos cube.Pos) [2]int {
	return [2]int{pos.X() >> 4, pos.Z() >> 4}
}

// SetBlock sets the block at pos. An empty id sets air.
func (w *World) SetBlock(pos cube.Pos, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blocks[pos] = id
}

// Block returns the block at pos.
func (w *World) Block(pos cube.Pos) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.block(pos)
}

func (w *World) block(pos cube.Pos) string {
	if id, ok := w.blocks[pos]; ok {
		return id
	}
	if pos.Y() < w.Ground {
		return "stone"
	}
	return "air"
}

// Unload marks the chunk containing pos as not loaded.
func (w *World) Unload(pos cube.Pos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unloaded[chunkOf(pos)] = true
}

func (w *World) Loaded(pos cube.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.unloaded[chunkOf(pos)]
}

func (w *World) Replaceable(pos cube.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return replaceable[w.block(pos)]
}

func (w *World) NearbyEntities(pos mgl64.Vec3, radius float64) []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []uuid.UUID
	for _, id := range w.order {
		if w.entities[id].Position.Sub(pos).Len() <= radius {
			out = append(out, id)
		}
	}
	return out
}

func (w *World) Spawn(spec furniture.SpawnSpec) (uuid.UUID, error) {
	if w.FailSpawn != nil {
		if err := w.FailSpawn(spec); err != nil {
			return uuid.Nil, err
		}
	}
	tags := furniture.NewTags()
	if spec.Tags != nil {
		tags = spec.Tags.Clone()
	}
	id := uuid.New()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities[id] = &Entity{ID: id, Spec: spec, Position: spec.Position, Yaw: spec.Yaw, Tags: tags}
	w.order = append(w.order, id)
	return id, nil
}

// Add adds a plain entity, like a player, at pos.
func (w *World) Add(pos mgl64.Vec3) uuid.UUID {
	id := uuid.New()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities[id] = &Entity{ID: id, Position: pos, Tags: furniture.NewTags()}
	w.order = append(w.order, id)
	return id
}

func (w *World) Remove(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.entities[id]; !ok {
		return nil
	}
	delete(w.entities, id)
	delete(w.vehicles, id)
	w.order = slices.DeleteFunc(w.order, func(o uuid.UUID) bool { return o == id })
	for passenger, vehicle := range w.vehicles {
		if vehicle == id {
			delete(w.vehicles, passenger)
		}
	}
	return nil
}

func (w *World) Alive(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.entities[id]
	return ok
}

func (w *World) Tags(id uuid.UUID) (*furniture.Tags, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	return e.Tags, true
}

func (w *World) SetRotation(id uuid.UUID, yaw float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoEntity, id)
	}
	e.Yaw = yaw
	return nil
}

func (w *World) Passengers(id uuid.UUID) []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []uuid.UUID
	for _, passenger := range w.order {
		if w.vehicles[passenger] == id {
			out = append(out, passenger)
		}
	}
	return out
}

func (w *World) Mount(vehicle, passenger uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.entities[vehicle]; !ok {
		return fmt.Errorf("%w: %s", ErrNoEntity, vehicle)
	}
	if _, ok := w.entities[passenger]; !ok {
		return fmt.Errorf("%w: %s", ErrNoEntity, passenger)
	}
	w.vehicles[passenger] = vehicle
	return nil
}

func (w *World) Dismount(passenger uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.vehicles, passenger)
	return nil
}

// Vehicle returns what passenger rides.
func (w *World) Vehicle(passenger uuid.UUID) (uuid.UUID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.vehicles[passenger]
	return v, ok
}

// Entity returns a copy of an entity.
func (w *World) Entity(id uuid.UUID) (Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns the IDs of all entities in spawn order.
func (w *World) Entities() []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.order)
}

func (w *World) SetLight(pos cube.Pos, level int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lights[pos] = level
	return nil
}

func (w *World) ClearLight(pos cube.Pos) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.lights, pos)
	return nil
}

// Light returns the light level set at pos.
func (w *World) Light(pos cube.Pos) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lights[pos]
}

// Lights returns the number of lit cells.
func (w *World) Lights() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.lights)
}

func (w *World) AttachModel(base uuid.UUID, modelID string, _ float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.models[base] = modelID
	return nil
}

// Model returns the model attached to base.
func (w *World) Model(base uuid.UUID) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.models[base]
}

func (w *World) Open(actor uuid.UUID, _ *furniture.Placement, _ furniture.StorageModule) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opened = append(w.opened, actor)
	return nil
}

// Opened returns the actors that opened a storage, in order.
func (w *World) Opened() []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.opened)
}

func (w *World) Play(p *furniture.Placement, disc string, _ furniture.JukeboxModule) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.discs[p.Base] = disc
	return nil
}

func (w *World) Stop(p *furniture.Placement) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.discs, p.Base)
	return nil
}

// Playing returns the disc playing at base.
func (w *World) Playing(base uuid.UUID) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.discs[base]
}
