package furniture

import (
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
)

// HitboxIndex is a Renderer that keeps the reverse lookups from hitbox
// cells and interaction entity IDs back to base entities. Hosts that send
// hitbox packets wrap it and forward RefreshHitbox and ReleaseHitbox.
//
// Barrier cells are always indexed. Interaction cells only get an
// interaction ID when the definition is interactable. A placement with an
// empty hitbox indexes its anchor cell so it can still be found by position.
//
// Concurrency:
// HitboxIndex is safe for concurrent use.
type HitboxIndex struct {
	// cells maps occupied cells to their base entity
	cells   map[cube.Pos]uuid.UUID
	cellsMu sync.RWMutex

	// interactions maps interaction entity IDs to their base entity
	interactions   map[int32]uuid.UUID
	interactionsMu sync.RWMutex

	// entries holds what each base entity registered, for release
	entries   map[uuid.UUID]indexEntry
	entriesMu sync.Mutex

	nextID int32
}

type indexEntry struct {
	cells        []cube.Pos
	interactions []int32
}

// NewHitboxIndex creates an empty index.
func NewHitboxIndex() *HitboxIndex {
	return &HitboxIndex{
		cells:        make(map[cube.Pos]uuid.UUID),
		interactions: make(map[int32]uuid.UUID),
		entries:      make(map[uuid.UUID]indexEntry),
	}
}

// Compile-time check that HitboxIndex implements Renderer.
var _ Renderer = (*HitboxIndex)(nil)

// RefreshHitbox replaces the entries of p.Base with the hitbox at p's
// current yaw.
func (x *HitboxIndex) RefreshHitbox(p *Placement) {
	x.entriesMu.Lock()
	defer x.entriesMu.Unlock()

	x.release(p.Base)

	var entry indexEntry
	placed := p.CellLocations()
	if len(placed) == 0 {
		entry.cells = append(entry.cells, p.Anchor)
	}
	interactable := p.Definition.Interactable()
	for _, c := range placed {
		if c.Cell.Role == RoleInteraction {
			if interactable {
				x.nextID++
				entry.interactions = append(entry.interactions, x.nextID)
			}
			continue
		}
		entry.cells = append(entry.cells, c.Pos)
	}

	x.cellsMu.Lock()
	for _, pos := range entry.cells {
		x.cells[pos] = p.Base
	}
	x.cellsMu.Unlock()

	x.interactionsMu.Lock()
	for _, id := range entry.interactions {
		x.interactions[id] = p.Base
	}
	x.interactionsMu.Unlock()

	x.entries[p.Base] = entry
}

// ReleaseHitbox removes every entry of base.
func (x *HitboxIndex) ReleaseHitbox(base uuid.UUID) {
	x.entriesMu.Lock()
	defer x.entriesMu.Unlock()
	x.release(base)
}

// release removes the entries of base. Cells taken over by another
// placement are left alone. entriesMu must be held.
func (x *HitboxIndex) release(base uuid.UUID) {
	entry, ok := x.entries[base]
	if !ok {
		return
	}
	delete(x.entries, base)

	x.cellsMu.Lock()
	for _, pos := range entry.cells {
		if x.cells[pos] == base {
			delete(x.cells, pos)
		}
	}
	x.cellsMu.Unlock()

	x.interactionsMu.Lock()
	for _, id := range entry.interactions {
		delete(x.interactions, id)
	}
	x.interactionsMu.Unlock()
}

// BaseAt returns the base entity occupying pos.
func (x *HitboxIndex) BaseAt(pos cube.Pos) (uuid.UUID, bool) {
	x.cellsMu.RLock()
	defer x.cellsMu.RUnlock()
	base, ok := x.cells[pos]
	return base, ok
}

// BaseByInteraction returns the base entity owning an interaction ID.
func (x *HitboxIndex) BaseByInteraction(id int32) (uuid.UUID, bool) {
	x.interactionsMu.RLock()
	defer x.interactionsMu.RUnlock()
	base, ok := x.interactions[id]
	return base, ok
}

// Cells returns the cells indexed for base.
func (x *HitboxIndex) Cells(base uuid.UUID) []cube.Pos {
	x.entriesMu.Lock()
	defer x.entriesMu.Unlock()
	return slices.Clone(x.entries[base].cells)
}

// Interactions returns the interaction IDs allocated for base.
func (x *HitboxIndex) Interactions(base uuid.UUID) []int32 {
	x.entriesMu.Lock()
	defer x.entriesMu.Unlock()
	return slices.Clone(x.entries[base].interactions)
}

// Len returns the number of indexed cells and interaction IDs.
func (x *HitboxIndex) Len() (cells, interactions int) {
	x.cellsMu.RLock()
	cells = len(x.cells)
	x.cellsMu.RUnlock()
	x.interactionsMu.RLock()
	interactions = len(x.interactions)
	x.interactionsMu.RUnlock()
	return cells, interactions
}
