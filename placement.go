package furniture

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Placement is a snapshot of one placed furniture. The state lives in the
// base entity's tags; a Placement is read from them and never written back,
// so it can be held across calls without drifting from the world.
type Placement struct {
	// Base is the base entity.
	Base uuid.UUID

	// Definition is the furniture type.
	Definition *Definition

	// Position & Orientation
	Anchor   cube.Pos
	Position mgl64.Vec3
	Yaw      float64
	Facing   cube.Face

	// Capability state. Fields of absent capabilities are zero.
	Seats          []uuid.UUID
	EvolutionStage int
	Storage        []Item
	Disc           string
	Model          string
}

// ItemID returns the item ID of the placement's definition.
func (p *Placement) ItemID() string {
	return p.Definition.ItemID()
}

// Rotation returns the rotation step of the placement's yaw.
func (p *Placement) Rotation() Rotation {
	return RotationFromYaw(p.Yaw)
}

// Locations returns the world cells occupied by the placement's hitbox.
func (p *Placement) Locations() []cube.Pos {
	return p.Definition.Hitbox().Locations(p.Anchor, p.Yaw)
}

// CellLocations returns the placement's hitbox cells resolved to world cells.
func (p *Placement) CellLocations() []PlacedCell {
	return p.Definition.Hitbox().CellLocations(p.Anchor, p.Yaw)
}

// LightPos returns the cell the placement's light is registered at.
func (p *Placement) LightPos() cube.Pos {
	return cellOf(p.Position)
}

// String returns a string representation of the placement for debugging.
func (p *Placement) String() string {
	return fmt.Sprintf("Placement{Base: %s, Item: %s, Anchor: %v, Yaw: %.0f}",
		p.Base, p.ItemID(), p.Anchor, p.Yaw)
}

// newBaseTags returns the tags written on a fresh base entity.
func newBaseTags(def *Definition, anchor cube.Pos, yaw float64, facing cube.Face, o placeOptions) *Tags {
	t := NewTags()
	t.SetString(KeyFurniture, def.ItemID())
	t.SetFloat(KeyYaw, yaw)
	t.SetByte(KeyFacing, byte(facing))
	t.SetInts(KeyAnchor, []int{anchor.X(), anchor.Y(), anchor.Z()})
	if def.Has(Evolution) {
		t.SetInt(KeyEvolution, o.stage)
	}
	if m, ok := Module[StorageModule](def); ok && m.Type == StorageContainer {
		t.SetItems(KeyStorage, o.storage)
	}
	if def.Has(Jukebox) && o.disc != "" {
		t.SetString(KeyDisc, o.disc)
	}
	return t
}

// readPlacement builds a snapshot from the tags of a base entity.
func readPlacement(base uuid.UUID, tags *Tags, reg *Registry) (*Placement, error) {
	itemID, ok := tags.String(KeyFurniture)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no furniture tag", ErrUnknownPlacement, base)
	}
	if tags.Has(KeySeatBase) {
		return nil, fmt.Errorf("%w: %s is a seat", ErrUnknownPlacement, base)
	}
	def, ok := reg.Definition(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownPlacement, itemID)
	}
	anchor, ok := tags.Ints(KeyAnchor)
	if !ok || len(anchor) != 3 {
		return nil, fmt.Errorf("%w: %s has no anchor", ErrUnknownPlacement, base)
	}
	yaw, _ := tags.Float(KeyYaw)
	facing, ok := tags.Byte(KeyFacing)
	if !ok {
		facing = byte(cube.FaceUp)
	}

	p := &Placement{
		Base:       base,
		Definition: def,
		Anchor:     cube.Pos{anchor[0], anchor[1], anchor[2]},
		Yaw:        yaw,
		Facing:     cube.Face(facing),
	}
	p.Position = def.SpawnPosition(p.Anchor, p.Facing)
	p.Seats, _ = tags.UUIDs(KeySeats)
	p.EvolutionStage, _ = tags.Int(KeyEvolution)
	p.Storage, _ = tags.Items(KeyStorage)
	p.Disc, _ = tags.String(KeyDisc)
	p.Model, _ = tags.String(KeyModel)
	return p, nil
}
