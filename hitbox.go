package furniture

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// HitboxRole classifies a hitbox cell.
type HitboxRole uint8

const (
	// RoleBarrier cells block passage like a solid block.
	RoleBarrier HitboxRole = iota
	// RoleInteraction cells are click targets only.
	RoleInteraction
)

// String returns the string representation of the role.
func (r HitboxRole) String() string {
	switch r {
	case RoleBarrier:
		return "barrier"
	case RoleInteraction:
		return "interaction"
	default:
		return "unknown"
	}
}

// HitboxCell is a single occupied cell relative to a placement's anchor.
type HitboxCell struct {
	Offset cube.Pos
	Role   HitboxRole

	// Width and Height size the click target of interaction cells.
	// Barrier cells always fill the whole block.
	Width  float64
	Height float64
}

// Hitbox is the ordered set of cells a placement occupies.
// The zero value is the empty hitbox.
type Hitbox struct {
	cells []HitboxCell
}

// EmptyHitbox is the canonical hitbox without any cells.
var EmptyHitbox = Hitbox{}

// NewHitbox creates a hitbox from cells, keeping their order.
// Interaction cells without a size default to a full block.
func NewHitbox(cells ...HitboxCell) Hitbox {
	if len(cells) == 0 {
		return EmptyHitbox
	}
	out := make([]HitboxCell, len(cells))
	for i, c := range cells {
		if c.Width <= 0 {
			c.Width = 1
		}
		if c.Height <= 0 {
			c.Height = 1
		}
		out[i] = c
	}
	return Hitbox{cells: out}
}

// Empty returns true if the hitbox has no cells.
func (h Hitbox) Empty() bool {
	return len(h.cells) == 0
}

// Cells returns a copy of all cells in template order.
func (h Hitbox) Cells() []HitboxCell {
	return append([]HitboxCell(nil), h.cells...)
}

// BarrierCells returns the barrier cells in template order.
func (h Hitbox) BarrierCells() []HitboxCell {
	return h.filter(RoleBarrier)
}

// InteractionCells returns the interaction cells in template order.
func (h Hitbox) InteractionCells() []HitboxCell {
	return h.filter(RoleInteraction)
}

func (h Hitbox) filter(role HitboxRole) []HitboxCell {
	var out []HitboxCell
	for _, c := range h.cells {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// hasOffAxisBarrier reports whether any barrier cell is shifted on the X or Z axis.
// Rotating such a hitbox would move solid cells around the anchor.
func (h Hitbox) hasOffAxisBarrier() bool {
	for _, c := range h.cells {
		if c.Role == RoleBarrier && (c.Offset.X() != 0 || c.Offset.Z() != 0) {
			return true
		}
	}
	return false
}

// Locations returns the world cells of the hitbox for a placement anchored at
// anchor and facing yaw. Offsets are rotated by the yaw's nearest quarter turn.
// The result follows template order.
func (h Hitbox) Locations(anchor cube.Pos, yaw float64) []cube.Pos {
	if len(h.cells) == 0 {
		return nil
	}
	turns := quarterTurns(yaw)
	out := make([]cube.Pos, len(h.cells))
	for i, c := range h.cells {
		out[i] = anchor.Add(rotateOffset(c.Offset, turns))
	}
	return out
}

// CellLocations is like Locations but keeps the cell each location belongs to.
func (h Hitbox) CellLocations(anchor cube.Pos, yaw float64) []PlacedCell {
	if len(h.cells) == 0 {
		return nil
	}
	turns := quarterTurns(yaw)
	out := make([]PlacedCell, len(h.cells))
	for i, c := range h.cells {
		out[i] = PlacedCell{Pos: anchor.Add(rotateOffset(c.Offset, turns)), Cell: c}
	}
	return out
}

// PlacedCell is a hitbox cell resolved to a world position.
type PlacedCell struct {
	Pos  cube.Pos
	Cell HitboxCell
}

// quarterTurns snaps a yaw to the nearest quarter turn in [0, 3].
func quarterTurns(yaw float64) int {
	return int(math.Floor(normaliseYaw(yaw)/90+0.5)) & 3
}

// rotateOffset rotates an offset clockwise around the Y axis by the given
// number of quarter turns. Yaw 0 faces +Z, yaw 90 faces -X.
func rotateOffset(off cube.Pos, turns int) cube.Pos {
	x, y, z := off.X(), off.Y(), off.Z()
	switch turns & 3 {
	case 1:
		return cube.Pos{-z, y, x}
	case 2:
		return cube.Pos{-x, y, -z}
	case 3:
		return cube.Pos{z, y, -x}
	default:
		return off
	}
}
