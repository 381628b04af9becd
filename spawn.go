package furniture

import (
	"github.com/go-gl/mathgl/mgl64"
)

// EntityRole distinguishes the entities a placement is made of.
type EntityRole uint8

const (
	// EntityBase is the entity carrying the placement's visual and state.
	EntityBase EntityRole = iota
	// EntitySeat is an invisible entity passengers mount.
	EntitySeat
)

// String returns the role name.
func (r EntityRole) String() string {
	if r == EntitySeat {
		return "seat"
	}
	return "base"
}

// SpawnSpec configures the initial state of an entity spawned for a
// placement. It is passed to Entities.Spawn.
type SpawnSpec struct {
	// Identity
	Role   EntityRole
	ItemID string
	Kind   Kind

	// Position & Rotation
	Position mgl64.Vec3
	Yaw      float64

	// Rendering
	Display   *DisplayProperties
	Invisible bool

	// Marker entities have no physics, gravity or collision.
	Marker bool

	// Tags are copied onto the entity before Spawn returns.
	Tags *Tags
}

func baseSpec(def *Definition, pos mgl64.Vec3, yaw float64, tags *Tags) SpawnSpec {
	return SpawnSpec{
		Role:     EntityBase,
		ItemID:   def.ItemID(),
		Kind:     def.Kind(),
		Position: pos,
		Yaw:      yaw,
		Display:  def.Display(),
		Marker:   true,
		Tags:     tags,
	}
}

func seatSpec(def *Definition, pos mgl64.Vec3, yaw float64, tags *Tags) SpawnSpec {
	return SpawnSpec{
		Role:      EntitySeat,
		ItemID:    def.ItemID(),
		Position:  pos,
		Yaw:       yaw,
		Invisible: true,
		Marker:    true,
		Tags:      tags,
	}
}
