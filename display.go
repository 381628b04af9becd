package furniture

import (
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the entity type that renders a furniture's visual.
type Kind int

const (
	// KindItemFrame renders through an invisible item frame.
	KindItemFrame Kind = iota
	// KindArmorStand renders through an invisible armour stand's head slot.
	KindArmorStand
	// KindDisplayEntity renders through an item display entity.
	KindDisplayEntity
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindItemFrame:
		return "ITEM_FRAME"
	case KindArmorStand:
		return "ARMOR_STAND"
	case KindDisplayEntity:
		return "DISPLAY_ENTITY"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a representation kind name.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ITEM_FRAME":
		return KindItemFrame, true
	case "ARMOR_STAND", "ARMOR_STAND_DISPLAY":
		return KindArmorStand, true
	case "DISPLAY_ENTITY":
		return KindDisplayEntity, true
	default:
		return KindItemFrame, false
	}
}

// Transform is the item display transform of a display entity.
type Transform int

const (
	TransformNone Transform = iota
	TransformThirdPersonLeftHand
	TransformThirdPersonRightHand
	TransformFirstPersonLeftHand
	TransformFirstPersonRightHand
	TransformHead
	TransformGUI
	TransformGround
	TransformFixed
)

var transformNames = [...]string{
	TransformNone:                 "NONE",
	TransformThirdPersonLeftHand:  "THIRDPERSON_LEFTHAND",
	TransformThirdPersonRightHand: "THIRDPERSON_RIGHTHAND",
	TransformFirstPersonLeftHand:  "FIRSTPERSON_LEFTHAND",
	TransformFirstPersonRightHand: "FIRSTPERSON_RIGHTHAND",
	TransformHead:                 "HEAD",
	TransformGUI:                  "GUI",
	TransformGround:               "GROUND",
	TransformFixed:                "FIXED",
}

// String returns the configuration name of the transform.
func (t Transform) String() string {
	if t < 0 || int(t) >= len(transformNames) {
		return "UNKNOWN"
	}
	return transformNames[t]
}

func parseTransform(s string) (Transform, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range transformNames {
		if name == s {
			return Transform(i), true
		}
	}
	return TransformNone, false
}

// DisplayProperties configures display entity rendering.
type DisplayProperties struct {
	Transform Transform
	Scale     mgl64.Vec3
	HasScale  bool
	Width     float64
	Height    float64
}

// scaleY returns the vertical scale, 1 when no scale is configured.
func (p *DisplayProperties) scaleY() float64 {
	if p == nil || !p.HasScale {
		return 1
	}
	return p.Scale.Y()
}

// Mount describes how a furniture is attached to the world.
type Mount struct {
	Wall bool
	Roof bool
}

// Visual origin corrections of display entities. Display transforms anchor
// the model at different points, so these re-centre it on the intended cell.
// The values match the client's rendering origin and must be re-verified
// against it when the client changes.
const (
	// wallFixedInset pulls FIXED wall models back towards the wall. 0.5 would
	// place them inside the neighbouring block.
	wallFixedInset = 0.49
	// floorLift raises the model's centre to the middle of the cell.
	floorLift = 0.5
	// roofFixedLift flips FIXED roof models against the ceiling, below the
	// block above.
	roofFixedLift = 0.49
	// roofDrop hangs non-FIXED roof models one block down.
	roofDrop = -1.0
)

// CorrectSpawnPosition returns where the base entity of a placement anchored
// at anchor must be spawned. It starts from the horizontal centre of the
// anchor cell and only adjusts display entities with display properties:
// models with a non-NONE transform are only corrected when wall or roof
// mounted.
func CorrectSpawnPosition(kind Kind, display *DisplayProperties, mount Mount, anchor cube.Pos, facing cube.Face) mgl64.Vec3 {
	pos := centreBottom(anchor)
	if kind != KindDisplayEntity || display == nil {
		return pos
	}
	if display.Transform != TransformNone && !mount.Wall && !mount.Roof {
		return pos
	}
	scale := display.scaleY()
	fixed := display.Transform == TransformFixed
	if fixed && mount.Wall {
		v := faceVector(facing)
		v[1] = 0
		pos = pos.Sub(v.Mul(wallFixedInset * scale))
	}
	lift := floorLift * scale
	if mount.Roof {
		if fixed {
			lift += roofFixedLift
		} else {
			lift += roofDrop
		}
	}
	pos[1] += lift
	return pos
}
