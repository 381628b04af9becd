package furniture

import (
	"slices"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Seat is a sittable spot relative to the base entity, before rotation.
type Seat struct {
	Offset mgl64.Vec3
}

// SeatingModule spawns seat entities next to the base entity.
type SeatingModule struct {
	Seats []Seat
}

func (SeatingModule) Capability() Capability { return Seating }

// StorageType selects how a storage furniture keeps its contents.
type StorageType int

const (
	// StoragePersonal opens a per-viewer inventory.
	StoragePersonal StorageType = iota
	// StorageContainer keeps its contents on the placement itself.
	StorageContainer
	// StorageEnderChest opens the viewer's ender chest.
	StorageEnderChest
	// StorageDisposal destroys whatever is put in.
	StorageDisposal
	// StorageShulker keeps its contents on the dropped item.
	StorageShulker
)

// String returns the configuration name of the storage type.
func (t StorageType) String() string {
	switch t {
	case StoragePersonal:
		return "PERSONAL"
	case StorageContainer:
		return "STORAGE"
	case StorageEnderChest:
		return "ENDERCHEST"
	case StorageDisposal:
		return "DISPOSAL"
	case StorageShulker:
		return "SHULKER"
	default:
		return "UNKNOWN"
	}
}

func parseStorageType(s string) (StorageType, bool) {
	for t := StoragePersonal; t <= StorageShulker; t++ {
		if t.String() == strings.ToUpper(strings.TrimSpace(s)) {
			return t, true
		}
	}
	return StorageContainer, false
}

// StorageModule gives a furniture an inventory.
type StorageModule struct {
	Type       StorageType
	Rows       int
	Title      string
	OpenSound  string
	CloseSound string
}

func (StorageModule) Capability() Capability { return Storage }

// Slots returns the number of inventory slots.
func (m StorageModule) Slots() int {
	return m.Rows * 9
}

// JukeboxModule lets a furniture play music discs.
type JukeboxModule struct {
	Volume     float64
	Pitch      float64
	Permission string
}

func (JukeboxModule) Capability() Capability { return Jukebox }

// EvolutionModule grows a furniture into NextStage after Delay ticks.
type EvolutionModule struct {
	Delay       int
	Probability float64
	NextStage   string
}

func (EvolutionModule) Capability() Capability { return Evolution }

// LightingModule emits block light at the base entity's cell.
type LightingModule struct {
	Level int
}

func (LightingModule) Capability() Capability { return Lighting }

// LimitedPlacingModule restricts where a furniture may be placed.
type LimitedPlacingModule struct {
	Deny   bool
	Blocks []string
	Floor  bool
	Wall   bool
	Roof   bool

	// Radius and Amount cap how many placements of the same type may exist
	// within Radius blocks. Amount <= 0 disables the limit.
	Radius float64
	Amount int
}

func (LimitedPlacingModule) Capability() Capability { return LimitedPlacing }

// IsWall reports whether the furniture is mounted on walls.
func (m LimitedPlacingModule) IsWall() bool { return m.Wall }

// IsRoof reports whether the furniture hangs from ceilings.
func (m LimitedPlacingModule) IsRoof() bool { return m.Roof }

// AllowsFace reports whether a placement against the clicked face is permitted.
// Clicking the top of a block places on the floor, the bottom on the roof.
func (m LimitedPlacingModule) AllowsFace(face cube.Face) bool {
	switch face {
	case cube.FaceUp:
		return m.Floor
	case cube.FaceDown:
		return m.Roof
	default:
		return m.Wall
	}
}

// AllowsBlock reports whether a placement against the block is permitted.
func (m LimitedPlacingModule) AllowsBlock(blockID string) bool {
	if len(m.Blocks) == 0 {
		return true
	}
	listed := slices.Contains(m.Blocks, blockID)
	if m.Deny {
		return !listed
	}
	return listed
}

// LockModule marks a furniture as protectable by the lock service.
type LockModule struct {
	CanProtect     bool
	ProtectionType string
}

func (LockModule) Capability() Capability { return Lock }

// ClickAction is a set of actions run when every condition holds.
type ClickAction struct {
	Conditions []string
	Actions    []string
}

// ClickActionsModule runs actions when a placement is interacted with.
type ClickActionsModule struct {
	Actions []ClickAction
}

func (ClickActionsModule) Capability() Capability { return ClickActions }
