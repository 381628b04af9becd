package furniture

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// World answers the spatial queries the engine needs. Implementations
// bridge the engine with the host's block storage.
type World interface {
	// Loaded returns true if the chunk containing pos is loaded.
	Loaded(pos cube.Pos) bool

	// Replaceable returns true if the block at pos may be overwritten by a
	// placement (air, grass, fluids and the like).
	Replaceable(pos cube.Pos) bool

	// NearbyEntities returns the entities within radius of pos.
	NearbyEntities(pos mgl64.Vec3, radius float64) []uuid.UUID
}

// Entities spawns and manipulates the entities that make up placements.
type Entities interface {
	// Spawn creates an entity and returns its UUID. The initial tags of the
	// spec must be readable through Tags once Spawn returns.
	Spawn(spec SpawnSpec) (uuid.UUID, error)

	// Remove removes an entity. Removing a dead entity is not an error.
	Remove(id uuid.UUID) error

	// Alive returns true if the entity exists.
	Alive(id uuid.UUID) bool

	// Tags returns the tag storage of an entity.
	Tags(id uuid.UUID) (*Tags, bool)

	// SetRotation sets the yaw of an entity.
	SetRotation(id uuid.UUID, yaw float64) error

	// Passengers returns the entities riding id.
	Passengers(id uuid.UUID) []uuid.UUID

	// Mount makes passenger ride vehicle.
	Mount(vehicle, passenger uuid.UUID) error

	// Dismount detaches passenger from whatever it rides.
	Dismount(passenger uuid.UUID) error
}

// Renderer keeps the client side hitbox representation of placements and
// the reverse index from cells and interaction IDs back to base entities.
// HitboxIndex is the reference implementation.
type Renderer interface {
	// RefreshHitbox (re)builds the hitbox of a placement for its current yaw.
	RefreshHitbox(p *Placement)

	// ReleaseHitbox drops every hitbox entry of a base entity.
	ReleaseHitbox(base uuid.UUID)

	// BaseAt returns the base entity whose hitbox occupies pos.
	BaseAt(pos cube.Pos) (uuid.UUID, bool)

	// BaseByInteraction returns the base entity owning an interaction entity ID.
	BaseByInteraction(id int32) (uuid.UUID, bool)
}

// Models attaches animated models to base entities.
type Models interface {
	AttachModel(base uuid.UUID, modelID string, yaw float64) error
}

// Lights sets and clears block light emitted by placements.
type Lights interface {
	SetLight(pos cube.Pos, level int) error
	ClearLight(pos cube.Pos) error
}

// Locks decides whether an actor may interact with a protected placement.
type Locks interface {
	CanInteract(actor uuid.UUID, p *Placement, m LockModule) bool
}

// Actions evaluates click action conditions and runs their actions.
type Actions interface {
	CanRun(actor uuid.UUID, conditions []string) bool
	Perform(actor uuid.UUID, p *Placement, actions []string) error
}

// Storages opens storage inventories.
type Storages interface {
	Open(actor uuid.UUID, p *Placement, m StorageModule) error
}

// Jukeboxes plays and stops discs inserted into jukebox placements.
type Jukeboxes interface {
	Play(p *Placement, disc string, m JukeboxModule) error
	Stop(p *Placement) error
}
