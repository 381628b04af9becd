package furniture

import "errors"

var (
	// ErrNotLoaded is returned when the anchor cell is not loaded.
	ErrNotLoaded = errors.New("furniture: anchor not loaded")
	// ErrNoSpace is returned when a hitbox cell is not replaceable.
	ErrNoSpace = errors.New("furniture: not enough space")
	// ErrSpawnFailed is returned when the base entity could not be spawned.
	ErrSpawnFailed = errors.New("furniture: base entity spawn failed")
	// ErrCancelled is returned when a handler cancelled the action.
	ErrCancelled = errors.New("furniture: cancelled")
	// ErrUnknownPlacement is returned for entities that are not furniture
	// bases or whose definition is no longer registered.
	ErrUnknownPlacement = errors.New("furniture: unknown placement")
	// ErrNotRotatable is returned when rotating a non-rotatable placement.
	ErrNotRotatable = errors.New("furniture: not rotatable")
	// ErrUnbreakable is returned when breaking a placement without hardness.
	ErrUnbreakable = errors.New("furniture: unbreakable")
	// ErrPlacementDenied is returned when limited placing rules reject a placement.
	ErrPlacementDenied = errors.New("furniture: placement denied")
	// ErrMissingCapability is returned by capability operations on
	// placements whose definition lacks the capability.
	ErrMissingCapability = errors.New("furniture: missing capability")
	// ErrNoFreeSeat is returned when every seat is occupied.
	ErrNoFreeSeat = errors.New("furniture: no free seat")
	// ErrLocked is returned when the lock service denies an interaction.
	ErrLocked = errors.New("furniture: locked")
	// ErrOccupied is returned when inserting a disc into a full jukebox.
	ErrOccupied = errors.New("furniture: jukebox occupied")
)

// sentinels lists the errors reported as metric attributes.
var sentinels = []error{
	ErrNotLoaded, ErrNoSpace, ErrSpawnFailed, ErrCancelled, ErrUnknownPlacement,
	ErrNotRotatable, ErrUnbreakable, ErrPlacementDenied, ErrMissingCapability, ErrNoFreeSeat,
	ErrLocked, ErrOccupied,
}
