package furniture

import (
	"slices"

	"github.com/google/uuid"
)

// placeOptions configures a single Place call.
type placeOptions struct {
	// checkSpace rejects placements whose hitbox overlaps solid blocks.
	// Default: true.
	checkSpace bool

	// actor is the entity placing the furniture, uuid.Nil for the host.
	actor uuid.UUID

	// Restored state, used when a placement is recreated from a snapshot.
	stage   int
	storage []Item
	disc    string
}

// defaultPlaceOptions returns the options of a plain Place call.
func defaultPlaceOptions() placeOptions {
	return placeOptions{checkSpace: true}
}

// PlaceOption configures a placement.
type PlaceOption func(*placeOptions)

// WithoutSpaceCheck skips the hitbox space check. Used when the caller has
// already validated the space or replaces an existing placement in place.
func WithoutSpaceCheck() PlaceOption {
	return func(o *placeOptions) {
		o.checkSpace = false
	}
}

// WithActor sets the entity placing the furniture. It is passed to the
// handler through the event context.
func WithActor(actor uuid.UUID) PlaceOption {
	return func(o *placeOptions) {
		o.actor = actor
	}
}

// WithEvolutionStage starts an evolving placement at the given stage.
func WithEvolutionStage(stage int) PlaceOption {
	return func(o *placeOptions) {
		o.stage = max(stage, 0)
	}
}

// WithStorage fills the storage of the placement.
func WithStorage(items []Item) PlaceOption {
	return func(o *placeOptions) {
		o.storage = slices.Clone(items)
	}
}

// WithDisc inserts a disc into a jukebox placement.
func WithDisc(disc string) PlaceOption {
	return func(o *placeOptions) {
		o.disc = disc
	}
}

// Restore returns the options recreating the state of a snapshot.
//
// Usage:
//
//	p, err := eng.Place(def, snap.Anchor, snap.Yaw, snap.Facing, furniture.Restore(snap)...)
func Restore(p *Placement) []PlaceOption {
	return []PlaceOption{
		WithoutSpaceCheck(),
		WithEvolutionStage(p.EvolutionStage),
		WithStorage(p.Storage),
		WithDisc(p.Disc),
	}
}
