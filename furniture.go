// Package furniture provides multi-part furniture placements for Dragonfly
// worlds.
//
// A placement is a base entity plus optional seat entities, light and
// storage state, bound to one logical object. The package coordinates the
// lifecycle of these parts, the space they occupy and their orientation, so
// that the rendered hitbox, the reverse lookup index and the persisted state
// stay in sync.
//
// # Quick Start
//
// Build the registry once at load time:
//
//	reg, err := furniture.NewBuilder().
//	    Log(logger).
//	    DisplayEntities(true).
//	    Definition(furniture.Config{
//	        ItemID:    "oak_chair",
//	        Rotatable: true,
//	        Seats:     []string{"0,0.3,0"},
//	        Hitbox:    &furniture.HitboxConfig{Barriers: []string{"0,0,0"}},
//	    }).
//	    Build()
//
// Then create an engine over the host's world and entities:
//
//	eng, err := furniture.NewEngine(furniture.EngineConfig{
//	    Registry: reg,
//	    World:    w,
//	    Entities: ents,
//	})
//
//	def, _ := reg.Definition("oak_chair")
//	p, err := eng.Place(def, cube.Pos{0, 64, 0}, 90, cube.FaceUp)
//	p, err = eng.Rotate(p.Base)
//	err = eng.Remove(p.Base)
//
// # Capabilities
//
// Definitions compose capability modules (seating, storage, jukebox,
// evolution, lighting, limited placing, lock, click actions). Modules are
// queried by type:
//
//	if seating, ok := furniture.Module[furniture.SeatingModule](def); ok {
//	    fmt.Println(len(seating.Seats))
//	}
//
// # State
//
// Placement state lives in the tags of the base entity. Placement values are
// snapshots read from those tags and never go stale in a way that matters:
// read a new one after every mutation.
package furniture

// Version is the furniture package version.
const Version = "1.0.0"
