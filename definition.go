package furniture

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// maxLightLevel is the brightest block light level.
const maxLightLevel = 15

// Sounds holds the sounds played when a placement is placed or broken.
type Sounds struct {
	Place  string
	Break  string
	Volume float64
	Pitch  float64
}

// Definition is the immutable template of one furniture type.
// Definitions are created once at load time through a Builder and are safe
// for concurrent reads afterwards.
type Definition struct {
	itemID   string
	hardness int

	kind         Kind
	fallbackKind Kind
	display      *DisplayProperties

	rotation  RestrictedRotation
	rotatable bool
	hitbox    Hitbox

	// caps tracks which modules are present
	caps CapabilitySet

	// modules stores module values indexed by Capability
	modules [capabilityCount]CapabilityModule

	drop             *DropTable
	modelID          string
	farmlandRequired bool
	sounds           *Sounds
}

// NewDefinition builds a definition from its configuration section.
// Invalid enum values and unsound rotation requests are corrected with a
// warning; only a missing item ID is an error.
func NewDefinition(ctx *LoadContext, cfg Config) (*Definition, error) {
	if strings.TrimSpace(cfg.ItemID) == "" {
		return nil, errors.New("furniture: definition without item id")
	}
	if ctx == nil {
		ctx = &LoadContext{}
	}
	log := ctx.logger().With("item", cfg.ItemID)

	d := &Definition{
		itemID:           cfg.ItemID,
		hardness:         1,
		modelID:          cfg.ModelID,
		farmlandRequired: cfg.FarmlandRequired,
		fallbackKind:     ctx.defaultKind(),
	}
	if cfg.Hardness != nil {
		d.hardness = *cfg.Hardness
	}

	d.rotation = RotationStrict
	if cfg.RestrictedRotation != "" {
		policy, ok := parseRestrictedRotation(cfg.RestrictedRotation)
		if !ok {
			log.Error("furniture: invalid restricted rotation",
				"value", cfg.RestrictedRotation,
				"allowed", []string{RotationNone.String(), RotationStrict.String(), RotationVeryStrict.String()})
			log.Warn("furniture: restricted rotation set to STRICT")
		}
		d.rotation = policy
	}

	d.kind = resolveKind(ctx, cfg.Type, log)
	if ctx.SupportsDisplayEntities {
		d.display = newDisplayProperties(cfg.Display, log)
	}

	d.hitbox = newHitbox(cfg.Hitbox, log)

	if seating, ok := newSeatingModule(cfg.Seats, log); ok {
		d.add(seating)
	}
	if cfg.Evolution != nil {
		d.add(EvolutionModule{
			Delay:       max(cfg.Evolution.Delay, 0),
			Probability: floatOr(cfg.Evolution.Probability, 1),
			NextStage:   cfg.Evolution.NextStage,
		})
		ctx.markEvolving()
	}
	d.drop = newDropTable(cfg.ItemID, cfg.Drop)
	if cfg.LimitedPlacing != nil {
		d.add(newLimitedPlacingModule(cfg.LimitedPlacing, log))
	}
	if cfg.Storage != nil {
		d.add(newStorageModule(cfg.Storage, log))
	}
	if cfg.Sounds != nil {
		d.sounds = &Sounds{
			Place:  cfg.Sounds.Place,
			Break:  cfg.Sounds.Break,
			Volume: floatOr(cfg.Sounds.Volume, 1),
			Pitch:  floatOr(cfg.Sounds.Pitch, 1),
		}
	}
	if cfg.Jukebox != nil {
		d.add(JukeboxModule{
			Volume:     floatOr(cfg.Jukebox.Volume, 1),
			Pitch:      floatOr(cfg.Jukebox.Pitch, 1),
			Permission: cfg.Jukebox.Permission,
		})
	}
	if len(cfg.ClickActions) > 0 {
		m := ClickActionsModule{}
		for _, a := range cfg.ClickActions {
			m.Actions = append(m.Actions, ClickAction{Conditions: a.Conditions, Actions: a.Actions})
		}
		d.add(m)
	}
	if cfg.Light > 0 {
		level := cfg.Light
		if level > maxLightLevel {
			log.Warn("furniture: light level clamped", "value", level, "max", maxLightLevel)
			level = maxLightLevel
		}
		d.add(LightingModule{Level: level})
	}
	if cfg.Lock != nil {
		d.add(LockModule{CanProtect: cfg.Lock.CanProtect, ProtectionType: strings.ToUpper(cfg.Lock.ProtectionType)})
	}

	if cfg.Rotatable {
		switch {
		case d.rotation == RotationNone:
			log.Warn("furniture: rotation requested with restricted rotation NONE, rotation disabled")
		case d.hitbox.hasOffAxisBarrier():
			log.Warn("furniture: hitbox has barriers with non-zero X or Z coordinates, rotation disabled")
		default:
			d.rotatable = true
		}
	}

	return d, nil
}

// add attaches a module, replacing an earlier one of the same capability.
func (d *Definition) add(m CapabilityModule) {
	c := m.Capability()
	d.modules[c] = m
	d.caps.Set(c)
}

// resolveKind picks the representation kind, falling back to ITEM_FRAME
// when the requested kind is invalid or unsupported by the host.
func resolveKind(ctx *LoadContext, requested string, log *slog.Logger) Kind {
	if strings.TrimSpace(requested) == "" {
		return ctx.defaultKind()
	}
	kind, ok := ParseKind(requested)
	if !ok {
		log.Error("furniture: invalid furniture type", "value", requested,
			"allowed", []string{KindItemFrame.String(), KindArmorStand.String(), KindDisplayEntity.String()})
		log.Warn("furniture: furniture type set to ITEM_FRAME")
		return KindItemFrame
	}
	if kind == KindDisplayEntity && !ctx.SupportsDisplayEntities {
		log.Error("furniture: display entities are not supported by this host")
		log.Warn("furniture: furniture type set to ITEM_FRAME")
		return KindItemFrame
	}
	return kind
}

func newDisplayProperties(cfg *DisplayConfig, log *slog.Logger) *DisplayProperties {
	p := &DisplayProperties{Transform: TransformNone}
	if cfg == nil {
		return p
	}
	if cfg.Transform != "" {
		t, ok := parseTransform(cfg.Transform)
		if !ok {
			log.Warn("furniture: invalid display transform, using NONE", "value", cfg.Transform)
		}
		p.Transform = t
	}
	if cfg.Scale != "" {
		scale, err := parseVec(cfg.Scale)
		if err != nil {
			log.Warn("furniture: invalid display scale", "error", err)
		} else {
			p.Scale, p.HasScale = scale, true
		}
	}
	p.Width, p.Height = cfg.Width, cfg.Height
	return p
}

func newHitbox(cfg *HitboxConfig, log *slog.Logger) Hitbox {
	if cfg == nil {
		return EmptyHitbox
	}
	var cells []HitboxCell
	for _, s := range cfg.Barriers {
		off, err := parsePos(s)
		if err != nil {
			log.Warn("furniture: skipping invalid barrier hitbox", "error", err)
			continue
		}
		cells = append(cells, HitboxCell{Offset: off, Role: RoleBarrier})
	}
	for _, s := range cfg.Interactions {
		cell, err := parseInteraction(s)
		if err != nil {
			log.Warn("furniture: skipping invalid interaction hitbox", "error", err)
			continue
		}
		cells = append(cells, cell)
	}
	return NewHitbox(cells...)
}

func newSeatingModule(seats []string, log *slog.Logger) (SeatingModule, bool) {
	m := SeatingModule{}
	for _, s := range seats {
		off, err := parseVec(s)
		if err != nil {
			log.Warn("furniture: skipping invalid seat", "error", err)
			continue
		}
		m.Seats = append(m.Seats, Seat{Offset: off})
	}
	return m, len(m.Seats) > 0
}

func newLimitedPlacingModule(cfg *LimitedPlacingConfig, log *slog.Logger) LimitedPlacingModule {
	m := LimitedPlacingModule{
		Floor: true,
		Wall:  cfg.Wall,
		Roof:  cfg.Roof,
	}
	if cfg.Floor != nil {
		m.Floor = *cfg.Floor
	}
	switch strings.ToUpper(cfg.Type) {
	case "", "ALLOW":
	case "DENY":
		m.Deny = true
	default:
		log.Warn("furniture: invalid limited placing type, using ALLOW", "value", cfg.Type)
	}
	for _, b := range cfg.Blocks {
		m.Blocks = append(m.Blocks, blockName(b))
	}
	if cfg.Radius != nil && cfg.Radius.Amount > 0 {
		m.Radius, m.Amount = cfg.Radius.Radius, cfg.Radius.Amount
	}
	return m
}

func newStorageModule(cfg *StorageConfig, log *slog.Logger) StorageModule {
	m := StorageModule{
		Type:       StorageContainer,
		Rows:       6,
		Title:      "Storage",
		OpenSound:  cfg.OpenSound,
		CloseSound: cfg.CloseSound,
	}
	if cfg.Type != "" {
		t, ok := parseStorageType(cfg.Type)
		if !ok {
			log.Warn("furniture: invalid storage type, using STORAGE", "value", cfg.Type)
		}
		m.Type = t
	}
	if cfg.Rows > 0 {
		m.Rows = min(cfg.Rows, 6)
	}
	if cfg.Title != "" {
		m.Title = cfg.Title
	}
	return m
}

// ItemID returns the item identifier, also used as the identity tag value.
func (d *Definition) ItemID() string { return d.itemID }

// Hardness returns the break hardness. -1 means unbreakable.
func (d *Definition) Hardness() int { return d.hardness }

// HasHardness returns false for unbreakable furniture.
func (d *Definition) HasHardness() bool { return d.hardness != -1 }

// Kind returns the representation kind.
func (d *Definition) Kind() Kind { return d.kind }

// KindFor returns the kind to render for a viewer. Viewers that cannot see
// display entities get the host default, or item frames if that is also a
// display entity.
func (d *Definition) KindFor(viewerSupportsDisplay bool) Kind {
	if d.kind != KindDisplayEntity || viewerSupportsDisplay {
		return d.kind
	}
	if d.fallbackKind != KindDisplayEntity {
		return d.fallbackKind
	}
	return KindItemFrame
}

// Display returns the display properties, nil when the host has no display entities.
func (d *Definition) Display() *DisplayProperties { return d.display }

// RestrictedRotation returns the rotation policy.
func (d *Definition) RestrictedRotation() RestrictedRotation { return d.rotation }

// Rotatable returns true if placements of this definition may be rotated.
func (d *Definition) Rotatable() bool { return d.rotatable }

// Hitbox returns the hitbox template.
func (d *Definition) Hitbox() Hitbox { return d.hitbox }

// Capabilities returns the set of present capabilities.
func (d *Definition) Capabilities() CapabilitySet { return d.caps }

// Has returns true if the capability is present.
func (d *Definition) Has(c Capability) bool { return d.caps.Has(c) }

// HasSeats returns true if the definition spawns seats.
func (d *Definition) HasSeats() bool { return d.caps.Has(Seating) }

// IsStorage returns true if the definition has storage.
func (d *Definition) IsStorage() bool { return d.caps.Has(Storage) }

// Interactable returns true if the renderer must register interaction
// capable hitbox cells for this definition.
func (d *Definition) Interactable() bool {
	return d.rotatable || d.caps.ContainsAny(interactive)
}

// Drop returns the drop table. It is never nil.
func (d *Definition) Drop() *DropTable { return d.drop }

// ModelID returns the animated model bound to the definition.
func (d *Definition) ModelID() string { return d.modelID }

// HasModel returns true if an animated model is bound.
func (d *Definition) HasModel() bool { return d.modelID != "" }

// FarmlandRequired returns true if the furniture must stand on farmland.
func (d *Definition) FarmlandRequired() bool { return d.farmlandRequired }

// Sounds returns the configured sounds, or nil.
func (d *Definition) Sounds() *Sounds { return d.sounds }

// LightLevel returns the emitted light level, 0 without the Lighting capability.
func (d *Definition) LightLevel() int {
	if m, ok := Module[LightingModule](d); ok {
		return m.Level
	}
	return 0
}

// Mount returns how the furniture attaches to the world.
func (d *Definition) Mount() Mount {
	m, ok := Module[LimitedPlacingModule](d)
	if !ok {
		return Mount{}
	}
	return Mount{Wall: m.IsWall(), Roof: m.IsRoof()}
}

// SpawnPosition returns where the base entity of a placement at anchor is spawned.
func (d *Definition) SpawnPosition(anchor cube.Pos, facing cube.Face) mgl64.Vec3 {
	return CorrectSpawnPosition(d.kind, d.display, d.Mount(), anchor, facing)
}

// String returns a string representation of the definition for debugging.
func (d *Definition) String() string {
	return "Definition{ItemID: " + d.itemID + ", Kind: " + d.kind.String() +
		", Rotation: " + d.rotation.String() + ", Capabilities: " + d.caps.String() + "}"
}
