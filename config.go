package furniture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Config is the raw configuration section of one furniture type.
// Every pointer or slice section is optional; an absent section leaves the
// matching capability inactive.
type Config struct {
	// ItemID is filled from the key the section is stored under.
	ItemID string `yaml:"-"`

	Hardness           *int   `yaml:"hardness"`
	Type               string `yaml:"type"`
	RestrictedRotation string `yaml:"restricted_rotation"`
	Rotatable          bool   `yaml:"rotatable"`
	ModelID            string `yaml:"modelengine_id"`
	FarmlandRequired   bool   `yaml:"farmland_required"`
	Light              int    `yaml:"light"`

	Display        *DisplayConfig        `yaml:"display_entity_properties"`
	Hitbox         *HitboxConfig         `yaml:"hitbox"`
	Seats          []string              `yaml:"seats"`
	Evolution      *EvolutionConfig      `yaml:"evolution"`
	Drop           *DropConfig           `yaml:"drop"`
	LimitedPlacing *LimitedPlacingConfig `yaml:"limited_placing"`
	Storage        *StorageConfig        `yaml:"storage"`
	Jukebox        *JukeboxConfig        `yaml:"jukebox"`
	ClickActions   []ClickActionConfig   `yaml:"click_actions"`
	Lock           *LockConfig           `yaml:"blocklocker"`
	Sounds         *SoundsConfig         `yaml:"block_sounds"`
}

// DisplayConfig configures display entity rendering.
type DisplayConfig struct {
	Transform string  `yaml:"display_transform"`
	Scale     string  `yaml:"scale"` // "x,y,z"
	Width     float64 `yaml:"display_width"`
	Height    float64 `yaml:"display_height"`
}

// HitboxConfig lists hitbox cells as strings.
// Barrier cells are "x,y,z"; interaction cells are "x,y,z width,height".
type HitboxConfig struct {
	Barriers     []string `yaml:"barrierHitboxes"`
	Interactions []string `yaml:"interactionHitboxes"`
}

// EvolutionConfig configures growth into another furniture type.
type EvolutionConfig struct {
	Delay       int      `yaml:"delay"`
	Probability *float64 `yaml:"probability"`
	NextStage   string   `yaml:"next_stage"`
}

// DropConfig configures what breaking a placement yields.
type DropConfig struct {
	Silktouch   bool         `yaml:"silktouch"`
	Fortune     bool         `yaml:"fortune"`
	MinimalType string       `yaml:"minimal_type"`
	BestTool    string       `yaml:"best_tool"`
	Loots       []LootConfig `yaml:"loots"`
}

// LootConfig is a single drop table entry.
type LootConfig struct {
	Item        string   `yaml:"oraxen_item"`
	Probability *float64 `yaml:"probability"`
	MinAmount   int      `yaml:"min_amount"`
	MaxAmount   int      `yaml:"max_amount"`
}

// LimitedPlacingConfig restricts where a furniture can be placed.
type LimitedPlacingConfig struct {
	Type   string             `yaml:"type"` // ALLOW or DENY
	Blocks []string           `yaml:"block_types"`
	Floor  *bool              `yaml:"floor"`
	Wall   bool               `yaml:"wall"`
	Roof   bool               `yaml:"roof"`
	Radius *RadiusLimitConfig `yaml:"radius_limitation"`
}

// RadiusLimitConfig caps how many placements of a type may share an area.
type RadiusLimitConfig struct {
	Radius float64 `yaml:"radius"`
	Amount int     `yaml:"amount"`
}

// StorageConfig configures the storage capability.
type StorageConfig struct {
	Type       string `yaml:"type"`
	Rows       int    `yaml:"rows"`
	Title      string `yaml:"title"`
	OpenSound  string `yaml:"open_sound"`
	CloseSound string `yaml:"close_sound"`
}

// JukeboxConfig configures the jukebox capability.
type JukeboxConfig struct {
	Volume     *float64 `yaml:"volume"`
	Pitch      *float64 `yaml:"pitch"`
	Permission string   `yaml:"permission"`
}

// ClickActionConfig is one conditional list of actions run on interaction.
type ClickActionConfig struct {
	Conditions []string `yaml:"conditions"`
	Actions    []string `yaml:"actions"`
}

// LockConfig configures lock protection.
type LockConfig struct {
	CanProtect     bool   `yaml:"can_protect"`
	ProtectionType string `yaml:"protection_type"`
}

// SoundsConfig configures place and break sounds.
type SoundsConfig struct {
	Place  string   `yaml:"place_sound"`
	Break  string   `yaml:"break_sound"`
	Volume *float64 `yaml:"volume"`
	Pitch  *float64 `yaml:"pitch"`
}

// parsePos parses "x,y,z" into a block offset.
func parsePos(s string) (cube.Pos, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return cube.Pos{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var p cube.Pos
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return cube.Pos{}, fmt.Errorf("parse %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}

// parseVec parses "x,y,z" into a vector.
func parseVec(s string) (mgl64.Vec3, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v mgl64.Vec3
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("parse %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseInteraction parses "x,y,z width,height". The size part is optional.
func parseInteraction(s string) (HitboxCell, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return HitboxCell{}, fmt.Errorf("expected \"x,y,z width,height\", got %q", s)
	}
	off, err := parsePos(fields[0])
	if err != nil {
		return HitboxCell{}, err
	}
	cell := HitboxCell{Offset: off, Role: RoleInteraction, Width: 1, Height: 1}
	if len(fields) == 2 {
		size := strings.Split(fields[1], ",")
		if len(size) != 2 {
			return HitboxCell{}, fmt.Errorf("expected width,height, got %q", fields[1])
		}
		if cell.Width, err = strconv.ParseFloat(strings.TrimSpace(size[0]), 64); err != nil {
			return HitboxCell{}, fmt.Errorf("parse width %q: %w", s, err)
		}
		if cell.Height, err = strconv.ParseFloat(strings.TrimSpace(size[1]), 64); err != nil {
			return HitboxCell{}, fmt.Errorf("parse height %q: %w", s, err)
		}
	}
	return cell, nil
}

// floatOr dereferences f or returns def.
func floatOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}
