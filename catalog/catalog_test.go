package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/furniture"
)

const chairs = `
oak_chair:
  type: DISPLAY_ENTITY
  rotatable: true
  restricted_rotation: VERY_STRICT
  light: 7
  seats: ["0,0.3,0"]
  hitbox:
    barrierHitboxes: ["0,0,0"]
    interactionHitboxes: ["0,1,0 1,0.5"]
  drop:
    best_tool: AXE
    loots:
      - oraxen_item: oak_plank
        min_amount: 1
        max_amount: 3
armchair:
  hardness: 3
  storage:
    type: STORAGE
    rows: 3
`

const plants = `
tomato_seed:
  farmland_required: true
  evolution:
    delay: 200
    probability: 0.4
    next_stage: tomato_plant
tomato_plant:
  limited_placing:
    type: DENY
    block_types: ["minecraft:sand"]
    radius_limitation:
      radius: 4
      amount: 2
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chairs.yml", chairs)

	cfgs, err := LoadFile(filepath.Join(dir, "chairs.yml"))
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	assert.Equal(t, "armchair", cfgs[0].ItemID)
	require.NotNil(t, cfgs[0].Hardness)
	assert.Equal(t, 3, *cfgs[0].Hardness)
	require.NotNil(t, cfgs[0].Storage)
	assert.Equal(t, 3, cfgs[0].Storage.Rows)

	chair := cfgs[1]
	assert.Equal(t, "oak_chair", chair.ItemID)
	assert.Equal(t, "VERY_STRICT", chair.RestrictedRotation)
	assert.True(t, chair.Rotatable)
	assert.Equal(t, []string{"0,0.3,0"}, chair.Seats)
	require.NotNil(t, chair.Hitbox)
	assert.Equal(t, []string{"0,1,0 1,0.5"}, chair.Hitbox.Interactions)
	require.NotNil(t, chair.Drop)
	assert.Equal(t, "oak_plank", chair.Drop.Loots[0].Item)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yml", "oak_chair: [unterminated")

	_, err := LoadFile(filepath.Join(dir, "broken.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yml")
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chairs.yml", chairs)
	writeFile(t, dir, "plants.yaml", plants)
	writeFile(t, dir, "README.md", "not a catalog")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yml"), 0o755))

	reg, err := LoadRegistry(dir, Options{DisplayEntities: true, DefaultKind: "ARMOR_STAND"})
	require.NoError(t, err)
	assert.Equal(t, []string{"armchair", "oak_chair", "tomato_plant", "tomato_seed"}, reg.IDs())
	assert.True(t, reg.HasEvolvingFurniture())

	chair, ok := reg.Definition("oak_chair")
	require.True(t, ok)
	assert.Equal(t, furniture.KindDisplayEntity, chair.Kind())
	assert.Equal(t, furniture.RotationVeryStrict, chair.RestrictedRotation())
	assert.True(t, chair.Rotatable())
	assert.Equal(t, 7, chair.LightLevel())
	assert.True(t, chair.HasSeats())
	assert.Len(t, chair.Hitbox().InteractionCells(), 1)
	assert.Equal(t, "AXE", chair.Drop().BestTool)

	armchair, _ := reg.Definition("armchair")
	assert.Equal(t, furniture.KindArmorStand, armchair.Kind())
	assert.True(t, armchair.IsStorage())

	seed, _ := reg.Definition("tomato_seed")
	assert.True(t, seed.FarmlandRequired())
	evo, ok := furniture.Module[furniture.EvolutionModule](seed)
	require.True(t, ok)
	assert.Equal(t, 0.4, evo.Probability)

	plant, _ := reg.Definition("tomato_plant")
	lp, ok := furniture.Module[furniture.LimitedPlacingModule](plant)
	require.True(t, ok)
	assert.Equal(t, []string{"sand"}, lp.Blocks)
	assert.Equal(t, 2, lp.Amount)
}

func TestBuildInvalidDefaultKind(t *testing.T) {
	_, err := Build(Options{DefaultKind: "BOAT"}, nil)
	assert.Error(t, err)
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
