package furniture

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefinition(t *testing.T, cfg Config) *Definition {
	t.Helper()
	d, err := NewDefinition(&LoadContext{SupportsDisplayEntities: true}, cfg)
	require.NoError(t, err)
	return d
}

func TestHitboxIndexRefresh(t *testing.T) {
	def := mustDefinition(t, Config{ItemID: "table", Rotatable: true, Hitbox: &HitboxConfig{
		Barriers:     []string{"0,0,0"},
		Interactions: []string{"1,0,0", "0,1,0"},
	}})
	x := NewHitboxIndex()
	p := &Placement{Base: uuid.New(), Definition: def, Anchor: cube.Pos{5, 64, 5}}

	x.RefreshHitbox(p)
	base, ok := x.BaseAt(cube.Pos{5, 64, 5})
	require.True(t, ok)
	assert.Equal(t, p.Base, base)

	ids := x.Interactions(p.Base)
	require.Len(t, ids, 2)
	for _, id := range ids {
		base, ok := x.BaseByInteraction(id)
		assert.True(t, ok)
		assert.Equal(t, p.Base, base)
	}

	p.Yaw = 90
	x.RefreshHitbox(p)
	cells, interactions := x.Len()
	assert.Equal(t, 1, cells)
	assert.Equal(t, 2, interactions, "refresh replaces the previous interactions")
	for _, id := range ids {
		_, ok := x.BaseByInteraction(id)
		assert.False(t, ok)
	}

	x.ReleaseHitbox(p.Base)
	cells, interactions = x.Len()
	assert.Zero(t, cells)
	assert.Zero(t, interactions)
	assert.Empty(t, x.Cells(p.Base))
}

func TestHitboxIndexNotInteractable(t *testing.T) {
	def := mustDefinition(t, Config{ItemID: "statue", Hitbox: &HitboxConfig{
		Barriers:     []string{"0,0,0", "0,1,0"},
		Interactions: []string{"0,2,0"},
	}})
	x := NewHitboxIndex()
	p := &Placement{Base: uuid.New(), Definition: def, Anchor: cube.Pos{0, 64, 0}}

	x.RefreshHitbox(p)
	assert.Equal(t, []cube.Pos{{0, 64, 0}, {0, 65, 0}}, x.Cells(p.Base))
	assert.Empty(t, x.Interactions(p.Base))
}

func TestHitboxIndexEmptyHitboxUsesAnchor(t *testing.T) {
	def := mustDefinition(t, Config{ItemID: "rug"})
	x := NewHitboxIndex()
	p := &Placement{Base: uuid.New(), Definition: def, Anchor: cube.Pos{1, 2, 3}}

	x.RefreshHitbox(p)
	base, ok := x.BaseAt(cube.Pos{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, p.Base, base)
}

func TestHitboxIndexReleaseKeepsOthers(t *testing.T) {
	def := mustDefinition(t, Config{ItemID: "rug"})
	x := NewHitboxIndex()
	first := &Placement{Base: uuid.New(), Definition: def, Anchor: cube.Pos{1, 2, 3}}
	second := &Placement{Base: uuid.New(), Definition: def, Anchor: cube.Pos{1, 2, 3}}

	x.RefreshHitbox(first)
	x.RefreshHitbox(second)
	x.ReleaseHitbox(first.Base)

	base, ok := x.BaseAt(cube.Pos{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, second.Base, base)

	x.ReleaseHitbox(uuid.New())
	cells, _ := x.Len()
	assert.Equal(t, 1, cells)
}
