package furniture

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestDropTableCanDrop(t *testing.T) {
	d := newDropTable("anvil", &DropConfig{BestTool: "pickaxe", MinimalType: "iron"})

	tests := []struct {
		tool string
		want bool
	}{
		{"", false},
		{"DIAMOND_AXE", false},
		{"STONE_PICKAXE", false},
		{"IRON_PICKAXE", true},
		{"netherite_pickaxe", true},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			assert.Equal(t, tt.want, d.CanDrop(Tool{Type: tt.tool}))
		})
	}
}

func TestDropTableDefault(t *testing.T) {
	d := newDropTable("chair", nil)
	assert.Equal(t, []Item{{ID: "chair", Count: 1}}, d.Roll("chair", Tool{}, testRand()))

	d = newDropTable("chair", &DropConfig{})
	assert.Equal(t, defaultDrop("chair").Loots, d.Loots)
}

func TestDropTableSilkTouch(t *testing.T) {
	d := newDropTable("vase", &DropConfig{Silktouch: true, Loots: []LootConfig{{Item: "shard", MinAmount: 3}}})

	assert.Equal(t, []Item{{ID: "vase", Count: 1}}, d.Roll("vase", Tool{SilkTouch: true}, testRand()))
	assert.Equal(t, []Item{{ID: "shard", Count: 3}}, d.Roll("vase", Tool{}, testRand()))
}

func TestDropTableRoll(t *testing.T) {
	zero := 0.0
	d := newDropTable("bush", &DropConfig{Loots: []LootConfig{
		{Item: "berry", MinAmount: 2, MaxAmount: 4},
		{Item: "rare", Probability: &zero},
		{},
	}})
	require.Len(t, d.Loots, 3)
	assert.Equal(t, "bush", d.Loots[2].Item, "empty loot item drops the furniture")

	rng := testRand()
	for range 50 {
		items := d.Roll("bush", Tool{}, rng)
		require.Len(t, items, 2)
		assert.Equal(t, "berry", items[0].ID)
		assert.GreaterOrEqual(t, items[0].Count, 2)
		assert.LessOrEqual(t, items[0].Count, 4)
		assert.Equal(t, Item{ID: "bush", Count: 1}, items[1])
	}
}

func TestDropTableFortune(t *testing.T) {
	d := newDropTable("ore", &DropConfig{Fortune: true, Loots: []LootConfig{{Item: "gem"}}})

	rng := testRand()
	for range 50 {
		items := d.Roll("ore", Tool{Fortune: 3}, rng)
		require.Len(t, items, 1)
		assert.GreaterOrEqual(t, items[0].Count, 1)
		assert.LessOrEqual(t, items[0].Count, 4)
	}
}
