package furniture

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Item is a stack of a custom item.
type Item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Tool describes what a placement is being broken with.
type Tool struct {
	// Type is the tool's item type, e.g. "DIAMOND_PICKAXE". Empty for bare hands.
	Type      string
	SilkTouch bool
	Fortune   int
}

// Loot is a single entry of a drop table.
type Loot struct {
	Item        string
	Probability float64
	MinAmount   int
	MaxAmount   int
}

// DropTable decides the items a broken placement yields.
type DropTable struct {
	Silktouch   bool
	Fortune     bool
	MinimalType string
	BestTool    string
	Loots       []Loot
}

// toolTiers orders tool materials from weakest to strongest.
var toolTiers = []string{"WOODEN", "STONE", "IRON", "GOLDEN", "DIAMOND", "NETHERITE"}

// defaultDrop drops a single copy of the furniture itself.
func defaultDrop(itemID string) *DropTable {
	return &DropTable{Loots: []Loot{{Item: itemID, Probability: 1, MinAmount: 1, MaxAmount: 1}}}
}

func newDropTable(itemID string, cfg *DropConfig) *DropTable {
	if cfg == nil {
		return defaultDrop(itemID)
	}
	d := &DropTable{
		Silktouch:   cfg.Silktouch,
		Fortune:     cfg.Fortune,
		MinimalType: strings.ToUpper(cfg.MinimalType),
		BestTool:    strings.ToUpper(cfg.BestTool),
	}
	for _, l := range cfg.Loots {
		item := l.Item
		if item == "" {
			item = itemID
		}
		minAmount := max(l.MinAmount, 1)
		d.Loots = append(d.Loots, Loot{
			Item:        item,
			Probability: floatOr(l.Probability, 1),
			MinAmount:   minAmount,
			MaxAmount:   max(l.MaxAmount, minAmount),
		})
	}
	if len(d.Loots) == 0 {
		d.Loots = defaultDrop(itemID).Loots
	}
	return d
}

// CanDrop reports whether breaking with tool yields anything.
func (d *DropTable) CanDrop(tool Tool) bool {
	toolType := strings.ToUpper(tool.Type)
	if d.BestTool != "" && !strings.HasSuffix(toolType, d.BestTool) {
		return false
	}
	if d.MinimalType == "" {
		return true
	}
	required := slices.Index(toolTiers, d.MinimalType)
	if required < 0 {
		return true
	}
	material, _, _ := strings.Cut(toolType, "_")
	return slices.Index(toolTiers, material) >= required
}

// Roll rolls the drop table. itemID is the furniture dropped on silk touch.
func (d *DropTable) Roll(itemID string, tool Tool, rng *rand.Rand) []Item {
	if !d.CanDrop(tool) {
		return nil
	}
	if d.Silktouch && tool.SilkTouch {
		return []Item{{ID: itemID, Count: 1}}
	}
	var out []Item
	for _, l := range d.Loots {
		if l.Probability < 1 && rng.Float64() >= l.Probability {
			continue
		}
		amount := l.MinAmount
		if l.MaxAmount > l.MinAmount {
			amount += rng.IntN(l.MaxAmount - l.MinAmount + 1)
		}
		if d.Fortune && tool.Fortune > 0 {
			amount *= 1 + rng.IntN(tool.Fortune+1)
		}
		out = append(out, Item{ID: l.Item, Count: amount})
	}
	return out
}
