package furniture

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/assert"
)

func TestHitboxLocations(t *testing.T) {
	h := NewHitbox(
		HitboxCell{Offset: cube.Pos{0, 0, 0}},
		HitboxCell{Offset: cube.Pos{0, 1, 0}},
		HitboxCell{Offset: cube.Pos{1, 0, 2}, Role: RoleInteraction},
	)
	anchor := cube.Pos{10, 64, 10}

	tests := []struct {
		name string
		yaw  float64
		want []cube.Pos
	}{
		{"south", 0, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {11, 64, 12}}},
		{"west", 90, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {8, 64, 11}}},
		{"north", 180, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {9, 64, 8}}},
		{"east", 270, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {12, 64, 9}}},
		{"negative yaw", -90, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {12, 64, 9}}},
		{"diagonal snaps", 40, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {11, 64, 12}}},
		{"diagonal snaps up", 50, []cube.Pos{{10, 64, 10}, {10, 65, 10}, {8, 64, 11}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Locations(anchor, tt.yaw))
		})
	}
}

func TestHitboxEmpty(t *testing.T) {
	assert.True(t, EmptyHitbox.Empty())
	assert.True(t, NewHitbox().Empty())
	assert.Nil(t, EmptyHitbox.Locations(cube.Pos{}, 0))
	assert.Nil(t, EmptyHitbox.CellLocations(cube.Pos{}, 0))
}

func TestHitboxInteractionDefaults(t *testing.T) {
	h := NewHitbox(HitboxCell{Role: RoleInteraction})
	c := h.InteractionCells()[0]
	assert.Equal(t, 1.0, c.Width)
	assert.Equal(t, 1.0, c.Height)
	assert.Empty(t, h.BarrierCells())
}

func TestHitboxOffAxis(t *testing.T) {
	assert.False(t, NewHitbox(
		HitboxCell{Offset: cube.Pos{0, 2, 0}},
		HitboxCell{Offset: cube.Pos{3, 0, 0}, Role: RoleInteraction},
	).hasOffAxisBarrier())
	assert.True(t, NewHitbox(HitboxCell{Offset: cube.Pos{0, 0, 1}}).hasOffAxisBarrier())
}

func TestRotationClockwise(t *testing.T) {
	r := RotationFromYaw(0)
	seen := map[Rotation]bool{}
	for range RotationSteps {
		seen[r] = true
		r = r.Clockwise(RotationStrict)
	}
	assert.Len(t, seen, RotationSteps)
	assert.Equal(t, Rotation(0), r, "eight strict steps make a full turn")

	for range 4 {
		r = r.Clockwise(RotationVeryStrict)
	}
	assert.Equal(t, Rotation(0), r, "four very strict steps make a full turn")

	assert.Equal(t, Rotation(3), Rotation(3).Clockwise(RotationNone))
}

func TestRotationFromYaw(t *testing.T) {
	assert.Equal(t, Rotation(0), RotationFromYaw(360))
	assert.Equal(t, Rotation(1), RotationFromYaw(44))
	assert.Equal(t, Rotation(7), RotationFromYaw(-45))
	assert.Equal(t, 315.0, Rotation(7).Yaw())
}

func TestParseRestrictedRotation(t *testing.T) {
	p, ok := parseRestrictedRotation("VERY_STRICT")
	assert.True(t, ok)
	assert.Equal(t, RotationVeryStrict, p)

	p, ok = parseRestrictedRotation("sideways")
	assert.False(t, ok)
	assert.Equal(t, RotationStrict, p)
}
