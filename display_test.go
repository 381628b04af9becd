package furniture

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCorrectSpawnPosition(t *testing.T) {
	anchor := cube.Pos{0, 64, 0}
	none := &DisplayProperties{Transform: TransformNone}
	fixed := &DisplayProperties{Transform: TransformFixed}
	scaled := &DisplayProperties{Transform: TransformNone, Scale: mgl64.Vec3{2, 2, 2}, HasScale: true}

	tests := []struct {
		name    string
		kind    Kind
		display *DisplayProperties
		mount   Mount
		facing  cube.Face
		want    mgl64.Vec3
	}{
		{"item frame", KindItemFrame, none, Mount{}, cube.FaceUp, mgl64.Vec3{0.5, 64, 0.5}},
		{"display without properties", KindDisplayEntity, nil, Mount{}, cube.FaceUp, mgl64.Vec3{0.5, 64, 0.5}},
		{"floor", KindDisplayEntity, none, Mount{}, cube.FaceUp, mgl64.Vec3{0.5, 64.5, 0.5}},
		{"floor scaled", KindDisplayEntity, scaled, Mount{}, cube.FaceUp, mgl64.Vec3{0.5, 65, 0.5}},
		{"fixed floor untouched", KindDisplayEntity, fixed, Mount{}, cube.FaceUp, mgl64.Vec3{0.5, 64, 0.5}},
		{"fixed wall", KindDisplayEntity, fixed, Mount{Wall: true}, cube.FaceNorth, mgl64.Vec3{0.5, 64.5, 0.99}},
		{"fixed roof", KindDisplayEntity, fixed, Mount{Roof: true}, cube.FaceDown, mgl64.Vec3{0.5, 64.99, 0.5}},
		{"roof", KindDisplayEntity, none, Mount{Roof: true}, cube.FaceDown, mgl64.Vec3{0.5, 63.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CorrectSpawnPosition(tt.kind, tt.display, tt.mount, anchor, tt.facing)
			for i := range 3 {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "axis %d", i)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("armor_stand_display")
	assert.True(t, ok)
	assert.Equal(t, KindArmorStand, k)

	_, ok = ParseKind("boat")
	assert.False(t, ok)
}

func TestTransformNames(t *testing.T) {
	tr, ok := parseTransform("ground")
	assert.True(t, ok)
	assert.Equal(t, "GROUND", tr.String())
	assert.Equal(t, "UNKNOWN", Transform(42).String())
}
