package furniture

import (
	"math"
	"strings"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// normaliseYaw maps any yaw into [0, 360).
func normaliseYaw(yaw float64) float64 {
	y := math.Mod(yaw, 360)
	if y < 0 {
		y += 360
	}
	return y
}

// centreBottom returns the horizontal centre of the block at pos, at floor height.
func centreBottom(pos cube.Pos) mgl64.Vec3 {
	return mgl64.Vec3{float64(pos.X()) + 0.5, float64(pos.Y()), float64(pos.Z()) + 0.5}
}

// faceVector returns the unit offset a face points to.
//
// Usage:
//
//	v := faceVector(cube.FaceNorth) // {0, 0, -1}
func faceVector(face cube.Face) mgl64.Vec3 {
	side := cube.Pos{}.Side(face)
	return mgl64.Vec3{float64(side.X()), float64(side.Y()), float64(side.Z())}
}

// cellOf returns the block position containing v.
func cellOf(v mgl64.Vec3) cube.Pos {
	return cube.Pos{int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2]))}
}

// rotateVec rotates v clockwise around the Y axis by yaw degrees.
// It uses the same handedness as rotateOffset.
func rotateVec(v mgl64.Vec3, yaw float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(normaliseYaw(yaw))
	sin, cos := math.Sincos(rad)
	return mgl64.Vec3{
		v[0]*cos - v[2]*sin,
		v[1],
		v[0]*sin + v[2]*cos,
	}
}

// blockName normalises a block identifier for comparison, e.g.
// "minecraft:Farmland" becomes "farmland".
func blockName(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.TrimPrefix(id, "minecraft:")
}
