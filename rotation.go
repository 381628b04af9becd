package furniture

import (
	"math"
	"strings"
)

// RestrictedRotation governs how coarsely a placement can be rotated.
type RestrictedRotation int

const (
	// RotationNone forbids rotating placements at all.
	RotationNone RestrictedRotation = iota

	// RotationStrict rotates one step (45 degrees) at a time.
	RotationStrict

	// RotationVeryStrict rotates two steps (90 degrees) at a time. Use for
	// asymmetric models that look wrong on diagonals.
	RotationVeryStrict
)

// String returns the configuration name of the policy.
func (r RestrictedRotation) String() string {
	switch r {
	case RotationNone:
		return "NONE"
	case RotationStrict:
		return "STRICT"
	case RotationVeryStrict:
		return "VERY_STRICT"
	default:
		return "UNKNOWN"
	}
}

// step returns how many rotation steps a single clockwise turn advances.
func (r RestrictedRotation) step() Rotation {
	if r == RotationVeryStrict {
		return 2
	}
	return 1
}

// parseRestrictedRotation parses a policy name. Matching is exact, like the
// configuration format expects upper-case names.
func parseRestrictedRotation(s string) (RestrictedRotation, bool) {
	switch strings.TrimSpace(s) {
	case "NONE":
		return RotationNone, true
	case "STRICT":
		return RotationStrict, true
	case "VERY_STRICT":
		return RotationVeryStrict, true
	default:
		return RotationStrict, false
	}
}

// Rotation is one of eight compass steps a placement can face.
// Step n corresponds to a yaw of n*45 degrees.
type Rotation uint8

// RotationSteps is the number of discrete rotation steps.
const RotationSteps = 8

// RotationFromYaw snaps a yaw to the nearest rotation step.
func RotationFromYaw(yaw float64) Rotation {
	return Rotation(int(math.Floor(normaliseYaw(yaw)/45+0.5)) & (RotationSteps - 1))
}

// Yaw returns the yaw in degrees of the rotation step.
func (r Rotation) Yaw() float64 {
	return float64(r&(RotationSteps-1)) * 360 / RotationSteps
}

// Clockwise returns the next rotation under the given policy.
// RotationNone returns r unchanged.
func (r Rotation) Clockwise(policy RestrictedRotation) Rotation {
	if policy == RotationNone {
		return r
	}
	return (r + policy.step()) & (RotationSteps - 1)
}
