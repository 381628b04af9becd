package furniture

import (
	"math/bits"
	"strings"
)

// Capability identifies one optional behaviour a definition can carry.
type Capability uint8

const (
	Seating Capability = iota
	Storage
	Jukebox
	Evolution
	Lighting
	LimitedPlacing
	Lock
	ClickActions

	// capabilityCount is the total number of capabilities.
	capabilityCount
)

// String returns the string representation of the capability.
func (c Capability) String() string {
	switch c {
	case Seating:
		return "seating"
	case Storage:
		return "storage"
	case Jukebox:
		return "jukebox"
	case Evolution:
		return "evolution"
	case Lighting:
		return "lighting"
	case LimitedPlacing:
		return "limited_placing"
	case Lock:
		return "lock"
	case ClickActions:
		return "click_actions"
	default:
		return "unknown"
	}
}

// CapabilitySet is a bitmask tracking which capabilities are present.
type CapabilitySet uint16

// interactive are the capabilities that make a definition react to clicks.
const interactive = CapabilitySet(1<<Seating | 1<<Storage)

// Set sets the bit for c.
func (m *CapabilitySet) Set(c Capability) {
	*m |= 1 << c
}

// Clear clears the bit for c.
func (m *CapabilitySet) Clear(c Capability) {
	*m &^= 1 << c
}

// Has returns true if c is present.
func (m CapabilitySet) Has(c Capability) bool {
	return m&(1<<c) != 0
}

// ContainsAny returns true if any capability in other is also in m.
func (m CapabilitySet) ContainsAny(other CapabilitySet) bool {
	return m&other != 0
}

// Count returns the number of capabilities present.
func (m CapabilitySet) Count() int {
	return bits.OnesCount16(uint16(m))
}

// Capabilities returns the present capabilities in declaration order.
func (m CapabilitySet) Capabilities() []Capability {
	out := make([]Capability, 0, m.Count())
	for c := range capabilityCount {
		if m.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the capabilities joined by commas.
func (m CapabilitySet) String() string {
	names := make([]string, 0, m.Count())
	for _, c := range m.Capabilities() {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// CapabilityModule is implemented by the data of every capability.
// Each capability has exactly one module type, and Capability must be
// implemented on the value receiver.
type CapabilityModule interface {
	Capability() Capability
}

// Module retrieves the module of type T from a definition.
// Returns the zero value and false if the capability is absent.
//
// Usage:
//
//	if seating, ok := furniture.Module[furniture.SeatingModule](def); ok {
//	    for _, seat := range seating.Seats { ... }
//	}
func Module[T CapabilityModule](d *Definition) (T, bool) {
	var zero T
	if d == nil {
		return zero, false
	}
	c := zero.Capability()
	if !d.caps.Has(c) {
		return zero, false
	}
	m, ok := d.modules[c].(T)
	return m, ok
}

// HasModule checks if the module of type T is present on a definition.
func HasModule[T CapabilityModule](d *Definition) bool {
	_, ok := Module[T](d)
	return ok
}
