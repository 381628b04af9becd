package furniture

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Namespace is the namespace of every tag written by this package.
const Namespace = "furniture"

// Key is a namespaced tag key, written as "namespace:name".
type Key struct {
	Namespace string
	Name      string
}

// NewKey creates a key in the furniture namespace.
func NewKey(name string) Key {
	return Key{Namespace: Namespace, Name: name}
}

// ParseKey parses "namespace:name". A key without namespace gets the
// furniture namespace.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	ns, name, found := strings.Cut(s, ":")
	if !found {
		ns, name = Namespace, s
	}
	if ns == "" || name == "" || strings.Contains(name, ":") {
		return Key{}, fmt.Errorf("furniture: invalid tag key %q", s)
	}
	return Key{Namespace: strings.ToLower(ns), Name: strings.ToLower(name)}, nil
}

// String returns the "namespace:name" form.
func (k Key) String() string {
	return k.Namespace + ":" + k.Name
}

// Tag keys written on base and seat entities.
var (
	// KeyFurniture holds the item ID of the placement (string).
	KeyFurniture = NewKey("furniture")
	// KeyYaw holds the placement yaw (float).
	KeyYaw = NewKey("yaw")
	// KeyFacing holds the face the placement was placed against (byte).
	KeyFacing = NewKey("facing")
	// KeyAnchor holds the anchor cell as x, y, z (ints).
	KeyAnchor = NewKey("anchor")
	// KeyEvolution holds the evolution stage (int).
	KeyEvolution = NewKey("evolution")
	// KeyStorage holds storage contents (items).
	KeyStorage = NewKey("storage")
	// KeySeats holds the seat entities of a base entity (uuid list).
	KeySeats = NewKey("seats")
	// KeySeatBase holds the base entity a seat belongs to (uuid list of one).
	KeySeatBase = NewKey("seat")
	// KeyModel holds the attached model ID (string).
	KeyModel = NewKey("modelengine")
	// KeyDisc holds the disc inside a jukebox (string).
	KeyDisc = NewKey("jukebox")
)

// TagType is the type of a stored tag value.
type TagType uint8

const (
	TagByte TagType = iota
	TagInt
	TagInts
	TagFloat
	TagString
	TagUUIDs
	TagItems
)

type tagValue struct {
	typ TagType
	v   any
}

// Tags is entity-attached storage keyed by namespaced keys with typed values.
// Getters report false when the key is missing or holds another type.
// Slices are copied on the way in and out.
//
// Concurrency:
// Tags is safe for concurrent use.
type Tags struct {
	mu     sync.RWMutex
	values map[Key]tagValue
}

// NewTags creates empty tag storage.
func NewTags() *Tags {
	return &Tags{values: make(map[Key]tagValue)}
}

func (t *Tags) set(k Key, typ TagType, v any) {
	t.mu.Lock()
	if t.values == nil {
		t.values = make(map[Key]tagValue)
	}
	t.values[k] = tagValue{typ: typ, v: v}
	t.mu.Unlock()
}

func (t *Tags) get(k Key, typ TagType) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	val, ok := t.values[k]
	if !ok || val.typ != typ {
		return nil, false
	}
	return val.v, true
}

// Has returns true if a value of any type is stored under k.
func (t *Tags) Has(k Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.values[k]
	return ok
}

// Type returns the type stored under k.
func (t *Tags) Type(k Key) (TagType, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	val, ok := t.values[k]
	return val.typ, ok
}

// Delete removes k.
func (t *Tags) Delete(k Key) {
	t.mu.Lock()
	delete(t.values, k)
	t.mu.Unlock()
}

// Keys returns the stored keys sorted by their string form.
func (t *Tags) Keys() []Key {
	t.mu.RLock()
	keys := make([]Key, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	t.mu.RUnlock()
	slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

// Len returns the number of stored keys.
func (t *Tags) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

func (t *Tags) SetByte(k Key, v byte) { t.set(k, TagByte, v) }

func (t *Tags) Byte(k Key) (byte, bool) {
	v, ok := t.get(k, TagByte)
	if !ok {
		return 0, false
	}
	return v.(byte), true
}

func (t *Tags) SetInt(k Key, v int) { t.set(k, TagInt, v) }

func (t *Tags) Int(k Key) (int, bool) {
	v, ok := t.get(k, TagInt)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func (t *Tags) SetInts(k Key, v []int) { t.set(k, TagInts, slices.Clone(v)) }

func (t *Tags) Ints(k Key) ([]int, bool) {
	v, ok := t.get(k, TagInts)
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]int)), true
}

func (t *Tags) SetFloat(k Key, v float64) { t.set(k, TagFloat, v) }

func (t *Tags) Float(k Key) (float64, bool) {
	v, ok := t.get(k, TagFloat)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (t *Tags) SetString(k Key, v string) { t.set(k, TagString, v) }

func (t *Tags) String(k Key) (string, bool) {
	v, ok := t.get(k, TagString)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (t *Tags) SetUUIDs(k Key, v []uuid.UUID) { t.set(k, TagUUIDs, slices.Clone(v)) }

func (t *Tags) UUIDs(k Key) ([]uuid.UUID, bool) {
	v, ok := t.get(k, TagUUIDs)
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]uuid.UUID)), true
}

func (t *Tags) SetItems(k Key, v []Item) {
	if v == nil {
		v = []Item{}
	}
	t.set(k, TagItems, slices.Clone(v))
}

func (t *Tags) Items(k Key) ([]Item, bool) {
	v, ok := t.get(k, TagItems)
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]Item)), true
}

// Clone returns a copy of the tags.
func (t *Tags) Clone() *Tags {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := &Tags{values: make(map[Key]tagValue, len(t.values))}
	for k, v := range t.values {
		c.values[k] = v
	}
	return c
}
