package furniture

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "furniture:yaw", want: KeyYaw},
		{in: "yaw", want: KeyYaw},
		{in: " Garden:Evolution ", want: Key{Namespace: "garden", Name: "evolution"}},
		{in: "", wantErr: true},
		{in: ":yaw", wantErr: true},
		{in: "furniture:", wantErr: true},
		{in: "a:b:c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestTagsTyped(t *testing.T) {
	tags := NewTags()
	tags.SetString(KeyFurniture, "chair")
	tags.SetFloat(KeyYaw, 90)
	tags.SetByte(KeyFacing, 1)
	tags.SetInt(KeyEvolution, 3)

	s, ok := tags.String(KeyFurniture)
	assert.True(t, ok)
	assert.Equal(t, "chair", s)

	yaw, ok := tags.Float(KeyYaw)
	assert.True(t, ok)
	assert.Equal(t, 90.0, yaw)

	_, ok = tags.Int(KeyYaw)
	assert.False(t, ok, "a float must not read as an int")

	typ, ok := tags.Type(KeyFacing)
	assert.True(t, ok)
	assert.Equal(t, TagByte, typ)

	assert.Equal(t, []Key{KeyEvolution, KeyFacing, KeyFurniture, KeyYaw}, tags.Keys())

	tags.Delete(KeyEvolution)
	assert.False(t, tags.Has(KeyEvolution))
	assert.Equal(t, 3, tags.Len())
}

func TestTagsCopySlices(t *testing.T) {
	tags := NewTags()
	anchor := []int{1, 2, 3}
	tags.SetInts(KeyAnchor, anchor)
	anchor[0] = 99

	got, ok := tags.Ints(KeyAnchor)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)

	got[1] = 99
	again, _ := tags.Ints(KeyAnchor)
	assert.Equal(t, []int{1, 2, 3}, again)

	seat := uuid.New()
	tags.SetUUIDs(KeySeats, []uuid.UUID{seat})
	seats, ok := tags.UUIDs(KeySeats)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{seat}, seats)
}

func TestTagsNilItems(t *testing.T) {
	tags := NewTags()
	tags.SetItems(KeyStorage, nil)

	items, ok := tags.Items(KeyStorage)
	assert.True(t, ok)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestTagsClone(t *testing.T) {
	tags := NewTags()
	tags.SetString(KeyFurniture, "chair")

	c := tags.Clone()
	c.SetString(KeyFurniture, "table")
	c.SetFloat(KeyYaw, 45)

	s, _ := tags.String(KeyFurniture)
	assert.Equal(t, "chair", s)
	assert.False(t, tags.Has(KeyYaw))
}
