package store

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/furniture"
)

func newRegistry(t *testing.T) *furniture.Registry {
	t.Helper()
	reg, err := furniture.NewBuilder().
		Log(slog.New(slog.NewTextHandler(io.Discard, nil))).
		DisplayEntities(true).
		Definitions(
			furniture.Config{ItemID: "chair"},
			furniture.Config{ItemID: "chest", Storage: &furniture.StorageConfig{Type: "STORAGE"}},
		).
		Build()
	require.NoError(t, err)
	return reg
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func snapshot(t *testing.T, reg *furniture.Registry, itemID string, anchor cube.Pos) *furniture.Placement {
	t.Helper()
	def, ok := reg.Definition(itemID)
	require.True(t, ok)
	return &furniture.Placement{
		Base:       uuid.New(),
		Definition: def,
		Anchor:     anchor,
		Position:   def.SpawnPosition(anchor, cube.FaceUp),
		Yaw:        135,
		Facing:     cube.FaceUp,
	}
}

func TestSaveAndRead(t *testing.T) {
	reg := newRegistry(t)
	s := openStore(t)

	chest := snapshot(t, reg, "chest", cube.Pos{3, 64, -2})
	chest.Storage = []furniture.Item{{ID: "apple", Count: 5}}
	require.NoError(t, s.Save(chest))

	chest.Yaw = 180
	require.NoError(t, s.Save(chest), "saving twice updates the record")

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, cube.Pos{3, 64, -2}, records[0].Anchor())

	p, err := records[0].Placement(reg)
	require.NoError(t, err)
	assert.Equal(t, chest.Base, p.Base)
	assert.Equal(t, "chest", p.ItemID())
	assert.Equal(t, 180.0, p.Yaw)
	assert.Equal(t, cube.FaceUp, p.Facing)
	assert.Equal(t, chest.Position, p.Position)
	assert.Equal(t, chest.Storage, p.Storage)

	require.NoError(t, s.Delete(chest.Base))
	records, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReplaceAll(t *testing.T) {
	reg := newRegistry(t)
	s := openStore(t)

	require.NoError(t, s.Save(snapshot(t, reg, "chair", cube.Pos{0, 64, 0})))
	require.NoError(t, s.ReplaceAll([]*furniture.Placement{
		snapshot(t, reg, "chair", cube.Pos{9, 64, 0}),
		snapshot(t, reg, "chest", cube.Pos{1, 64, 0}),
	}))

	records, err := s.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "chest", records[0].ItemID, "records are ordered by anchor")
	assert.Equal(t, "chair", records[1].ItemID)

	require.NoError(t, s.ReplaceAll(nil))
	records, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordUnknownItem(t *testing.T) {
	r := Record{Base: uuid.NewString(), ItemID: "throne"}
	_, err := r.Placement(newRegistry(t))
	assert.ErrorIs(t, err, furniture.ErrUnknownPlacement)

	r = Record{Base: "not-a-uuid", ItemID: "chair"}
	_, err = r.Placement(newRegistry(t))
	assert.Error(t, err)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furniture.db")
	reg := newRegistry(t)

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(snapshot(t, reg, "chair", cube.Pos{0, 64, 0})))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	records, err := s.All()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
