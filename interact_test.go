package furniture_test

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/furniture"
)

type ownerLocks struct {
	owner uuid.UUID
}

func (l ownerLocks) CanInteract(actor uuid.UUID, _ *furniture.Placement, _ furniture.LockModule) bool {
	return actor == l.owner
}

type recordingActions struct {
	performed [][]string
}

func (a *recordingActions) CanRun(_ uuid.UUID, conditions []string) bool {
	return !slices.Contains(conditions, "never")
}

func (a *recordingActions) Perform(_ uuid.UUID, _ *furniture.Placement, actions []string) error {
	a.performed = append(a.performed, actions)
	return nil
}

func TestInteractSits(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "chair", cube.Pos{0, ground, 0})
	alice := f.world.Add(mgl64.Vec3{0, ground, 0})
	bob := f.world.Add(mgl64.Vec3{0, ground, 0})

	require.NoError(t, f.engine.Interact(alice, p.Base))
	seat, riding := f.world.Vehicle(alice)
	require.True(t, riding)
	assert.Equal(t, p.Seats[0], seat)

	require.NoError(t, f.engine.Interact(bob, p.Base), "a full chair is not an error")
	_, riding = f.world.Vehicle(bob)
	assert.False(t, riding)
}

func TestInteractConcurrentRemove(t *testing.T) {
	f := newFixture(t)
	var handled atomic.Bool
	f.handler.onInteract = func(*furniture.EventInteract) { handled.Store(true) }

	for i := range 50 {
		handled.Store(false)
		anchor := cube.Pos{i * 3, ground, 0}
		p := f.place(t, "chair", anchor)
		actor := f.world.Add(mgl64.Vec3{float64(anchor.X()), ground, 0})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.engine.Remove(p.Base)
		}()
		err := f.engine.Interact(actor, p.Base)
		wg.Wait()

		if handled.Load() {
			assert.NoError(t, err, "once handled, the interaction sits down on the same placement")
		} else {
			assert.ErrorIs(t, err, furniture.ErrUnknownPlacement)
		}
	}
	assert.Zero(t, f.engine.Len())
}

func TestInteractOpensStorage(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "chest", cube.Pos{0, ground, 0})
	alice := uuid.New()

	require.NoError(t, f.engine.Interact(alice, p.Base))
	assert.Equal(t, []uuid.UUID{alice}, f.world.Opened())

	f.handler.onInteract = func(e *furniture.EventInteract) { e.Cancel() }
	assert.ErrorIs(t, f.engine.Interact(alice, p.Base), furniture.ErrCancelled)
	assert.Len(t, f.world.Opened(), 1)
}

func TestInteractLocked(t *testing.T) {
	owner := uuid.New()
	f := newFixture(t, func(c *furniture.EngineConfig) { c.Locks = ownerLocks{owner: owner} })
	p := f.place(t, "safe", cube.Pos{0, ground, 0})

	assert.ErrorIs(t, f.engine.Interact(uuid.New(), p.Base), furniture.ErrLocked)
	assert.Empty(t, f.world.Opened())

	require.NoError(t, f.engine.Interact(owner, p.Base))
	assert.Equal(t, []uuid.UUID{owner}, f.world.Opened())
}

func TestInteractClickActions(t *testing.T) {
	actions := &recordingActions{}
	f := newFixture(t, func(c *furniture.EngineConfig) { c.Actions = actions })
	p := f.place(t, "lever", cube.Pos{0, ground, 0})

	require.NoError(t, f.engine.Interact(uuid.New(), p.Base))
	assert.Equal(t, [][]string{{"toggle"}}, actions.performed)
}

func TestSitWithoutSeats(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "chest", cube.Pos{0, ground, 0})
	_, err := f.engine.Sit(p.Base, uuid.New())
	assert.ErrorIs(t, err, furniture.ErrMissingCapability)
}

func TestStorage(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "chest", cube.Pos{0, ground, 0}, furniture.WithEvolutionStage(4))

	items, err := f.engine.Storage(p.Base)
	require.NoError(t, err)
	assert.Empty(t, items)

	contents := []furniture.Item{{ID: "apple", Count: 2}, {ID: "stick", Count: 64}}
	require.NoError(t, f.engine.SetStorage(p.Base, contents))
	items, err = f.engine.Storage(p.Base)
	require.NoError(t, err)
	assert.Equal(t, contents, items)

	snap, err := f.engine.Placement(p.Base)
	require.NoError(t, err)
	assert.Zero(t, snap.EvolutionStage, "stages are only stored for evolving furniture")

	require.NoError(t, f.engine.Remove(p.Base))
	restored, err := f.engine.Place(snap.Definition, snap.Anchor, snap.Yaw, snap.Facing, furniture.Restore(snap)...)
	require.NoError(t, err)
	assert.Equal(t, contents, restored.Storage)
	assert.NotEqual(t, snap.Base, restored.Base)

	chair := f.place(t, "chair", cube.Pos{5, ground, 5})
	_, err = f.engine.Storage(chair.Base)
	assert.ErrorIs(t, err, furniture.ErrMissingCapability)
	assert.ErrorIs(t, f.engine.SetStorage(chair.Base, contents), furniture.ErrMissingCapability)
}

func TestJukebox(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "jukebox", cube.Pos{0, ground, 0})

	disc, err := f.engine.EjectDisc(p.Base)
	require.NoError(t, err)
	assert.Empty(t, disc)

	require.NoError(t, f.engine.InsertDisc(p.Base, "music_disc_cat"))
	assert.Equal(t, "music_disc_cat", f.world.Playing(p.Base))
	assert.ErrorIs(t, f.engine.InsertDisc(p.Base, "music_disc_13"), furniture.ErrOccupied)

	disc, err = f.engine.EjectDisc(p.Base)
	require.NoError(t, err)
	assert.Equal(t, "music_disc_cat", disc)
	assert.Empty(t, f.world.Playing(p.Base))

	require.NoError(t, f.engine.InsertDisc(p.Base, "music_disc_13"))
	snap, err := f.engine.Placement(p.Base)
	require.NoError(t, err)
	assert.Equal(t, "music_disc_13", snap.Disc)

	require.NoError(t, f.engine.Remove(p.Base))
	assert.Empty(t, f.world.Playing(p.Base), "removal stops the disc")

	restored, err := f.engine.Place(snap.Definition, snap.Anchor, snap.Yaw, snap.Facing, furniture.Restore(snap)...)
	require.NoError(t, err)
	assert.Equal(t, "music_disc_13", f.world.Playing(restored.Base), "restoring resumes the disc")

	chair := f.place(t, "chair", cube.Pos{5, ground, 5})
	assert.ErrorIs(t, f.engine.InsertDisc(chair.Base, "music_disc_cat"), furniture.ErrMissingCapability)
}

func TestAdvanceEvolution(t *testing.T) {
	f := newFixture(t)
	anchor := cube.Pos{0, ground, 0}
	p, err := f.engine.Place(f.def(t, "sapling"), anchor, 90, cube.FaceUp)
	require.NoError(t, err)

	p, err = f.engine.AdvanceEvolution(p.Base, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "sapling", p.ItemID())
	assert.Equal(t, 1, p.EvolutionStage)

	// Past the delay with a failed roll the stage is capped.
	p, err = f.engine.AdvanceEvolution(p.Base, 10, 0.9)
	require.NoError(t, err)
	assert.Equal(t, "sapling", p.ItemID())
	assert.Equal(t, 3, p.EvolutionStage)

	var evolved *furniture.EventEvolve
	f.handler.onEvolve = func(e *furniture.EventEvolve) { evolved = e }
	old := p.Base
	p, err = f.engine.AdvanceEvolution(p.Base, 1, 0.1)
	require.NoError(t, err)
	require.NotNil(t, evolved)
	assert.Equal(t, "tree", evolved.Next.ItemID())

	assert.Equal(t, "tree", p.ItemID())
	assert.NotEqual(t, old, p.Base)
	assert.Equal(t, anchor, p.Anchor)
	assert.Equal(t, 90.0, p.Yaw)
	assert.False(t, f.world.Alive(old))
	assert.Equal(t, 1, f.engine.Len())

	at, err := f.engine.At(anchor.Add(cube.Pos{0, 1, 0}))
	require.NoError(t, err)
	assert.Equal(t, p.Base, at.Base)

	_, err = f.engine.AdvanceEvolution(p.Base, 1, 0)
	assert.ErrorIs(t, err, furniture.ErrMissingCapability)
}

func TestAdvanceEvolutionCancelled(t *testing.T) {
	f := newFixture(t)
	p := f.place(t, "seed", cube.Pos{0, ground, 0})
	f.handler.onEvolve = func(e *furniture.EventEvolve) { e.Cancel() }

	_, err := f.engine.AdvanceEvolution(p.Base, 5, 0)
	assert.ErrorIs(t, err, furniture.ErrCancelled)

	still, err := f.engine.Placement(p.Base)
	require.NoError(t, err)
	assert.Equal(t, "seed", still.ItemID())
	assert.Equal(t, 2, still.EvolutionStage)
}
