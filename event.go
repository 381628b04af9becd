package furniture

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/event"
	"github.com/google/uuid"
)

// Context is the cancellable context of a furniture event. Its value is the
// entity that caused the event, uuid.Nil when the host did.
type Context = event.Context[uuid.UUID]

// Event types are passed to Handler methods. Cancelling the context of a
// cancellable event aborts the action before anything is changed.

// EventPlace is emitted before a placement is created. Yaw may be changed;
// a changed yaw is checked for space again. Sounds is nil when the
// definition configures none.
type EventPlace struct {
	Ctx        *Context
	Definition *Definition
	Anchor     cube.Pos
	Facing     cube.Face
	Yaw        *float64
	Sounds     *Sounds
}

func (e *EventPlace) Cancel() { e.Ctx.Cancel() }

// EventRotate is emitted before a placement is rotated.
type EventRotate struct {
	Ctx       *Context
	Placement *Placement
	From      Rotation
	To        Rotation
}

func (e *EventRotate) Cancel() { e.Ctx.Cancel() }

// EventBreak is emitted before a placement is broken. Drops may be changed.
type EventBreak struct {
	Ctx       *Context
	Placement *Placement
	Tool      Tool
	Drops     *[]Item
	Sounds    *Sounds
}

func (e *EventBreak) Cancel() { e.Ctx.Cancel() }

// EventInteract is emitted when an entity interacts with a placement, after
// the lock check and before click actions run.
type EventInteract struct {
	Ctx       *Context
	Placement *Placement
}

func (e *EventInteract) Cancel() { e.Ctx.Cancel() }

// EventEvolve is emitted before a placement is replaced by its next stage.
type EventEvolve struct {
	Ctx       *Context
	Placement *Placement
	Next      *Definition
}

func (e *EventEvolve) Cancel() { e.Ctx.Cancel() }

// EventRemove is emitted after a placement was torn down.
type EventRemove struct {
	Placement *Placement
}

func newContext(actor uuid.UUID) *Context {
	return event.C(actor)
}
