package furniture

// Handler receives furniture lifecycle events. Embed NopHandler to only
// implement the methods you need.
//
// Concurrency:
// Handlers are called synchronously while the engine holds its lock. They
// must not call back into the Engine.
type Handler interface {
	HandlePlace(e *EventPlace)
	HandleRotate(e *EventRotate)
	HandleBreak(e *EventBreak)
	HandleInteract(e *EventInteract)
	HandleEvolve(e *EventEvolve)
	HandleRemove(e *EventRemove)
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

// Compile-time check that NopHandler implements Handler.
var _ Handler = NopHandler{}

func (NopHandler) HandlePlace(*EventPlace)       {}
func (NopHandler) HandleRotate(*EventRotate)     {}
func (NopHandler) HandleBreak(*EventBreak)       {}
func (NopHandler) HandleInteract(*EventInteract) {}
func (NopHandler) HandleEvolve(*EventEvolve)     {}
func (NopHandler) HandleRemove(*EventRemove)     {}

// Handlers combines several handlers into one. Handlers run in order; once
// an event is cancelled the remaining handlers are skipped.
func Handlers(hs ...Handler) Handler {
	return multiHandler(hs)
}

type multiHandler []Handler

// each runs fn for every handler until cancelled reports true.
func (m multiHandler) each(cancelled func() bool, fn func(h Handler)) {
	for _, h := range m {
		if cancelled() {
			return
		}
		fn(h)
	}
}

func (m multiHandler) HandlePlace(e *EventPlace) {
	m.each(e.Ctx.Cancelled, func(h Handler) { h.HandlePlace(e) })
}

func (m multiHandler) HandleRotate(e *EventRotate) {
	m.each(e.Ctx.Cancelled, func(h Handler) { h.HandleRotate(e) })
}

func (m multiHandler) HandleBreak(e *EventBreak) {
	m.each(e.Ctx.Cancelled, func(h Handler) { h.HandleBreak(e) })
}

func (m multiHandler) HandleInteract(e *EventInteract) {
	m.each(e.Ctx.Cancelled, func(h Handler) { h.HandleInteract(e) })
}

func (m multiHandler) HandleEvolve(e *EventEvolve) {
	m.each(e.Ctx.Cancelled, func(h Handler) { h.HandleEvolve(e) })
}

func (m multiHandler) HandleRemove(e *EventRemove) {
	for _, h := range m {
		h.HandleRemove(e)
	}
}
