package furniture

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// GrowthFunc returns how much an evolving placement grows in one tick.
// Hosts use it to apply light or weather boosts. Returning 0 skips the
// placement for this tick.
type GrowthFunc func(p *Placement) int

// Evolver periodically advances every evolving placement of an engine.
// Only start one when the registry HasEvolvingFurniture.
type Evolver struct {
	engine *Engine
	growth GrowthFunc
	rng    *rand.Rand
	rngMu  sync.Mutex

	// Execution state, guarded by runMu. The channels belong to one run.
	runMu   sync.Mutex
	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Tick tracking
	tickRate   time.Duration
	tickNumber atomic.Uint64
}

// NewEvolver creates an evolver ticking every tickRate. A nil growth grows
// every placement by 1 per tick; a nil rng uses a randomly seeded one.
func NewEvolver(e *Engine, tickRate time.Duration, growth GrowthFunc, rng *rand.Rand) *Evolver {
	if growth == nil {
		growth = func(*Placement) int { return 1 }
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if tickRate <= 0 {
		tickRate = time.Second
	}
	return &Evolver{
		engine:   e,
		growth:   growth,
		rng:      rng,
		tickRate: tickRate,
	}
}

// Start begins the tick loop. A stopped evolver can be started again.
func (v *Evolver) Start() {
	v.runMu.Lock()
	defer v.runMu.Unlock()
	if v.running.Load() {
		return // Already running
	}
	v.stopCh = make(chan struct{})
	v.doneCh = make(chan struct{})
	v.running.Store(true)
	go v.tickLoop(v.stopCh, v.doneCh)
}

// Stop stops the tick loop and waits for the running tick to finish.
func (v *Evolver) Stop() {
	v.runMu.Lock()
	defer v.runMu.Unlock()
	if !v.running.Load() {
		return
	}
	close(v.stopCh)
	<-v.doneCh
	v.running.Store(false)
}

// Running reports whether the tick loop is running.
func (v *Evolver) Running() bool {
	return v.running.Load()
}

func (v *Evolver) tickLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(v.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			v.Tick()
		}
	}
}

// Tick advances every evolving placement once and returns the placements
// that were replaced by their next stage.
func (v *Evolver) Tick() []*Placement {
	v.tickNumber.Add(1)

	var evolved []*Placement
	for _, p := range v.engine.Placements() {
		if !p.Definition.Has(Evolution) {
			continue
		}
		delta := v.growth(p)
		if delta <= 0 {
			continue
		}
		np, err := v.engine.AdvanceEvolution(p.Base, delta, v.roll())
		if err != nil {
			v.engine.log.Debug("furniture: evolution skipped", "item", p.ItemID(), "base", p.Base, "error", err)
			continue
		}
		if evolvedFrom(p.Base, np) {
			evolved = append(evolved, np)
		}
	}
	return evolved
}

// Ticks returns the number of ticks run so far.
func (v *Evolver) Ticks() uint64 {
	return v.tickNumber.Load()
}

func (v *Evolver) roll() float64 {
	v.rngMu.Lock()
	defer v.rngMu.Unlock()
	return v.rng.Float64()
}

// evolvedFrom reports whether next replaced the placement with base.
func evolvedFrom(base uuid.UUID, next *Placement) bool {
	return next != nil && next.Base != base
}
