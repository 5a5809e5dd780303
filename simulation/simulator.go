package simulation

import (
	"fmt"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"

	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
	"github.com/optstrat/optstrat/strategies"
	"github.com/optstrat/optstrat/utils"
)

var rngPool = sync.Pool{
	New: func() interface{} {
		return rand.New(rand.NewSource(uint64(rand.Int63())))
	},
}

// workerCount sizes batch fan-out by the logical CPU count.
func workerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return 4
	}
	return n
}

// Simulator runs N walks sharing one parameter set. Walk i is seeded
// with params.Seed+i, so a batch is reproducible end to end.
type Simulator struct {
	Title  string
	params WalkParams
	order  []string
	walks  map[string]*RandomWalk
	log    *utils.Logger
}

// Option adjusts a Simulator before the batch is generated.
type Option func(*Simulator)

// WithLogger routes batch progress through the given handle instead of
// the default no-op logger.
func WithLogger(l *utils.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSimulator generates n walks up front.
func NewSimulator(title string, p WalkParams, n int, opts ...Option) (*Simulator, error) {
	if n <= 0 {
		return nil, ErrNoSimulations
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	sim := &Simulator{
		Title:  title,
		params: p,
		order:  make([]string, n),
		walks:  make(map[string]*RandomWalk, n),
		log:    utils.NopLogger(),
	}
	for _, opt := range opts {
		opt(sim)
	}
	sim.log.Info("starting walk batch",
		"title", title, "walks", n, "steps", p.Steps, "workers", workerCount())

	walks := make([]*RandomWalk, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workerCount())
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			wp := p
			wp.Seed = p.Seed + uint64(i)
			walks[i], errs[i] = NewRandomWalk(fmt.Sprintf("%s #%d", title, i), wp)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			sim.log.Error("walk generation failed", "title", title, "walk", i, "err", errs[i])
			return nil, errs[i]
		}
		sim.order[i] = walks[i].Title
		sim.walks[walks[i].Title] = walks[i]
	}
	sim.log.Info("walk batch complete", "title", title, "walks", n)
	return sim, nil
}

func (s *Simulator) Len() int { return len(s.order) }

// Walk returns the named walk.
func (s *Simulator) Walk(title string) (*RandomWalk, error) {
	w, ok := s.walks[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWalkNotFound, title)
	}
	return w, nil
}

// Walks iterates the walks in generation order.
func (s *Simulator) Walks() []*RandomWalk {
	out := make([]*RandomWalk, len(s.order))
	for i, t := range s.order {
		out[i] = s.walks[t]
	}
	return out
}

// Titles returns walk titles in generation order.
func (s *Simulator) Titles() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Surface collects every walk's values as (walk index, step index,
// price) points.
func (s *Simulator) Surface() *geometrics.Surface {
	var pts []geometrics.Point3D
	for wi, title := range s.order {
		for _, st := range s.walks[title].steps {
			pts = append(pts, geometrics.NewPoint3D(float64(wi), float64(st.X.Index), st.Y.Value.Float64()))
		}
	}
	return geometrics.NewSurface(pts)
}

// SimulateStrategy drives a strategy's payoff along one walk, one
// evaluation per step, returning a (step index, P&L) curve.
func SimulateStrategy(strat strategies.Strategy, walk *RandomWalk) (*geometrics.Curve, error) {
	if strat == nil {
		return nil, ErrNoStrategy
	}
	if walk == nil || walk.Len() == 0 {
		return nil, ErrEmptyWalk
	}
	pts := make([]geometrics.Point2D, walk.Len())
	for i, st := range walk.steps {
		pts[i] = geometrics.NewPoint2D(float64(st.X.Index), strat.Payoff(st.Y.Value))
	}
	return geometrics.NewCurve(pts), nil
}

// ProbabilityOfProfit estimates the chance the strategy finishes with a
// positive payoff by running n terminal-value walks in parallel.
func ProbabilityOfProfit(strat strategies.Strategy, p WalkParams, n int) (float64, error) {
	if strat == nil {
		return 0, ErrNoStrategy
	}
	if n <= 0 {
		return 0, ErrNoSimulations
	}
	if err := p.validate(); err != nil {
		return 0, err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	profitable := 0
	semaphore := make(chan struct{}, workerCount())
	var firstErr error

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rng := rngPool.Get().(*rand.Rand)
			defer rngPool.Put(rng)
			rng.Seed(p.Seed + uint64(i))

			values, err := generate(p, rng)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			terminal := model.MustPositive(values[len(values)-1])
			if strat.Payoff(terminal) > 0 {
				mu.Lock()
				profitable++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	return float64(profitable) / float64(n), nil
}
