package simulation

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/optstrat/optstrat/geometrics"
	"github.com/optstrat/optstrat/model"
)

// priceFloor keeps every generated value strictly positive.
const priceFloor = 1e-8

var (
	ErrNoSteps       = errors.New("simulation: step count must be positive")
	ErrBadTimeStep   = errors.New("simulation: dt must be positive")
	ErrUnknownWalk   = errors.New("simulation: unknown walk type")
	ErrWalkNotFound  = errors.New("simulation: walk not found")
	ErrEmptyWalk     = errors.New("simulation: walk has no steps")
	ErrIndexOutOf    = errors.New("simulation: step index out of range")
	ErrNoStrategy    = errors.New("simulation: strategy required")
	ErrNoSimulations = errors.New("simulation: simulation count must be positive")
)

// WalkType selects the stochastic process driving a walk.
type WalkType int

const (
	Brownian WalkType = iota
	GeometricBrownian
	MeanReverting
	StochasticVolatility
)

var walkNames = map[WalkType]string{
	Brownian:             "Brownian",
	GeometricBrownian:    "Geometric Brownian",
	MeanReverting:        "Mean Reverting",
	StochasticVolatility: "Stochastic Volatility",
}

func (t WalkType) String() string { return walkNames[t] }

// TimeUnit labels the spacing of x-steps.
type TimeUnit int

const (
	UnitDay TimeUnit = iota
	UnitHour
	UnitMinute
)

var unitNames = map[TimeUnit]string{UnitDay: "day", UnitHour: "hour", UnitMinute: "minute"}

func (u TimeUnit) String() string { return unitNames[u] }

// WalkParams is the full parameter bag; each walk type reads the fields
// it needs and ignores the rest.
type WalkParams struct {
	Type         WalkType
	Steps        int
	Dt           float64 // year fraction per step
	InitialPrice model.Positive
	TimeUnit     TimeUnit

	Drift      float64        // mu
	Volatility model.Positive // sigma (annualised)

	// Mean reversion (Ornstein-Uhlenbeck).
	MeanLevel      float64 // theta
	ReversionSpeed float64 // kappa

	// Stochastic volatility.
	VolOfVol     model.Positive // nu
	VolReversion float64        // kappa on the vol process
	VolMean      model.Positive // long-run sigma

	Seed uint64
}

func (p WalkParams) validate() error {
	if p.Steps <= 0 {
		return ErrNoSteps
	}
	if p.Dt <= 0 {
		return ErrBadTimeStep
	}
	return nil
}

// XStep is the time coordinate of a walk step.
type XStep struct {
	Index    int            `json:"index"`
	Unit     TimeUnit       `json:"unit"`
	DaysLeft model.Positive `json:"days_left"`
}

// YStep carries the simulated price.
type YStep struct {
	Value model.Positive `json:"value"`
}

// Step pairs a time coordinate with a value.
type Step struct {
	X XStep `json:"x"`
	Y YStep `json:"y"`
}

// RandomWalk is a titled, strictly x-ordered step sequence.
type RandomWalk struct {
	Title string `json:"title"`
	steps []Step
}

// NewRandomWalk generates a walk from params using its own seeded RNG.
// The same seed and params always produce the same step sequence.
func NewRandomWalk(title string, p WalkParams) (*RandomWalk, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	values, err := generate(p, rng)
	if err != nil {
		return nil, err
	}

	totalDays := float64(p.Steps) * p.Dt * model.DaysPerYear
	steps := make([]Step, len(values))
	for i, v := range values {
		left := totalDays - float64(i)*p.Dt*model.DaysPerYear
		if left < 0 {
			left = 0
		}
		steps[i] = Step{
			X: XStep{Index: i, Unit: p.TimeUnit, DaysLeft: model.MustPositive(left)},
			Y: YStep{Value: model.MustPositive(v)},
		}
	}
	return &RandomWalk{Title: title, steps: steps}, nil
}

// generate produces Steps+1 values including the initial price.
func generate(p WalkParams, rng *rand.Rand) ([]float64, error) {
	s := p.InitialPrice.Float64()
	if s < priceFloor {
		s = priceFloor
	}
	sqdt := math.Sqrt(p.Dt)
	sigma := p.Volatility.Float64()
	out := make([]float64, 0, p.Steps+1)
	out = append(out, s)

	switch p.Type {
	case Brownian:
		for i := 0; i < p.Steps; i++ {
			s += p.Drift*p.Dt + sigma*sqdt*rng.NormFloat64()
			s = clamp(s)
			out = append(out, s)
		}
	case GeometricBrownian:
		for i := 0; i < p.Steps; i++ {
			s *= math.Exp((p.Drift-0.5*sigma*sigma)*p.Dt + sigma*sqdt*rng.NormFloat64())
			s = clamp(s)
			out = append(out, s)
		}
	case MeanReverting:
		for i := 0; i < p.Steps; i++ {
			s += p.ReversionSpeed*(p.MeanLevel-s)*p.Dt + sigma*sqdt*rng.NormFloat64()
			s = clamp(s)
			out = append(out, s)
		}
	case StochasticVolatility:
		vol := sigma
		nu := p.VolOfVol.Float64()
		volMean := p.VolMean.Float64()
		for i := 0; i < p.Steps; i++ {
			z := rng.NormFloat64()
			zv := rng.NormFloat64()
			vol += p.VolReversion*(volMean-vol)*p.Dt + nu*sqdt*zv
			if vol < priceFloor {
				vol = priceFloor
			}
			s *= math.Exp((p.Drift-0.5*vol*vol)*p.Dt + vol*sqdt*z)
			s = clamp(s)
			out = append(out, s)
		}
	default:
		return nil, ErrUnknownWalk
	}
	return out, nil
}

func clamp(v float64) float64 {
	if v < priceFloor || math.IsNaN(v) {
		return priceFloor
	}
	return v
}

func (w *RandomWalk) Len() int { return len(w.steps) }

// Steps returns a copy of the step sequence.
func (w *RandomWalk) Steps() []Step {
	out := make([]Step, len(w.steps))
	copy(out, w.steps)
	return out
}

// At returns the step at index i.
func (w *RandomWalk) At(i int) (Step, error) {
	if i < 0 || i >= len(w.steps) {
		return Step{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOf, i, len(w.steps))
	}
	return w.steps[i], nil
}

func (w *RandomWalk) First() (Step, error) {
	if len(w.steps) == 0 {
		return Step{}, ErrEmptyWalk
	}
	return w.steps[0], nil
}

func (w *RandomWalk) Last() (Step, error) {
	if len(w.steps) == 0 {
		return Step{}, ErrEmptyWalk
	}
	return w.steps[len(w.steps)-1], nil
}

// SetValue replaces the price at step i.
func (w *RandomWalk) SetValue(i int, v model.Positive) error {
	if i < 0 || i >= len(w.steps) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOf, i, len(w.steps))
	}
	w.steps[i].Y.Value = v
	return nil
}

// Values returns the raw price path.
func (w *RandomWalk) Values() []float64 {
	out := make([]float64, len(w.steps))
	for i, s := range w.steps {
		out[i] = s.Y.Value.Float64()
	}
	return out
}

// Curve renders the walk as (step index, price).
func (w *RandomWalk) Curve() *geometrics.Curve {
	pts := make([]geometrics.Point2D, len(w.steps))
	for i, s := range w.steps {
		pts[i] = geometrics.NewPoint2D(float64(s.X.Index), s.Y.Value.Float64())
	}
	return geometrics.NewCurve(pts)
}
