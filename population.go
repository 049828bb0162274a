package meanlaw

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-moremath/stats"
)

// Normal holds the parameters of a configurable normal distribution.
// It is the parameter type everywhere a draw is configurable:
// propensity, per-period luck, and the treatment effect.
type Normal struct {
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"std_dev" json:"std_dev"`
}

// StdNormal is the default distribution for propensity and luck:
// mean 0, standard deviation 1.
var StdNormal = Normal{Mean: 0, StdDev: 1}

// Validate rejects a negative standard deviation.
func (d Normal) Validate() error {
	if d.StdDev < 0 {
		return fmt.Errorf("%w: standard deviation must be non-negative, got %g",
			ErrInvalidConfiguration, d.StdDev)
	}
	return nil
}

// rand returns a draw function over the given source. Each logical
// draw in the pipeline gets its own source, so reseeding one never
// perturbs another.
func (d Normal) rand(r *rand.Rand) func() float64 {
	nd := stats.NormalDist{Mu: d.Mean, Sigma: d.StdDev}
	return func() float64 { return nd.Rand(r) }
}

// Individual is one synthetic subject.
//
// Propensity is the fixed latent trait, drawn once at creation and
// immutable. Luck[k-1] is period k's noise draw, immutable once drawn.
// The observed outcome is always derived, never stored:
//
//	need[k] = propensity + luck[k]
type Individual struct {
	ID         int       `json:"id"`
	Propensity float64   `json:"propensity"`
	Luck       []float64 `json:"luck"`
}

// Need returns the observed outcome for a simulated period.
// The period must already be simulated (see Population.Periods);
// asking for a later one panics.
func (ind *Individual) Need(period int) float64 {
	return ind.Propensity + ind.Luck[period-1]
}

// Population is the ordered collection of Individuals, created once
// and never resized. The only mutation after creation is appending
// one luck draw per Individual when a new period is simulated.
type Population struct {
	Individuals []*Individual `json:"individuals"`

	periods int
}

// Size returns the number of individuals.
func (p *Population) Size() int { return len(p.Individuals) }

// Periods returns how many periods have been simulated so far.
func (p *Population) Periods() int { return p.periods }

// GeneratePopulation creates n Individuals with ids 1..n and a
// propensity drawn from dist using a stream seeded with seed.
// The same seed always yields bit-identical propensity values.
func GeneratePopulation(n int, seed int64, dist Normal) (*Population, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d",
			ErrInvalidConfiguration, n)
	}
	if err := dist.Validate(); err != nil {
		return nil, fmt.Errorf("propensity distribution: %w", err)
	}

	draw := dist.rand(rand.New(rand.NewSource(seed)))
	individuals := make([]*Individual, n)
	for i := range individuals {
		individuals[i] = &Individual{
			ID:         i + 1,
			Propensity: draw(),
		}
	}

	return &Population{Individuals: individuals}, nil
}
