package meanlaw

import (
	"fmt"
	"math/rand"
)

// SimulatePeriod draws one luck value per individual from dist using a
// stream seeded with seed, and appends it as the period's noise term.
// The observed need for the period then derives as propensity + luck.
//
// Periods advance strictly in order: the first call simulates period 1,
// the next period 2, and so on. Simulating a period twice or skipping
// ahead is an ordering violation, which is what keeps earlier periods
// immutable once drawn. Each period gets its own seed, so period-1 and
// period-2 luck stay statistically independent the way year-to-year
// outcome fluctuation is.
func (p *Population) SimulatePeriod(period int, seed int64, dist Normal) error {
	if period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %d",
			ErrInvalidConfiguration, period)
	}
	if err := dist.Validate(); err != nil {
		return fmt.Errorf("luck distribution: %w", err)
	}
	if period != p.periods+1 {
		return fmt.Errorf("%w: period %d out of order, next to simulate is %d",
			ErrOrderingViolation, period, p.periods+1)
	}

	draw := dist.rand(rand.New(rand.NewSource(seed)))
	for _, ind := range p.Individuals {
		ind.Luck = append(ind.Luck, draw())
	}
	p.periods++

	return nil
}
