package meanlaw

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// Cohort is the subgroup selected by ranking on a reference period's
// need. It is a projection into the Population, not a copy: members
// are pointers to the same Individuals, kept in rank order, so periods
// simulated after selection are visible through the cohort. Selection
// never mutates the Population.
type Cohort struct {
	Members    []*Individual `json:"members"`
	Period     int           `json:"period"`
	Proportion float64       `json:"proportion"`
}

// SelectTop returns the individuals whose need in the reference period
// ranks in the top proportion of the population.
//
// Cohort size is round(N·proportion) with a floor of 1. Ranking is an
// explicit sort: descending need, ties broken by ascending ID, so the
// same inputs always select the same cohort in the same order. Only
// the reference period's values are consulted; selecting on a period
// that has not been simulated is an ordering violation.
func (p *Population) SelectTop(period int, proportion float64) (*Cohort, error) {
	if proportion <= 0 || proportion > 1 {
		return nil, fmt.Errorf("%w: proportion must be in (0, 1], got %g",
			ErrInvalidConfiguration, proportion)
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, got %d",
			ErrInvalidConfiguration, period)
	}
	if period > p.periods {
		return nil, fmt.Errorf("%w: cannot select on period %d, only %d simulated",
			ErrOrderingViolation, period, p.periods)
	}

	ranked := make([]*Individual, len(p.Individuals))
	copy(ranked, p.Individuals)
	sort.Slice(ranked, func(i, j int) bool {
		ni, nj := ranked[i].Need(period), ranked[j].Need(period)
		if ni != nj {
			return ni > nj
		}
		return ranked[i].ID < ranked[j].ID
	})

	k := int(math.Round(float64(len(ranked)) * proportion))
	if k < 1 {
		k = 1
	}

	return &Cohort{
		Members:    ranked[:k],
		Period:     period,
		Proportion: proportion,
	}, nil
}

// Field names a per-individual quantity for aggregation: "propensity",
// "luck_k" or "need_k" for period k. The names double as column labels
// in tables and JSON output.
type Field string

// FieldPropensity selects the fixed latent trait.
const FieldPropensity Field = "propensity"

// FieldLuck selects period k's noise draw.
func FieldLuck(period int) Field { return Field(fmt.Sprintf("luck_%d", period)) }

// FieldNeed selects period k's observed outcome.
func FieldNeed(period int) Field { return Field(fmt.Sprintf("need_%d", period)) }

// extractor resolves the field into an accessor and the period it
// needs (0 for propensity).
func (f Field) extractor() (func(*Individual) float64, int, error) {
	if f == FieldPropensity {
		return func(ind *Individual) float64 { return ind.Propensity }, 0, nil
	}
	if rest, ok := strings.CutPrefix(string(f), "luck_"); ok {
		if period, err := strconv.Atoi(rest); err == nil && period > 0 {
			return func(ind *Individual) float64 { return ind.Luck[period-1] }, period, nil
		}
	}
	if rest, ok := strings.CutPrefix(string(f), "need_"); ok {
		if period, err := strconv.Atoi(rest); err == nil && period > 0 {
			return func(ind *Individual) float64 { return ind.Need(period) }, period, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: unknown field %q", ErrInvalidConfiguration, f)
}

// Values collects one field across a subset of individuals, in the
// subset's order.
func Values(members []*Individual, f Field) ([]float64, error) {
	get, period, err := f.extractor()
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(members))
	for i, ind := range members {
		if period > len(ind.Luck) {
			return nil, fmt.Errorf("%w: field %s needs period %d, individual %d has %d",
				ErrOrderingViolation, f, period, ind.ID, len(ind.Luck))
		}
		xs[i] = get(ind)
	}

	return xs, nil
}

// Means computes the arithmetic mean of each field across the subset.
// This is the aggregation behind the demonstration's comparisons:
// cohort propensity / luck_1 / need_1 against the population (a
// high-need selection over-represents both high propensity and high
// luck), and cohort need_1 against need_2 (the regression).
func Means(members []*Individual, fields ...Field) (map[Field]float64, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: no members to aggregate", ErrInsufficientSample)
	}

	means := make(map[Field]float64, len(fields))
	for _, f := range fields {
		xs, err := Values(members, f)
		if err != nil {
			return nil, err
		}
		means[f] = stats.Mean(xs)
	}

	return means, nil
}

// RegressionSummary quantifies how a selected cohort moved between its
// selection period and an untouched remeasurement.
//
// Shrinkage is the fraction of the cohort's excess over the population
// mean that disappeared:
//
//	shrinkage = (before - after) / (before - population mean)
//
// With propensity and luck of equal variance the expected value is 0.5:
// half of what made the cohort extreme was propensity (which persists)
// and half was luck (which does not).
type RegressionSummary struct {
	Period         int     `json:"period"`
	FollowUp       int     `json:"follow_up"`
	CohortBefore   float64 `json:"cohort_before"`
	CohortAfter    float64 `json:"cohort_after"`
	MeanChange     float64 `json:"mean_change"`
	PopulationMean float64 `json:"population_mean"`
	Shrinkage      float64 `json:"shrinkage"`
}

// CalculateRegression compares the cohort's mean need in its selection
// period against a later period with no intervention applied, relative
// to the population-wide mean of the selection period.
func CalculateRegression(p *Population, c *Cohort, followUp int) (RegressionSummary, error) {
	if followUp <= c.Period {
		return RegressionSummary{}, fmt.Errorf("%w: follow-up period %d not after selection period %d",
			ErrInvalidConfiguration, followUp, c.Period)
	}
	if followUp > p.periods {
		return RegressionSummary{}, fmt.Errorf("%w: follow-up period %d not simulated, only %d",
			ErrOrderingViolation, followUp, p.periods)
	}

	cohortMeans, err := Means(c.Members, FieldNeed(c.Period), FieldNeed(followUp))
	if err != nil {
		return RegressionSummary{}, err
	}
	popMeans, err := Means(p.Individuals, FieldNeed(c.Period))
	if err != nil {
		return RegressionSummary{}, err
	}

	before := cohortMeans[FieldNeed(c.Period)]
	after := cohortMeans[FieldNeed(followUp)]
	popMean := popMeans[FieldNeed(c.Period)]

	summary := RegressionSummary{
		Period:         c.Period,
		FollowUp:       followUp,
		CohortBefore:   before,
		CohortAfter:    after,
		MeanChange:     after - before,
		PopulationMean: popMean,
	}
	if excess := before - popMean; excess != 0 {
		summary.Shrinkage = (before - after) / excess
	}

	return summary, nil
}
