package meanlaw

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// Summary describes a sample's distribution: moments plus the quantile
// ladder min/1/5/25/median/75/95/99/max.
type Summary struct {
	N        int     `json:"n"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	P1       float64 `json:"p1"`
	P5       float64 `json:"p5"`
	P25      float64 `json:"p25"`
	Median   float64 `json:"median"`
	P75      float64 `json:"p75"`
	P95      float64 `json:"p95"`
	P99      float64 `json:"p99"`
	Max      float64 `json:"max"`
}

// Describe computes the distribution summary of xs. The input is left
// untouched. Fewer than 2 values cannot be described (the standard
// deviation is undefined) and report an insufficient sample.
func Describe(xs []float64) (Summary, error) {
	if len(xs) < 2 {
		return Summary{}, fmt.Errorf("%w: need at least 2 values to describe, got %d",
			ErrInsufficientSample, len(xs))
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	s := stats.Sample{Xs: sorted}
	s.Sort()

	return Summary{
		N:        len(s.Xs),
		Sum:      s.Sum(),
		Mean:     s.Mean(),
		StdDev:   s.StdDev(),
		Variance: s.Variance(),
		Min:      s.Quantile(0),
		P1:       s.Quantile(0.01),
		P5:       s.Quantile(0.05),
		P25:      s.Quantile(0.25),
		Median:   s.Quantile(0.5),
		P75:      s.Quantile(0.75),
		P95:      s.Quantile(0.95),
		P99:      s.Quantile(0.99),
		Max:      s.Quantile(1),
	}, nil
}

// DescribeField summarizes one field across a subset of individuals.
func DescribeField(members []*Individual, f Field) (Summary, error) {
	xs, err := Values(members, f)
	if err != nil {
		return Summary{}, err
	}
	return Describe(xs)
}
