package meanlaw

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Seeds holds one independent seed per logical draw. Changing one seed
// never perturbs another draw's stream; this independence is a
// correctness requirement of the demonstration, not an optimization.
type Seeds struct {
	Propensity int64   `yaml:"propensity" json:"propensity"`
	Luck       []int64 `yaml:"luck" json:"luck"` // one per period, in order
	Assignment int64   `yaml:"assignment" json:"assignment"`
	Effect     int64   `yaml:"effect" json:"effect"`
}

// Scenario fully describes one run of the demonstration. Defaults live
// here, in the calling layer; none of the pipeline stages carry hidden
// defaults of their own.
type Scenario struct {
	PopulationSize int     `yaml:"population_size" json:"population_size"`
	Periods        int     `yaml:"periods" json:"periods"`
	Propensity     Normal  `yaml:"propensity" json:"propensity"`
	Luck           Normal  `yaml:"luck" json:"luck"`
	TopProportion  float64 `yaml:"top_proportion" json:"top_proportion"`
	AllocationProb float64 `yaml:"allocation_prob" json:"allocation_prob"`
	Effect         Normal  `yaml:"effect" json:"effect"`
	Alpha          float64 `yaml:"alpha" json:"alpha"`
	Seeds          Seeds   `yaml:"seeds" json:"seeds"`
}

// DefaultScenario returns the canonical demonstration: 1000 standard
// normal individuals over two periods, top decile selection, 50/50
// allocation, effect Normal{0.4, 0.2}, verdict threshold 0.05.
func DefaultScenario() Scenario {
	return Scenario{
		PopulationSize: 1000,
		Periods:        2,
		Propensity:     StdNormal,
		Luck:           StdNormal,
		TopProportion:  0.10,
		AllocationProb: 0.5,
		Effect:         Normal{Mean: 0.4, StdDev: 0.2},
		Alpha:          0.05,
		Seeds: Seeds{
			Propensity: 1234,
			Luck:       []int64{456, 789},
			Assignment: 42,
			Effect:     43,
		},
	}
}

// LoadScenario reads a scenario from a YAML file. Keys missing from
// the file keep their defaults.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading scenario file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing scenario file: %w", err)
	}

	return s, nil
}

// Validate checks every parameter before any stage runs. The run
// either completes deterministically or fails here.
func (s Scenario) Validate() error {
	if s.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be positive, got %d",
			ErrInvalidConfiguration, s.PopulationSize)
	}
	if s.Periods < 2 {
		return fmt.Errorf("%w: the demonstration needs at least 2 periods, got %d",
			ErrInvalidConfiguration, s.Periods)
	}
	if s.TopProportion <= 0 || s.TopProportion > 1 {
		return fmt.Errorf("%w: top proportion must be in (0, 1], got %g",
			ErrInvalidConfiguration, s.TopProportion)
	}
	if s.AllocationProb <= 0 || s.AllocationProb >= 1 {
		return fmt.Errorf("%w: allocation probability must be in (0, 1), got %g",
			ErrInvalidConfiguration, s.AllocationProb)
	}
	if s.Alpha <= 0 || s.Alpha >= 1 {
		return fmt.Errorf("%w: alpha must be in (0, 1), got %g",
			ErrInvalidConfiguration, s.Alpha)
	}
	if err := s.Propensity.Validate(); err != nil {
		return fmt.Errorf("propensity distribution: %w", err)
	}
	if err := s.Luck.Validate(); err != nil {
		return fmt.Errorf("luck distribution: %w", err)
	}
	if err := s.Effect.Validate(); err != nil {
		return fmt.Errorf("effect distribution: %w", err)
	}
	if len(s.Seeds.Luck) < s.Periods {
		return fmt.Errorf("%w: need one luck seed per period, have %d for %d periods",
			ErrInvalidConfiguration, len(s.Seeds.Luck), s.Periods)
	}
	return nil
}

// ScenarioResult carries every table the rendering layer needs. The
// Population and Cohort stay available to callers but are excluded
// from JSON output, which carries the derived tables only.
type ScenarioResult struct {
	Scenario        Scenario          `json:"scenario"`
	PopulationNeed  Summary           `json:"population_need"`
	PopulationMeans map[Field]float64 `json:"population_means"`
	CohortMeans     map[Field]float64 `json:"cohort_means"`
	Regression      RegressionSummary `json:"regression"`
	Trial           *TrialResult      `json:"trial"`
	Conclusion      Conclusion        `json:"conclusion"`

	Population *Population `json:"-"`
	Cohort     *Cohort     `json:"-"`
}

// Run executes the pipeline in causal order: generate, simulate each
// period, select the top cohort on period 1, aggregate, summarize the
// untouched regression, then run the randomized trial on period 2 and
// classify the outcome. Fixed seeds reproduce the result bit for bit.
func (s Scenario) Run() (*ScenarioResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	pop, err := GeneratePopulation(s.PopulationSize, s.Seeds.Propensity, s.Propensity)
	if err != nil {
		return nil, err
	}
	for period := 1; period <= s.Periods; period++ {
		if err := pop.SimulatePeriod(period, s.Seeds.Luck[period-1], s.Luck); err != nil {
			return nil, err
		}
	}

	cohort, err := pop.SelectTop(1, s.TopProportion)
	if err != nil {
		return nil, err
	}

	popNeed, err := DescribeField(pop.Individuals, FieldNeed(1))
	if err != nil {
		return nil, err
	}
	popMeans, err := Means(pop.Individuals, FieldPropensity, FieldLuck(1), FieldNeed(1), FieldNeed(2))
	if err != nil {
		return nil, err
	}
	cohortMeans, err := Means(cohort.Members, FieldPropensity, FieldLuck(1), FieldNeed(1), FieldNeed(2))
	if err != nil {
		return nil, err
	}

	regression, err := CalculateRegression(pop, cohort, 2)
	if err != nil {
		return nil, err
	}

	trial, err := RunTrial(cohort, TrialConfig{
		AllocationProb: s.AllocationProb,
		Effect:         s.Effect,
		AssignmentSeed: s.Seeds.Assignment,
		EffectSeed:     s.Seeds.Effect,
	})
	if err != nil {
		return nil, err
	}

	result := &ScenarioResult{
		Scenario:        s,
		PopulationNeed:  popNeed,
		PopulationMeans: popMeans,
		CohortMeans:     cohortMeans,
		Regression:      regression,
		Trial:           trial,
		Population:      pop,
		Cohort:          cohort,
	}
	result.Conclusion = Conclude(result, s.Alpha)

	return result, nil
}

// WriteReport renders the result as plain text tables. The CLI layers
// styling on top of the same numbers; this form is for logs, tests and
// piping.
func WriteReport(w io.Writer, r *ScenarioResult) {
	fmt.Fprintf(w, "Population\n")
	fmt.Fprintf(w, "  need_1  N %d  mean %.4f  std dev %.4f  min %.4f  median %.4f  max %.4f\n",
		r.PopulationNeed.N, r.PopulationNeed.Mean, r.PopulationNeed.StdDev,
		r.PopulationNeed.Min, r.PopulationNeed.Median, r.PopulationNeed.Max)

	fmt.Fprintf(w, "\nSelection (top %.0f%% by need_1, %d members)\n",
		r.Scenario.TopProportion*100, len(r.Cohort.Members))
	fmt.Fprintf(w, "  %-12s %12s %12s\n", "field", "population", "cohort")
	for _, f := range []Field{FieldPropensity, FieldLuck(1), FieldNeed(1)} {
		fmt.Fprintf(w, "  %-12s %12.4f %12.4f\n", f, r.PopulationMeans[f], r.CohortMeans[f])
	}

	fmt.Fprintf(w, "\nRemeasurement with no intervention\n")
	fmt.Fprintf(w, "  cohort need_1     %9.4f\n", r.Regression.CohortBefore)
	fmt.Fprintf(w, "  cohort need_2     %9.4f\n", r.Regression.CohortAfter)
	fmt.Fprintf(w, "  mean change       %9.4f\n", r.Regression.MeanChange)
	fmt.Fprintf(w, "  population need_1 %9.4f\n", r.Regression.PopulationMean)
	fmt.Fprintf(w, "  shrinkage         %9.2f\n", r.Regression.Shrinkage)

	fmt.Fprintf(w, "\nRandomized trial (effect %.2f ± %.2f on treatment)\n",
		r.Scenario.Effect.Mean, r.Scenario.Effect.StdDev)
	fmt.Fprintf(w, "  %-10s %4s %10s %10s %10s\n", "arm", "n", "before", "adjusted", "change")
	for _, arm := range []ArmSummary{r.Trial.Control, r.Trial.Treatment} {
		fmt.Fprintf(w, "  %-10s %4d %10.4f %10.4f %10.4f\n",
			arm.Arm, arm.N, arm.MeanBefore, arm.MeanAdjusted, arm.MeanChange)
	}
	fmt.Fprintf(w, "  Welch's t-test on change: t %.4f  dof %.1f  p %.4f\n",
		r.Trial.T, r.Trial.DoF, r.Trial.P)

	fmt.Fprintf(w, "\nVerdict: %s\n  %s\n", r.Conclusion.Verdict, r.Conclusion.Reason)
}
