package meanlaw

import (
	"errors"
	"testing"
)

func TestSimulatePeriod_NeedIdentity(t *testing.T) {
	pop := twoPeriodPopulation(t, 200)

	for _, ind := range pop.Individuals {
		for period := 1; period <= 2; period++ {
			want := ind.Propensity + ind.Luck[period-1]
			if got := ind.Need(period); got != want {
				t.Fatalf("Individual %d period %d: need %v, want propensity+luck = %v",
					ind.ID, period, got, want)
			}
		}
	}

	t.Log("✓ need_k = propensity + luck_k holds exactly for every individual and period")
}

func TestSimulatePeriod_Deterministic(t *testing.T) {
	a := twoPeriodPopulation(t, 300)
	b := twoPeriodPopulation(t, 300)

	for i := range a.Individuals {
		for period := 0; period < 2; period++ {
			if a.Individuals[i].Luck[period] != b.Individuals[i].Luck[period] {
				t.Fatalf("Luck diverged: individual %d period %d: %v vs %v",
					i+1, period+1, a.Individuals[i].Luck[period], b.Individuals[i].Luck[period])
			}
		}
	}

	t.Log("✓ Same seeds reproduce every luck draw bit for bit")
}

func TestSimulatePeriod_IndependentSeedStreams(t *testing.T) {
	t.Log("=== Changing one period's seed must not perturb another period's draws ===")

	build := func(luck2Seed int64) *Population {
		pop, err := GeneratePopulation(300, 1234, StdNormal)
		if err != nil {
			t.Fatalf("GeneratePopulation failed: %v", err)
		}
		if err := pop.SimulatePeriod(1, 456, StdNormal); err != nil {
			t.Fatalf("SimulatePeriod(1) failed: %v", err)
		}
		if err := pop.SimulatePeriod(2, luck2Seed, StdNormal); err != nil {
			t.Fatalf("SimulatePeriod(2) failed: %v", err)
		}
		return pop
	}

	a := build(789)
	b := build(9999)

	for i := range a.Individuals {
		if a.Individuals[i].Luck[0] != b.Individuals[i].Luck[0] {
			t.Fatalf("Period-1 luck changed when only the period-2 seed changed (individual %d)", i+1)
		}
	}
	t.Log("✓ Period-1 luck identical under a different period-2 seed")

	same := true
	for i := range a.Individuals {
		if a.Individuals[i].Luck[1] != b.Individuals[i].Luck[1] {
			same = false
			break
		}
	}
	if same {
		t.Error("Period-2 luck identical under different period-2 seeds")
	}
	t.Log("✓ Period-2 luck responds to its own seed")
}

func TestSimulatePeriod_OrderingEnforced(t *testing.T) {
	pop, err := GeneratePopulation(10, 1, StdNormal)
	if err != nil {
		t.Fatalf("GeneratePopulation failed: %v", err)
	}

	// Skipping ahead.
	if err := pop.SimulatePeriod(2, 1, StdNormal); !errors.Is(err, ErrOrderingViolation) {
		t.Errorf("Skipping to period 2: expected ErrOrderingViolation, got %v", err)
	}

	if err := pop.SimulatePeriod(1, 1, StdNormal); err != nil {
		t.Fatalf("SimulatePeriod(1) failed: %v", err)
	}

	// Re-simulating an existing period would rewrite history.
	if err := pop.SimulatePeriod(1, 2, StdNormal); !errors.Is(err, ErrOrderingViolation) {
		t.Errorf("Repeating period 1: expected ErrOrderingViolation, got %v", err)
	}

	// Nonsense periods are configuration errors, not ordering ones.
	if err := pop.SimulatePeriod(0, 1, StdNormal); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Period 0: expected ErrInvalidConfiguration, got %v", err)
	}
	if err := pop.SimulatePeriod(-3, 1, StdNormal); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Period -3: expected ErrInvalidConfiguration, got %v", err)
	}

	// Failed calls must leave the population untouched.
	if pop.Periods() != 1 {
		t.Errorf("Rejected calls advanced the period count to %d, want 1", pop.Periods())
	}
	for _, ind := range pop.Individuals {
		if len(ind.Luck) != 1 {
			t.Errorf("Individual %d has %d luck draws after rejected calls, want 1", ind.ID, len(ind.Luck))
		}
	}

	t.Log("✓ Periods advance strictly in order and rejected calls leave no trace")
}

func TestSimulatePeriod_PreservesEarlierPeriods(t *testing.T) {
	pop, err := GeneratePopulation(100, 1234, StdNormal)
	if err != nil {
		t.Fatalf("GeneratePopulation failed: %v", err)
	}
	if err := pop.SimulatePeriod(1, 456, StdNormal); err != nil {
		t.Fatalf("SimulatePeriod(1) failed: %v", err)
	}

	before := make([]float64, pop.Size())
	for i, ind := range pop.Individuals {
		before[i] = ind.Luck[0]
	}

	if err := pop.SimulatePeriod(2, 789, StdNormal); err != nil {
		t.Fatalf("SimulatePeriod(2) failed: %v", err)
	}

	for i, ind := range pop.Individuals {
		if ind.Luck[0] != before[i] {
			t.Fatalf("Simulating period 2 rewrote individual %d's period-1 luck", ind.ID)
		}
		if len(ind.Luck) != 2 {
			t.Fatalf("Individual %d has %d luck draws, want 2", ind.ID, len(ind.Luck))
		}
	}

	if pop.Periods() != 2 {
		t.Errorf("Period count %d, want 2", pop.Periods())
	}

	t.Log("✓ Earlier periods stay immutable as new ones are simulated")
}

func TestSimulatePeriod_MatchesConfiguredDistribution(t *testing.T) {
	pop, err := GeneratePopulation(1000, 1234, StdNormal)
	if err != nil {
		t.Fatalf("GeneratePopulation failed: %v", err)
	}
	if err := pop.SimulatePeriod(1, 456, StdNormal); err != nil {
		t.Fatalf("SimulatePeriod(1) failed: %v", err)
	}

	xs := mustValues(t, pop.Individuals, FieldLuck(1))
	AssertMeanNear(t, "luck_1", xs, 0, 0.1)
	AssertStdDevNear(t, "luck_1", xs, 1, 0.15)
}
