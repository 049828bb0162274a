package meanlaw

import (
	"math"
	"testing"

	"github.com/aclements/go-moremath/stats"
)

// AssertMeanNear verifies the sample mean of xs is within tol of want.
//
// Useful for checking that a seeded draw recovers its configured
// distribution, e.g. standard normal propensity over a large
// population.
func AssertMeanNear(t *testing.T, label string, xs []float64, want, tol float64) {
	t.Helper()

	mean := stats.Mean(xs)
	if math.Abs(mean-want) > tol {
		t.Errorf("%s mean off: got %.4f, want %.4f ± %.4f\n"+
			"Check the seed and distribution parameters.",
			label, mean, want, tol)
	}

	t.Logf("✓ %s mean = %.4f (want %.4f ± %.4f)", label, mean, want, tol)
}

// AssertStdDevNear verifies the sample standard deviation of xs is
// within tol of want.
func AssertStdDevNear(t *testing.T, label string, xs []float64, want, tol float64) {
	t.Helper()

	sd := stats.StdDev(xs)
	if math.Abs(sd-want) > tol {
		t.Errorf("%s std dev off: got %.4f, want %.4f ± %.4f\n"+
			"Check the seed and distribution parameters.",
			label, sd, want, tol)
	}

	t.Logf("✓ %s std dev = %.4f (want %.4f ± %.4f)", label, sd, want, tol)
}

// AssertRegressionToMean verifies the selected cohort fell back toward
// the population mean with no intervention applied.
//
// Mathematical property:
//
//	mean(need_after) < mean(need_before)
//	|mean(need_after) - popmean| < |mean(need_before) - popmean|
func AssertRegressionToMean(t *testing.T, reg RegressionSummary) {
	t.Helper()

	if reg.CohortAfter >= reg.CohortBefore {
		t.Errorf("no decline: cohort mean need %.4f → %.4f\n"+
			"A cohort selected for extreme need must fall back on remeasurement.",
			reg.CohortBefore, reg.CohortAfter)
	}

	gapBefore := math.Abs(reg.CohortBefore - reg.PopulationMean)
	gapAfter := math.Abs(reg.CohortAfter - reg.PopulationMean)
	if gapAfter >= gapBefore {
		t.Errorf("no movement toward the mean: gap %.4f → %.4f (population %.4f)",
			gapBefore, gapAfter, reg.PopulationMean)
	}

	t.Logf("✓ Regression to the mean: %.4f → %.4f (population %.4f, shrinkage %.2f)",
		reg.CohortBefore, reg.CohortAfter, reg.PopulationMean, reg.Shrinkage)
}

// AssertBalancedArms verifies random assignment did not correlate with
// propensity: the arms' mean propensities differ by at most tol.
//
// A correlation here would mean selection bias leaked into the
// allocation and the trial comparison is invalid.
func AssertBalancedArms(t *testing.T, trial *TrialResult, tol float64) {
	t.Helper()

	var control, treatment []float64
	for _, m := range trial.Members {
		if m.Arm == Treatment {
			treatment = append(treatment, m.Propensity)
		} else {
			control = append(control, m.Propensity)
		}
	}

	gap := math.Abs(stats.Mean(control) - stats.Mean(treatment))
	if gap > tol {
		t.Errorf("arms unbalanced on propensity: control %.4f vs treatment %.4f, gap %.4f (max %.4f)\n"+
			"Assignment must be independent of propensity; check that the assignment stream is seeded separately.",
			stats.Mean(control), stats.Mean(treatment), gap, tol)
	}

	t.Logf("✓ Balanced arms: propensity gap %.4f (tolerance %.4f, control n=%d, treatment n=%d)",
		gap, tol, len(control), len(treatment))
}

// AssertEffectDetected verifies the trial's two-sided p-value fell
// below alpha.
func AssertEffectDetected(t *testing.T, trial *TrialResult, alpha float64) {
	t.Helper()

	if trial.P >= alpha {
		t.Errorf("effect not detected: p %.4f ≥ %.2f (t %.3f, dof %.1f)\n"+
			"Increase the effect size or the cohort, or the artifact swamps the signal.",
			trial.P, alpha, trial.T, trial.DoF)
	}

	t.Logf("✓ Effect detected: t = %.3f, p = %.4f < %.2f", trial.T, trial.P, alpha)
}

// AssertNoEffect verifies the trial did NOT report significance, the
// expected outcome when the configured effect is zero.
func AssertNoEffect(t *testing.T, trial *TrialResult, alpha float64) {
	t.Helper()

	if trial.P < alpha {
		t.Errorf("spurious effect: p %.4f < %.2f with no real effect configured\n"+
			"Either a rare draw or the assignment correlated with outcomes.",
			trial.P, alpha)
	}

	t.Logf("✓ No spurious effect: p = %.4f ≥ %.2f", trial.P, alpha)
}

// AssertDemonstration runs the standard checks on a completed run: the
// artifact appears in the untouched remeasurement, the arms are
// balanced, and the configured effect separates from the artifact.
func AssertDemonstration(t *testing.T, r *ScenarioResult, propensityTol float64) {
	t.Helper()

	t.Run("RegressionToMean", func(t *testing.T) {
		AssertRegressionToMean(t, r.Regression)
	})

	t.Run("BalancedArms", func(t *testing.T) {
		AssertBalancedArms(t, r.Trial, propensityTol)
	})

	t.Run("Verdict", func(t *testing.T) {
		if r.Conclusion.Verdict == VerdictNoDecline {
			t.Errorf("verdict %s: the demonstration did not produce the artifact", r.Conclusion.Verdict)
		}
		t.Logf("✓ Verdict: %s", r.Conclusion.Verdict)
	})
}
