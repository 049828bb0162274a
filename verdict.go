package meanlaw

import "fmt"

// Verdict classifies what a completed run demonstrated.
type Verdict string

const (
	// VerdictEffectDetected: the arms differ beyond the regression
	// artifact, two-sided p below alpha.
	VerdictEffectDetected Verdict = "EFFECT_DETECTED"

	// VerdictRegressionOnly: the cohort's need fell on remeasurement
	// but the arms do not differ. The decline is regression to the
	// mean, not the intervention.
	VerdictRegressionOnly Verdict = "REGRESSION_ONLY"

	// VerdictNoDecline: the selected cohort did not fall back toward
	// the population mean. With honest selection on a noisy outcome
	// this should not happen; check the scenario parameters.
	VerdictNoDecline Verdict = "NO_DECLINE"
)

// Conclusion is the threshold interpretation of a completed run.
type Conclusion struct {
	Verdict Verdict `json:"verdict"`
	Alpha   float64 `json:"alpha"`
	P       float64 `json:"p"`
	Reason  string  `json:"reason"`
}

// Conclude classifies a completed run against a significance
// threshold. Pure comparisons, no randomness: the same result always
// concludes the same way.
func Conclude(r *ScenarioResult, alpha float64) Conclusion {
	c := Conclusion{Alpha: alpha}
	if r.Trial != nil {
		c.P = r.Trial.P
	}

	switch {
	case r.Trial != nil && r.Trial.P < alpha:
		c.Verdict = VerdictEffectDetected
		c.Reason = fmt.Sprintf(
			"treatment changed %.3f vs %.3f for control (p %.4f < %.2f); the gap exceeds what regression alone produces",
			r.Trial.Treatment.MeanChange, r.Trial.Control.MeanChange, r.Trial.P, alpha)
	case r.Regression.CohortAfter < r.Regression.CohortBefore:
		c.Verdict = VerdictRegressionOnly
		c.Reason = fmt.Sprintf(
			"cohort mean need fell %.3f → %.3f (shrinkage %.2f) but the arms do not differ (p %.4f ≥ %.2f); the decline is regression to the mean",
			r.Regression.CohortBefore, r.Regression.CohortAfter, r.Regression.Shrinkage, c.P, alpha)
	default:
		c.Verdict = VerdictNoDecline
		c.Reason = fmt.Sprintf(
			"cohort mean need moved %.3f → %.3f; nothing to attribute",
			r.Regression.CohortBefore, r.Regression.CohortAfter)
	}

	return c
}
