// Package meanlaw simulates regression to the mean and separates it from
// real intervention effects.
//
// # Overview
//
// meanlaw demonstrates the statistical artifact that makes ineffective
// programs look effective: select a group because it measured extreme, and
// on remeasurement the group drifts back toward the population mean with no
// intervention at all. The package builds synthetic populations, selects
// extreme cohorts, quantifies the artifact, and runs randomized trials that
// distinguish a real effect from the drift.
//
// # The Model
//
// Every individual has a stable propensity and per-period luck, both drawn
// from configurable normal distributions:
//
//	need_k = propensity + luck_k
//
// Propensity persists across periods. Luck is redrawn independently each
// period. Selecting on need_1 therefore selects for high propensity AND
// high luck_1; only the propensity component carries into need_2, so the
// cohort's mean falls even though nothing was done to it.
//
// # The Pipeline
//
// A full demonstration runs five stages in order:
//
//   - GeneratePopulation - draw propensities for N individuals
//   - SimulatePeriod     - append one luck draw per individual (repeat per period)
//   - SelectTop          - rank by need in a period, keep the top fraction
//   - CalculateRegression - remeasure the cohort with no intervention
//   - RunTrial           - split the cohort into randomized arms, apply the
//     configured effect to the treatment arm, and run Welch's t-test on the
//     per-individual change
//
// # Quick Start
//
// Run the packaged demonstration:
//
//	result, err := meanlaw.DefaultScenario().Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("cohort need: %.3f → %.3f (population %.3f)\n",
//	    result.Regression.CohortBefore,
//	    result.Regression.CohortAfter,
//	    result.Regression.PopulationMean)
//	fmt.Printf("trial: t = %.3f, p = %.4f\n", result.Trial.T, result.Trial.P)
//	fmt.Println(result.Conclusion.Verdict)
//
// Or drive the stages directly:
//
//	pop, _ := meanlaw.GeneratePopulation(1000, 1234, meanlaw.StdNormal)
//	pop.SimulatePeriod(1, 456, meanlaw.StdNormal)
//	pop.SimulatePeriod(2, 789, meanlaw.StdNormal)
//
//	cohort, _ := pop.SelectTop(1, 0.10)
//	reg, _ := meanlaw.CalculateRegression(pop, cohort, 2)
//
// # Shrinkage
//
// CalculateRegression reports shrinkage, the fraction of the cohort's
// excess over the population mean that vanished on remeasurement:
//
//	shrinkage = (before - after) / (before - popmean)
//
// Interpretation for need = propensity + luck with equal unit variances:
//
//   - ≈ 0.0: no regression (selection found pure propensity)
//   - ≈ 0.5: the theoretical value when propensity and luck contribute equally
//   - ≈ 1.0: total regression (selection found pure luck)
//
// # Randomized Trials
//
// Remeasurement alone cannot distinguish a program that works from the
// artifact: the cohort improves either way. RunTrial assigns each cohort
// member to control or treatment by an independent coin flip, subtracts the
// configured effect from treatment outcomes, and compares the
// per-individual change between arms with Welch's t-test. The artifact hits
// both arms equally, so any significant difference is the effect:
//
//	trial, err := meanlaw.RunTrial(cohort, meanlaw.DefaultTrialConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if trial.P < 0.05 {
//	    // Real effect, beyond regression to the mean.
//	}
//
// # Reproducibility
//
// Every random draw is seeded explicitly: one seed for propensities, one
// per luck period, one for arm assignment, one for effect sizes. Identical
// seeds and parameters give bit-identical populations, cohorts, and
// t-statistics across runs and platforms. Changing one seed perturbs only
// its own stream; period-1 luck is untouched by a different period-2 seed.
//
// # Testing
//
// Use assertions to validate statistical properties:
//
//	func TestMyScenario(t *testing.T) {
//	    result, err := scenario.Run()
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    // Assert the cohort fell back toward the population mean
//	    meanlaw.AssertRegressionToMean(t, result.Regression)
//
//	    // Assert randomization did not correlate with propensity
//	    meanlaw.AssertBalancedArms(t, result.Trial, 0.3)
//
//	    // Assert the configured effect separates from the artifact
//	    meanlaw.AssertEffectDetected(t, result.Trial, 0.05)
//	}
//
// # Philosophy
//
// Before/after comparisons answer: "Did the group improve?"
// meanlaw answers: "Would the group have improved anyway?"
//
// - The most extreme measurements are partly luck, and luck does not repeat.
// - Selecting on an extreme guarantees improvement on remeasurement.
// - Only a concurrent randomized control separates a program from the artifact.
//
// This shifts evaluation from "the numbers went down" to "the numbers went
// down more than regression alone predicts".
//
// # See Also
//
//   - examples/risk-program/ - before/after fallacy vs. randomized trial
//   - cmd/meanlaw/ - CLI for running scenarios from YAML
package meanlaw
