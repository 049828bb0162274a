package main

import (
	"fmt"
	"io"

	"github.com/alexshd/meanlaw"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	verdictStyles = map[meanlaw.Verdict]lipgloss.Style{
		meanlaw.VerdictEffectDetected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		meanlaw.VerdictRegressionOnly: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		meanlaw.VerdictNoDecline:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
)

// printStyledReport renders the same numbers as meanlaw.WriteReport
// with section headers and a colored verdict line. All values come
// straight from the result tables; nothing is recomputed here.
func printStyledReport(w io.Writer, r *meanlaw.ScenarioResult) {
	fmt.Fprintln(w, headerStyle.Render("Population"))
	fmt.Fprintf(w, "  need_1  N %d  mean %.4f  std dev %.4f  min %.4f  median %.4f  max %.4f\n",
		r.PopulationNeed.N, r.PopulationNeed.Mean, r.PopulationNeed.StdDev,
		r.PopulationNeed.Min, r.PopulationNeed.Median, r.PopulationNeed.Max)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Selection (top %.0f%% by need_1, %d members)",
		r.Scenario.TopProportion*100, len(r.Cohort.Members))))
	fmt.Fprintf(w, "  %-12s %12s %12s\n", "field", "population", "cohort")
	for _, f := range []meanlaw.Field{meanlaw.FieldPropensity, meanlaw.FieldLuck(1), meanlaw.FieldNeed(1)} {
		fmt.Fprintf(w, "  %-12s %12.4f %12.4f\n", f, r.PopulationMeans[f], r.CohortMeans[f])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Remeasurement with no intervention"))
	fmt.Fprintf(w, "  cohort need_1     %9.4f\n", r.Regression.CohortBefore)
	fmt.Fprintf(w, "  cohort need_2     %9.4f\n", r.Regression.CohortAfter)
	fmt.Fprintf(w, "  mean change       %9.4f\n", r.Regression.MeanChange)
	fmt.Fprintf(w, "  population need_1 %9.4f\n", r.Regression.PopulationMean)
	fmt.Fprintf(w, "  shrinkage         %9.2f\n", r.Regression.Shrinkage)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Randomized trial (effect %.2f ± %.2f on treatment)",
		r.Scenario.Effect.Mean, r.Scenario.Effect.StdDev)))
	fmt.Fprintf(w, "  %-10s %4s %10s %10s %10s\n", "arm", "n", "before", "adjusted", "change")
	for _, arm := range []meanlaw.ArmSummary{r.Trial.Control, r.Trial.Treatment} {
		fmt.Fprintf(w, "  %-10s %4d %10.4f %10.4f %10.4f\n",
			arm.Arm, arm.N, arm.MeanBefore, arm.MeanAdjusted, arm.MeanChange)
	}
	fmt.Fprintf(w, "  Welch's t-test on change: t %.4f  dof %.1f  p %.4f\n",
		r.Trial.T, r.Trial.DoF, r.Trial.P)

	style, ok := verdictStyles[r.Conclusion.Verdict]
	if !ok {
		style = headerStyle
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n  %s\n",
		headerStyle.Render("Verdict:"),
		style.Render(string(r.Conclusion.Verdict)),
		r.Conclusion.Reason)
}

// printSummary renders a distribution summary as the quantile ladder.
func printSummary(w io.Writer, field string, s meanlaw.Summary) {
	fmt.Fprintln(w, headerStyle.Render(field))
	fmt.Fprintf(w, "  N %d  sum %.6g  mean %.6g  std dev %.6g  variance %.6g\n",
		s.N, s.Sum, s.Mean, s.StdDev, s.Variance)
	for _, row := range []struct {
		label string
		value float64
	}{
		{"min", s.Min}, {"1%", s.P1}, {"5%", s.P5}, {"25%", s.P25},
		{"median", s.Median}, {"75%", s.P75}, {"95%", s.P95},
		{"99%", s.P99}, {"max", s.Max},
	} {
		fmt.Fprintf(w, "  %7s %12.6g\n", row.label, row.value)
	}
}
