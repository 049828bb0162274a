package meanlaw

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/aclements/go-moremath/stats"
)

// Arm labels one side of the randomized split.
type Arm string

const (
	Control   Arm = "control"
	Treatment Arm = "treatment"
)

// TrialConfig controls the randomized trial.
//
// AllocationProb is the probability a member is assigned to treatment.
// Effect is the per-individual treatment effect distribution: each
// treatment member gets their own draw, subtracted from the follow-up
// need, representing an average benefit with individual variation.
// Assignment and effect use separate seeds so allocation stays
// independent of every outcome draw.
type TrialConfig struct {
	AllocationProb float64 `yaml:"allocation_prob" json:"allocation_prob"`
	Effect         Normal  `yaml:"effect" json:"effect"`
	AssignmentSeed int64   `yaml:"assignment_seed" json:"assignment_seed"`
	EffectSeed     int64   `yaml:"effect_seed" json:"effect_seed"`
}

// DefaultTrialConfig returns a 50/50 allocation with a moderate
// positive effect, Normal{0.4, 0.2}.
func DefaultTrialConfig() TrialConfig {
	return TrialConfig{
		AllocationProb: 0.5,
		Effect:         Normal{Mean: 0.4, StdDev: 0.2},
		AssignmentSeed: 42,
		EffectSeed:     43,
	}
}

// Validate rejects an allocation probability outside (0, 1) and an
// invalid effect distribution. A probability of 0 or 1 would leave one
// arm structurally empty, so it is a configuration error, not a sample
// size problem.
func (cfg TrialConfig) Validate() error {
	if cfg.AllocationProb <= 0 || cfg.AllocationProb >= 1 {
		return fmt.Errorf("%w: allocation probability must be in (0, 1), got %g",
			ErrInvalidConfiguration, cfg.AllocationProb)
	}
	if err := cfg.Effect.Validate(); err != nil {
		return fmt.Errorf("effect distribution: %w", err)
	}
	return nil
}

// TrialMember is one cohort member's record in the trial.
type TrialMember struct {
	ID         int     `json:"id"`
	Arm        Arm     `json:"arm"`
	Propensity float64 `json:"propensity"`
	NeedBefore float64 `json:"need_before"` // need in the selection period
	NeedAfter  float64 `json:"need_after"`  // raw follow-up need, no effect applied
	Effect     float64 `json:"effect"`      // drawn treatment effect, 0 for control
	Adjusted   float64 `json:"adjusted"`    // NeedAfter - Effect
	Change     float64 `json:"change"`      // Adjusted - NeedBefore
}

// ArmSummary aggregates one arm.
type ArmSummary struct {
	Arm          Arm     `json:"arm"`
	N            int     `json:"n"`
	MeanBefore   float64 `json:"mean_before"`
	MeanAdjusted float64 `json:"mean_adjusted"`
	MeanChange   float64 `json:"mean_change"`
}

// TrialResult holds the per-member records, the per-arm summaries, and
// Welch's t-test on the per-individual change between arms.
//
// Interpretation:
//   - Both arms regress (negative mean change) because both were
//     selected for extreme need_1.
//   - The treatment arm's extra change beyond the control arm's is the
//     effect; P is the two-sided probability of a gap that large under
//     no effect.
type TrialResult struct {
	Members   []TrialMember `json:"members"`
	Control   ArmSummary    `json:"control"`
	Treatment ArmSummary    `json:"treatment"`
	T         float64       `json:"t"`
	DoF       float64       `json:"dof"`
	P         float64       `json:"p"`
}

// RunTrial randomly splits the cohort into control and treatment,
// applies a per-individual effect draw to the treatment arm's
// follow-up need, and compares the per-individual change between arms
// with Welch's t-test.
//
// Assignment happens strictly after selection (it takes the cohort)
// and strictly before any adjusted-outcome computation. The trial is
// single-shot and pure: it never writes back to the cohort or the
// population, so the same cohort can host trials under different
// configurations.
func RunTrial(c *Cohort, cfg TrialConfig) (*TrialResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	followUp := c.Period + 1
	for _, ind := range c.Members {
		if len(ind.Luck) < followUp {
			return nil, fmt.Errorf("%w: trial needs period %d simulated for the follow-up outcome",
				ErrOrderingViolation, followUp)
		}
	}

	assign := rand.New(rand.NewSource(cfg.AssignmentSeed))
	drawEffect := cfg.Effect.rand(rand.New(rand.NewSource(cfg.EffectSeed)))

	members := make([]TrialMember, len(c.Members))
	var controlChange, treatmentChange []float64
	for i, ind := range c.Members {
		m := TrialMember{
			ID:         ind.ID,
			Arm:        Control,
			Propensity: ind.Propensity,
			NeedBefore: ind.Need(c.Period),
			NeedAfter:  ind.Need(followUp),
		}
		if assign.Float64() < cfg.AllocationProb {
			m.Arm = Treatment
			m.Effect = drawEffect()
		}
		m.Adjusted = m.NeedAfter - m.Effect
		m.Change = m.Adjusted - m.NeedBefore

		members[i] = m
		if m.Arm == Treatment {
			treatmentChange = append(treatmentChange, m.Change)
		} else {
			controlChange = append(controlChange, m.Change)
		}
	}

	if len(controlChange) < 2 || len(treatmentChange) < 2 {
		return nil, fmt.Errorf("%w: control arm has %d, treatment arm has %d, need 2 each for the t-test",
			ErrInsufficientSample, len(controlChange), len(treatmentChange))
	}

	test, err := stats.TwoSampleWelchTTest(
		stats.Sample{Xs: controlChange},
		stats.Sample{Xs: treatmentChange},
		stats.LocationDiffers,
	)
	if err != nil {
		if errors.Is(err, stats.ErrSampleSize) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientSample, err)
		}
		return nil, fmt.Errorf("welch t-test: %w", err)
	}

	return &TrialResult{
		Members:   members,
		Control:   summarizeArm(Control, members),
		Treatment: summarizeArm(Treatment, members),
		T:         test.T,
		DoF:       test.DoF,
		P:         test.P,
	}, nil
}

// summarizeArm aggregates the members of one arm.
func summarizeArm(arm Arm, members []TrialMember) ArmSummary {
	var before, adjusted, change []float64
	for _, m := range members {
		if m.Arm != arm {
			continue
		}
		before = append(before, m.NeedBefore)
		adjusted = append(adjusted, m.Adjusted)
		change = append(change, m.Change)
	}

	return ArmSummary{
		Arm:          arm,
		N:            len(before),
		MeanBefore:   stats.Mean(before),
		MeanAdjusted: stats.Mean(adjusted),
		MeanChange:   stats.Mean(change),
	}
}
