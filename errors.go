package meanlaw

import "errors"

// Sentinel errors for the three failure classes of the pipeline.
// Every error returned by this package wraps exactly one of them,
// so callers can classify with errors.Is and read the detail from
// the wrapped message.
var (
	// ErrInvalidConfiguration covers parameters rejected at the call
	// that receives them: non-positive population size, a selection
	// proportion outside (0, 1], an allocation probability outside
	// (0, 1), a negative standard deviation, an unknown aggregation
	// field. Never deferred to a later stage.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInsufficientSample marks a comparison that cannot run:
	// fewer than 2 members in a trial arm, or too few values to
	// describe a distribution. Surfaced as a structured failure so
	// callers can tell "no effect detected" from "test could not run".
	ErrInsufficientSample = errors.New("insufficient sample size")

	// ErrOrderingViolation marks an attempt to consult data that does
	// not exist yet: selecting on an unsimulated period, simulating
	// periods out of order or twice, or running the trial before the
	// follow-up period. Rejected rather than computing on undefined
	// values.
	ErrOrderingViolation = errors.New("pipeline ordering violation")
)
