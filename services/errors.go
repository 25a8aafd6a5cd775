package services

import "fmt"

// PreconditionError marks a submission rejected before any transaction
// was opened (ownership or payload guard failures). Surfaced as a 4xx.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// InvalidTransitionError names the rejected from->to pair of a booking
// status update. Surfaced as a 4xx.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}

// Submission failure stages.
const (
	FailureStagePrecondition = "precondition"
	FailureStageTransaction  = "transaction"
)

// SubmissionFailure is returned by Submit on any failure path. The failure
// export has already been built by then, so callers can always hand the
// operator a downloadable artifact of what was attempted.
type SubmissionFailure struct {
	Stage      string
	Reason     string
	ExportPath string
	Err        error
}

func (e *SubmissionFailure) Error() string {
	return fmt.Sprintf("booking submission failed (%s): %s", e.Stage, e.Reason)
}

func (e *SubmissionFailure) Unwrap() error {
	return e.Err
}
