package workflow

// Navigation is the guard's verdict for a requested step position.
type Navigation struct {
	Position   int
	Redirected bool
	Notice     string
}

const (
	noticeCompleteInOrder = "complete the application steps in order"
	noticeStepOneReserved = "the first step is only available when creating an application"
)

// Guard evaluates a requested 1-based step position against the
// last-completed-step watermark and the effective workflow length.
// requested = 0 means the position was absent and the issuer resumes at the
// highest reachable step.
//
// Rules, in order:
//   - step 1 belongs to the creation flow; viewing it in the edit flow
//     redirects to step 2;
//   - positions past lastCompleted+1 redirect to min(lastCompleted+1, length);
//   - positions within the watermark but past the current workflow length
//     stay allowed, so previously completed steps remain reviewable after
//     the workflow shrinks;
//   - positions below 1 are treated like overshoots.
func Guard(requested, lastCompleted, workflowLen int) Navigation {
	maxAllowed := lastCompleted + 1

	if requested == 0 {
		return Navigation{Position: clampLow(min(maxAllowed, workflowLen)), Redirected: true}
	}
	if requested == 1 {
		return Navigation{Position: 2, Redirected: true, Notice: noticeStepOneReserved}
	}
	if requested < 1 {
		return Navigation{Position: clampLow(min(maxAllowed, workflowLen)), Redirected: true, Notice: noticeCompleteInOrder}
	}
	if requested > maxAllowed {
		return Navigation{Position: clampLow(min(maxAllowed, workflowLen)), Redirected: true, Notice: noticeCompleteInOrder}
	}
	// requested <= maxAllowed: allowed even when it exceeds the current
	// workflow length (the workflow shrank after the step was completed).
	return Navigation{Position: requested}
}

// clampLow keeps redirect targets out of the creation-only first step.
func clampLow(position int) int {
	if position < 2 {
		return 2
	}
	return position
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
