package shift

const (
	StatusDraft     = "DRAFT"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// allowedTransitions is the shift state machine. COMPLETED and CANCELLED
// have no outgoing edges.
var allowedTransitions = map[string][]string{
	StatusDraft:  {StatusActive, StatusCancelled},
	StatusActive: {StatusCompleted, StatusCancelled},
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func IsAllowedTransition(current, target string) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}
