package job

const (
	StatusDraft     = "DRAFT"
	StatusAssigned  = "ASSIGNED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

var allowedTransitions = map[string][]string{
	StatusDraft:    {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusCompleted, StatusCancelled},
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func IsAllowedTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
