package invoice

const (
	StatusDraft     = "DRAFT"
	StatusIssued    = "ISSUED"
	StatusCancelled = "CANCELLED"
)

var allowedTransitions = map[string][]string{
	StatusDraft:  {StatusIssued, StatusCancelled},
	StatusIssued: {StatusCancelled},
}

func IsTerminal(status string) bool {
	return status == StatusCancelled
}

func IsAllowedTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
