package events

import "time"

const JobCompletedTopic = "fleet.job.lifecycle.v1"

type JobCompletedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	JobID      string    `json:"job_id"`
	ClientID   string    `json:"client_id,omitempty"`
	JobNumber  string    `json:"job_number"`
	OccurredAt time.Time `json:"occurred_at"`
}
