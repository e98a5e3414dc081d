package events

import "time"

const InvoiceIssuedTopic = "fleet.invoice.lifecycle.v1"

type InvoiceIssuedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	InvoiceID   string    `json:"invoice_id"`
	JobID       string    `json:"job_id"`
	ClientID    string    `json:"client_id"`
	Number      string    `json:"number"`
	Currency    string    `json:"currency"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}
