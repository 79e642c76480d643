// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCollectedEvent is published after a payment row commits. It carries
// enough for downstream audit and analytics without querying the database.
type PaymentCollectedEvent struct {
	PaymentCode string  `json:"payment_code"`
	VisitCode   string  `json:"visit_code,omitempty"`
	Kind        string  `json:"kind"` // CHECKIN, EXTENSION, SALE
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PaidAt      string  `json:"paid_at"`
}
