package domain

import "time"

// Event types
const (
	EventTypeStatementRequested = "statement.requested"
)

// StatementRequested asks the mailer to deliver an account statement.
type StatementRequested struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	EntityID       string    `json:"entity_id"`
	EntityKind     string    `json:"entity_kind"`
	EntityName     string    `json:"entity_name"`
	Email          string    `json:"email"`
	CurrentBalance string    `json:"current_balance"`
	FileName       string    `json:"file_name"`
	Attachment     []byte    `json:"attachment"`
	RequestedAt    time.Time `json:"requested_at"`
}
