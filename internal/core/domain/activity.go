package domain

import "time"

// Activity actions recorded by the audit pipeline.
const (
	ActionRegister    = "register"
	ActionLogin       = "login"
	ActionBookCreated = "book_created"
	ActionBookUpdated = "book_updated"
	ActionBookDeleted = "book_deleted"
)

// Activity is a single audit-trail entry.
type Activity struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
