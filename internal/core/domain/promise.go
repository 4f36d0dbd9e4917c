package domain

import "time"

// PromiseStatus tracks whether a personal promise was kept.
type PromiseStatus string

const (
	PromisePending   PromiseStatus = "PENDING"
	PromiseFulfilled PromiseStatus = "FULFILLED"
	PromiseBroken    PromiseStatus = "BROKEN"
)

// PromisePriority orders promises by urgency.
type PromisePriority string

const (
	PriorityLow    PromisePriority = "LOW"
	PriorityMedium PromisePriority = "MEDIUM"
	PriorityHigh   PromisePriority = "HIGH"
)

// Promise is a personal commitment with a due date, tracked alongside the
// ledger for accountability.
type Promise struct {
	PromiseID   string          `json:"promiseID"`
	UserID      string          `json:"userID"` // owner
	Description string          `json:"description"`
	PromiseTo   string          `json:"promiseTo"`
	DueDate     time.Time       `json:"dueDate"`
	Priority    PromisePriority `json:"priority"`
	Status      PromiseStatus   `json:"status"`
	Category    string          `json:"category,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	AuditFields
}
