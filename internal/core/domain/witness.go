package domain

import "time"

// WitnessStatus tracks a witness's response to a transaction they were named on.
type WitnessStatus string

const (
	WitnessPending      WitnessStatus = "PENDING"
	WitnessAcknowledged WitnessStatus = "ACKNOWLEDGED"
	WitnessDeclined     WitnessStatus = "DECLINED"
	// WitnessModified means the transaction changed after the witness had
	// already acknowledged it, voiding the prior acknowledgement.
	WitnessModified WitnessStatus = "MODIFIED"
)

// Witness links a user to a transaction they were asked to vouch for.
type Witness struct {
	WitnessID      string        `json:"witnessID"`
	TransactionID  string        `json:"transactionID"`
	UserID         string        `json:"userID"`
	Status         WitnessStatus `json:"status"`
	InvitedAt      time.Time     `json:"invitedAt"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
}
