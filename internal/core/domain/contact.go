package domain

// Contact is a named counterparty in a user's personal ledger. Transactions
// and balances always hang off a contact.
type Contact struct {
	ContactID   string `json:"contactID"`
	UserID      string `json:"userID"` // owner
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AuditFields
}
