package domain

// User is an account holder. Authentication is handled outside this service;
// users exist here so contacts, transactions and witness records have a stable
// identity to reference.
type User struct {
	UserID      string `json:"userID"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AuditFields
}
