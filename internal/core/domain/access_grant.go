package domain

// AccessGrantStatus tracks the lifecycle of a read-only ledger share.
type AccessGrantStatus string

const (
	GrantPending AccessGrantStatus = "PENDING"
	GrantActive  AccessGrantStatus = "ACTIVE"
	GrantRevoked AccessGrantStatus = "REVOKED"
)

// AccessGrant lets an owner share a read-only view of their ledger with
// another user. The grantee is identified by email at grant time and bound to
// a concrete user ID once they accept with the invitation token. Revoking a
// grant closes the view without deleting the record.
type AccessGrant struct {
	GrantID      string            `json:"grantID"`
	OwnerID      string            `json:"ownerID"`
	GranteeEmail string            `json:"granteeEmail"`
	GranteeID    string            `json:"granteeID,omitempty"` // set on accept
	Token        string            `json:"-"`                   // invitation token, never serialized
	Status       AccessGrantStatus `json:"status"`
	AuditFields
}

// SharedData is the read-only view a grantee sees through an active grant.
type SharedData struct {
	Owner        User          `json:"owner"`
	Transactions []Transaction `json:"transactions"`
	Promises     []Promise     `json:"promises"`
}
