package models

import "fmt"

const (
	// ClaimStatusPending is the status of a freshly created claim awaiting
	// admin adjudication.
	ClaimStatusPending = "pending"
	// ClaimStatusPaid marks a claim whose prize has been fulfilled.
	ClaimStatusPaid = "paid"
	// ClaimStatusRejected marks a claim an admin turned down.
	ClaimStatusRejected = "rejected"
)

// Claim represents one account's record of having redeemed a Drop.
// Claims are never deleted; they move from pending to paid or rejected.
type Claim struct {
	// ID is the unique identifier for the claim.
	ID string `json:"id" gorm:"column:id;primaryKey"`
	// DropID references the claimed drop.
	DropID string `json:"drop_id" gorm:"column:drop_id;not null;index"`
	// UserID is the account that made the claim.
	UserID string `json:"user_id" gorm:"column:user_id;not null;index"`
	// WalletAddress is the payout address recorded at claim time. It may be
	// empty if the claimant had no wallet set; it must be filled before the
	// claim can transition to paid.
	WalletAddress string `json:"wallet_address" gorm:"column:wallet_address"`
	// Status is one of pending, paid or rejected.
	Status string `json:"status" gorm:"column:status;not null;default:pending;index"`
	// ClaimedAt is the Unix timestamp when the claim was created.
	ClaimedAt int64 `json:"claimed_at" gorm:"column:claimed_at;index"`
	// AdminNotes is optional free text attached by the resolving admin.
	AdminNotes string `json:"admin_notes" gorm:"column:admin_notes"`
	// UpdatedAt is the Unix timestamp when the claim was last updated.
	UpdatedAt int64 `json:"updated_at" gorm:"column:updated_at"`
}

// ValidClaimStatus reports whether s is a status an admin may set.
func ValidClaimStatus(s string) bool {
	return s == ClaimStatusPaid || s == ClaimStatusRejected
}

// ClaimReceipt pairs a freshly created claim with the drop it redeemed, so
// callers can show the drop title and prize without a second lookup.
type ClaimReceipt struct {
	Claim *Claim `json:"claim"`
	Drop  *Drop  `json:"drop"`
}

// ClaimPolicy selects the winner policy for a drop.
type ClaimPolicy string

const (
	// PolicyPerUser allows at most one claim per (drop, user) pair.
	PolicyPerUser ClaimPolicy = "per_user"
	// PolicyFirstWins allows at most one claim per drop regardless of claimant.
	PolicyFirstWins ClaimPolicy = "first_wins"
)

// ParseClaimPolicy parses a claim policy from its configuration string.
func ParseClaimPolicy(s string) (ClaimPolicy, error) {
	switch ClaimPolicy(s) {
	case PolicyPerUser, PolicyFirstWins:
		return ClaimPolicy(s), nil
	}
	return "", fmt.Errorf("unknown claim policy %q (want %q or %q)", s, PolicyPerUser, PolicyFirstWins)
}
