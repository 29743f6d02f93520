package models

import "errors"

// Claim rejection taxonomy. Every rejection is terminal for a single scan
// attempt and is surfaced to the user as a message; none are fatal.
var (
	// ErrInvalidDropCode means the scanned code resolves to no drop.
	ErrInvalidDropCode = errors.New("drop code does not match any drop")
	// ErrDropExpired means the drop lapsed before the scan.
	ErrDropExpired = errors.New("drop has expired")
	// ErrDuplicateClaim means the claim policy already has a winner for this
	// scan (same user under per_user, anyone under first_wins).
	ErrDuplicateClaim = errors.New("drop already claimed")
	// ErrWalletMissing means a claim cannot be paid out because no wallet
	// address is attached to it or to the claimant's profile.
	ErrWalletMissing = errors.New("no wallet address set")
	// ErrForbidden means the caller lacks the admin role.
	ErrForbidden = errors.New("admin role required")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
