package models

import (
	"context"
	"math/big"

	"github.com/ghostcoin/ghostdrop/pkg/geo"
)

// Viewer is the ephemeral context of a drop-list request: who is looking and
// from where. Both fields are optional; absence degrades the filters rather
// than erroring (unknown balance fails closed, unknown position fails open).
type Viewer struct {
	// WalletAddress is the connected wallet, or empty if none.
	WalletAddress string
	// Position is the viewer's location, or nil before permission is granted.
	Position *geo.Point
}

// GhostdropI is the application service behind the HTTP API.
type GhostdropI interface {
	// Start runs the background balance warmer until the process exits.
	Start()

	// VisibleDrops returns the drops the viewer may see, newest first.
	VisibleDrops(ctx context.Context, viewer Viewer) ([]*Drop, error)
	// MappableDrops is VisibleDrops restricted to drops with coordinates.
	MappableDrops(ctx context.Context, viewer Viewer) ([]*Drop, error)
	// CreateDrop creates a drop on behalf of an admin.
	CreateDrop(ctx context.Context, adminID string, draft DropDraft) (*Drop, error)

	// ClaimDrop converts a scanned drop code into a pending claim, or returns
	// one of the claim rejection errors.
	ClaimDrop(ctx context.Context, userID, dropCode string) (*ClaimReceipt, error)
	// ClaimsForUser returns the account's claims, newest first.
	ClaimsForUser(ctx context.Context, userID string) ([]*Claim, error)
	// ListClaims returns recent claims across all users, admin only.
	ListClaims(ctx context.Context, adminID string, limit int) ([]*Claim, error)
	// ResolveClaim transitions a claim to paid or rejected, admin only.
	ResolveClaim(ctx context.Context, adminID, claimID, status, adminNotes string) (*Claim, error)

	// Profile returns the account's profile, creating it on first access.
	Profile(ctx context.Context, userID, email string) (*Profile, error)
	// SetWalletAddress updates the account's payout address.
	SetWalletAddress(ctx context.Context, userID, address string) (*Profile, error)

	// WalletBalance reads the GHOX balance for an address.
	WalletBalance(ctx context.Context, address string) (*big.Int, error)
}
