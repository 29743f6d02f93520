package models

// Repository is the persistence boundary for drops, claims, profiles and
// roles. Lookup methods return (nil, nil) when no record matches.
type Repository interface {
	// CreateDrop stores a new drop.
	CreateDrop(drop *Drop) error
	// ListDrops returns up to limit drops, most recently created first.
	// limit <= 0 means no limit.
	ListDrops(limit int) ([]*Drop, error)
	// ListDropsWithCoordinates returns drops that can be placed on a map,
	// most recently created first.
	ListDropsWithCoordinates() ([]*Drop, error)
	// GetDropByCode resolves a scanned drop code to a drop.
	GetDropByCode(dropCode string) (*Drop, error)
	// GetDrop returns a drop by its database ID.
	GetDrop(id string) (*Drop, error)

	// InsertClaim stores a new claim. It returns ErrDuplicateClaim when the
	// unique index backing the configured claim policy rejects the row.
	InsertClaim(claim *Claim) error
	// FindClaimByDropAndUser returns the caller's claim on a drop, if any.
	FindClaimByDropAndUser(dropID, userID string) (*Claim, error)
	// FindClaimByDrop returns any claim on a drop regardless of claimant.
	FindClaimByDrop(dropID string) (*Claim, error)
	// GetClaim returns a claim by ID.
	GetClaim(id string) (*Claim, error)
	// ListClaimsForUser returns the account's claims, newest first.
	ListClaimsForUser(userID string) ([]*Claim, error)
	// ListClaims returns up to limit claims across all users, newest first.
	ListClaims(limit int) ([]*Claim, error)
	// UpdateClaim persists changes to an existing claim.
	UpdateClaim(claim *Claim) error

	// GetProfile returns the profile for an account.
	GetProfile(userID string) (*Profile, error)
	// UpsertProfile creates or updates an account's profile.
	UpsertProfile(profile *Profile) error
	// ListProfilesWithWallets returns profiles that have a wallet address set.
	ListProfilesWithWallets() ([]*Profile, error)

	// HasRole reports whether the account has the given role.
	HasRole(userID, role string) (bool, error)

	// Close releases the underlying database connection.
	Close() error
}
