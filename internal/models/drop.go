package models

// Drop represents a location-anchored, time-bounded reward opportunity.
// The QR code placed in the world carries DropCode, never the database ID.
type Drop struct {
	// ID is the unique identifier for the drop.
	ID string `json:"id" gorm:"column:id;primaryKey"`
	// DropCode is the user-facing token embedded in the physical QR code.
	DropCode string `json:"drop_code" gorm:"column:drop_code;unique;not null;index"`
	// Title is the display name of the drop.
	Title string `json:"title" gorm:"column:title;not null"`
	// Description is an optional display description.
	Description string `json:"description" gorm:"column:description"`
	// Prize is an optional description of the reward.
	Prize string `json:"prize" gorm:"column:prize"`
	// Latitude is the optional latitude of the drop. A drop without
	// coordinates is omitted from map views but still claimable by scan.
	Latitude *float64 `json:"latitude" gorm:"column:latitude"`
	// Longitude is the optional longitude of the drop.
	Longitude *float64 `json:"longitude" gorm:"column:longitude"`
	// ExpiresAt is the Unix timestamp after which the drop can no longer be
	// claimed. Zero means the drop never expires.
	ExpiresAt int64 `json:"expires_at" gorm:"column:expires_at"`
	// MinTokenRequired is the minimum GHOX balance (in whole tokens) a
	// viewer's wallet must hold to see or claim this drop. Zero means no gate.
	MinTokenRequired int64 `json:"min_token_required" gorm:"column:min_token_required;default:0"`
	// CreatedBy is the account that created the drop.
	CreatedBy string `json:"created_by" gorm:"column:created_by;not null"`
	// CreatedAt is the Unix timestamp when the drop was created.
	CreatedAt int64 `json:"created_at" gorm:"column:created_at;index"`
	// UpdatedAt is the Unix timestamp when the drop was last updated.
	UpdatedAt int64 `json:"updated_at" gorm:"column:updated_at"`
}

// HasCoordinates reports whether the drop can be placed on a map.
func (d *Drop) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// Expired reports whether the drop lapsed before the given Unix timestamp.
// Expired drops stay visible in lists; expiry only blocks new claims.
func (d *Drop) Expired(now int64) bool {
	return d.ExpiresAt != 0 && d.ExpiresAt < now
}

// DropDraft carries the admin-supplied fields for creating a new drop.
// DropCode, ID and provenance are assigned by the server.
type DropDraft struct {
	Title            string
	Description      string
	Prize            string
	Latitude         *float64
	Longitude        *float64
	ExpiresAt        int64
	MinTokenRequired int64
}
