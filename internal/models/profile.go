package models

const (
	// RoleAdmin grants access to drop creation and claim resolution.
	RoleAdmin = "admin"
	// RoleUser is the default role for every account.
	RoleUser = "user"
)

// Profile holds the per-account metadata. One profile per authenticated account.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID string `json:"id" gorm:"column:id;primaryKey"`
	// UserID is the account the profile belongs to.
	UserID string `json:"user_id" gorm:"column:user_id;unique;not null"`
	// Email is the account's email address.
	Email string `json:"email" gorm:"column:email;not null"`
	// WalletAddress is the user-editable payout address. Empty until set.
	WalletAddress string `json:"wallet_address" gorm:"column:wallet_address"`
	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64 `json:"created_at" gorm:"column:created_at"`
	// UpdatedAt is the Unix timestamp when the profile was last updated.
	UpdatedAt int64 `json:"updated_at" gorm:"column:updated_at"`
}

// UserRole assigns a role to an account. Authorization checks look the role
// up server-side; clients never carry it.
type UserRole struct {
	// ID is the unique identifier for the role assignment.
	ID int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the account the role is assigned to.
	UserID string `json:"user_id" gorm:"column:user_id;not null;index"`
	// Role is the assigned role (admin or user).
	Role string `json:"role" gorm:"column:role;not null;default:user"`
	// CreatedAt is the Unix timestamp when the role was assigned.
	CreatedAt int64 `json:"created_at" gorm:"column:created_at"`
}
