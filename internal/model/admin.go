package model

import "time"

// Admin roles.  ADMIN may delete reservations, create staff accounts and
// export reports; STAFF runs the front desk.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Admin represents a front desk account as stored in the `admins`
// table.  The json tags are omitted because handlers build their own
// response bodies; the password hash never leaves the repository layer.
//
// Fields:
//
//	ID           - primary key identifier of the account.
//	Username     - unique login name.
//	PasswordHash - bcrypt hashed password.
//	FullName     - display name shown on receipts.
//	Role         - ADMIN or STAFF.
//	CreatedAt    - timestamp of creation.
type Admin struct {
	ID           uint64    // admins.admin_id
	Username     string    // admins.username
	PasswordHash string    // admins.password_hash
	FullName     string    // admins.full_name
	Role         string    // admins.role
	CreatedAt    time.Time // admins.created_at
}

// RefreshToken models an entry in the `admin_refresh_tokens` table.  Only
// the SHA-256 hash of the token is stored.
type RefreshToken struct {
	ID        uint64     // admin_refresh_tokens.id
	AdminID   uint64     // admin_refresh_tokens.admin_id
	TokenHash string     // admin_refresh_tokens.token_hash
	ExpiresAt time.Time  // admin_refresh_tokens.expires_at
	RevokedAt *time.Time // admin_refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // admin_refresh_tokens.created_at
}
