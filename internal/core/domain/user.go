package domain

import "time"

// GroupMaintenanceManager is the distinguished group whose members may write
// any record regardless of workspace role, same as staff.
const GroupMaintenanceManager = "maintenance_manager"

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsStaff      bool   `json:"isStaff" db:"is_staff"`           // Global elevated privilege, bypasses workspace checks
	IsSuperuser  bool   `json:"isSuperuser" db:"is_superuser"`   // Full administrative access
	Groups       []string `json:"groups,omitempty" db:"-"`       // Named capability groups, loaded separately

	// Refresh token state, never serialized.
	RefreshTokenHash       *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// InGroup reports whether the user belongs to the named group.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g == name {
			return true
		}
	}
	return false
}

// GoogleUserInfo holds the profile fields we consume from Google's userinfo
// endpoint or a validated ID token.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
