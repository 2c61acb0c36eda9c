package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusLocked   UserStatus = "locked"
)

// User is a staff or patient account. Roles are the coarse legacy grants
// (ROLE_ADMIN bypasses all permission checks); Permissions are the
// fine-grained grants evaluated by the authz resolver.
type User struct {
	Base
	ClinicID         uuid.UUID      `db:"clinic_id" json:"clinic_id"`
	Email            string         `db:"email" json:"email"`
	PasswordHash     string         `db:"password_hash" json:"-"`
	FirstName        string         `db:"first_name" json:"first_name"`
	LastName         string         `db:"last_name" json:"last_name"`
	Phone            string         `db:"phone" json:"phone,omitempty"`
	Status           UserStatus     `db:"status" json:"status"`
	Roles            pq.StringArray `db:"roles" json:"roles"`
	Permissions      pq.StringArray `db:"permissions" json:"permissions"`
	LoginAttempts    int            `db:"login_attempts" json:"-"`
	LastLoginAttempt time.Time      `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time     `db:"last_login_at" json:"last_login_at,omitempty"`
}

// Grants returns the combined flat set the authorization resolver checks
// against: permissions and roles share one namespace.
func (u *User) Grants() []string {
	grants := make([]string, 0, len(u.Permissions)+len(u.Roles))
	grants = append(grants, u.Permissions...)
	grants = append(grants, u.Roles...)
	return grants
}

// AccessProfile is the session view of a user's grants, served to clients
// once per session and cached in-process.
type AccessProfile struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}
