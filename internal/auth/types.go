package auth

import (
	"errors"
	"time"
)

// Role represents an authorization tier. There are exactly two: admin
// accounts can register new users, regular users can only read host data.
type Role string

const (
	// RoleAdmin can register new accounts in addition to everything
	// RoleUser can do.
	RoleAdmin Role = "admin"

	// RoleUser can authenticate and query host data, nothing more.
	RoleUser Role = "user"
)

// roleFromFlag converts the stored boolean admin flag to a Role.
// Storage keeps the flag; domain logic only ever sees the Role.
func roleFromFlag(admin bool) Role {
	if admin {
		return RoleAdmin
	}
	return RoleUser
}

// flag converts a Role back to its storage representation.
func (r Role) flag() bool {
	return r == RoleAdmin
}

// Fingerprint carries the client-supplied risk signals presented with
// every request. Only DeviceID is ever persisted (embedded in the token
// row); the automation flags exist solely to be scored.
type Fingerprint struct {
	DeviceID  string `json:"device_id"`
	Webdriver bool   `json:"webdriver"`
	DevTools  bool   `json:"dev_tools"`
}

// User represents a stored account.
type User struct {
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the result of a successful password login: an opaque bearer
// token bound to the device that requested it, plus the resolved role.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Sentinel errors for auth operations.
var (
	// ErrLoginExists is returned by registration when the login is
	// already taken. This is the only auth failure distinguishable to
	// callers; everything else collapses to an empty result so that
	// unknown logins, wrong passwords and wrong-device tokens are
	// indistinguishable from outside.
	ErrLoginExists = errors.New("login already registered")
)
