// Package models defines the records the auth core works with: the durable
// account record, the ephemeral session record, and the in-memory signed-in
// user.
package models

// Role is the closed set of user roles. The UI layer branches on the role
// of the signed-in user; everything else treats it as an opaque value.
type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAthlete, RoleCoach, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// Profile is the plaintext profile payload. It only ever exists transiently
// in memory; at rest it is stored AES-GCM encrypted inside an Account.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	PhotoURL  string `json:"photoURL,omitempty"`
}

// User is the in-memory signed-in identity: account identifiers joined with
// the decrypted profile fields. Created on login or session rehydration,
// destroyed on logout.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	PhotoURL  string
}
