package repositories

import "context"

// IdentityUser is the identity-service view of an account
type IdentityUser struct {
	UID      string
	Email    string
	Disabled bool
}

// IdentityUpdate is a partial change to an identity account. Nil fields
// are left untouched.
type IdentityUpdate struct {
	Email    *string
	Disabled *bool
}

// IsZero reports whether the update changes nothing
func (u IdentityUpdate) IsZero() bool {
	return u.Email == nil && u.Disabled == nil
}

// IdentityGateway defines the operations consumed from the external
// identity/authentication service.
type IdentityGateway interface {
	GetUser(ctx context.Context, uid string) (*IdentityUser, error)
	GetUserByEmail(ctx context.Context, email string) (*IdentityUser, error)
	UpdateUser(ctx context.Context, uid string, update IdentityUpdate) error
}
