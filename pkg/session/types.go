package session

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/pkg/validator"
)

// Identity is the authenticated user's profile and role set. It is owned by
// the Manager and replaced wholesale on login or restore, never mutated in
// place.
type Identity struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	ExternalSubjectID string    `json:"externalSubjectId"`
	Roles             []string  `json:"roles"`
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AccountInfo mirrors the identity provider's cached account record, kept so
// silent refresh can resume the provider session after a reload.
type AccountInfo struct {
	HomeAccountID  string         `json:"homeAccountId"`
	Environment    string         `json:"environment"`
	TenantID       string         `json:"tenantId"`
	Username       string         `json:"username"`
	LocalAccountID string         `json:"localAccountId"`
	Name           string         `json:"name,omitempty"`
	Claims         map[string]any `json:"claims,omitempty"`
}

// PersistedSession is the single JSON document written to the storage
// medium on every session mutation and read back once at bootstrap.
// Invariant: IsAuthenticated is true exactly when Identity is non-nil.
type PersistedSession struct {
	Identity        *Identity    `json:"identity"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	ExternalAccount *AccountInfo `json:"externalAccount"`
}

// Validate checks the document against its schema. Every violation is
// reported; a failing document is treated as corrupt and discarded by the
// caller.
func (p PersistedSession) Validate() error {
	rules := []validator.Rule{
		{
			Check: func() bool { return p.IsAuthenticated == (p.Identity != nil) },
			Error: validator.ValidationError{
				Field:   "isAuthenticated",
				Message: "must be true exactly when an identity is present",
			},
		},
	}

	if p.Identity != nil {
		rules = append(rules,
			validator.Rule{
				Check: func() bool { return p.Identity.ID != uuid.Nil },
				Error: validator.ValidationError{Field: "identity.id", Message: "field is required"},
			},
			validator.RequiredString("identity.email", p.Identity.Email),
		)
	}

	return validator.Apply(rules...)
}
