package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authcore/pkg/session"
	"github.com/dmitrymomot/authcore/pkg/validator"
)

func TestPersistedSession_Validate(t *testing.T) {
	validIdentity := &session.Identity{
		ID:    uuid.New(),
		Email: "jordan@example.com",
	}

	t.Run("anonymous document", func(t *testing.T) {
		doc := session.PersistedSession{}
		assert.NoError(t, doc.Validate())
	})

	t.Run("authenticated document", func(t *testing.T) {
		doc := session.PersistedSession{Identity: validIdentity, IsAuthenticated: true}
		assert.NoError(t, doc.Validate())
	})

	t.Run("flag and identity must agree", func(t *testing.T) {
		assert.Error(t, session.PersistedSession{IsAuthenticated: true}.Validate())
		assert.Error(t, session.PersistedSession{Identity: validIdentity}.Validate())
	})

	t.Run("identity requires id and email", func(t *testing.T) {
		doc := session.PersistedSession{
			Identity:        &session.Identity{},
			IsAuthenticated: true,
		}
		err := doc.Validate()
		assert.Error(t, err)

		errs := validator.ExtractValidationErrors(err)
		assert.True(t, errs.Has("identity.id"))
		assert.True(t, errs.Has("identity.email"))
	})
}

func TestIdentity_HasRole(t *testing.T) {
	id := session.Identity{Roles: []string{"admin", "editor"}}

	assert.True(t, id.HasRole("admin"))
	assert.False(t, id.HasRole("viewer"))
	assert.False(t, session.Identity{}.HasRole("admin"))
}
