package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomanion/nomadmin/internal/models"
	"github.com/nomanion/nomadmin/internal/session"
)

func authedState(role string) session.State {
	return session.State{
		Status: session.StatusAuthenticated,
		User:   &models.User{ID: "u-1", Role: role},
		Token:  "t1",
	}
}

func TestGuard_Resolve(t *testing.T) {
	t.Run("waits while the session is unresolved", func(t *testing.T) {
		g := New(false)
		assert.Equal(t, ActionWait, g.Resolve(session.State{Status: session.StatusUnresolved}))
		assert.Equal(t, ActionWait, g.Resolve(session.State{Status: session.StatusUnresolved}))
	})

	t.Run("renders an authenticated session", func(t *testing.T) {
		g := New(false)
		assert.Equal(t, ActionRender, g.Resolve(authedState(models.RoleNomad)))
	})

	t.Run("redirects exactly once per unauthenticated episode", func(t *testing.T) {
		g := New(false)
		unauthed := session.State{Status: session.StatusUnauthenticated}

		assert.Equal(t, ActionRedirect, g.Resolve(unauthed))
		assert.Equal(t, ActionBlock, g.Resolve(unauthed))
		assert.Equal(t, ActionBlock, g.Resolve(unauthed))
	})

	t.Run("a passing session re-arms the redirect", func(t *testing.T) {
		g := New(false)
		unauthed := session.State{Status: session.StatusUnauthenticated}

		assert.Equal(t, ActionRedirect, g.Resolve(unauthed))
		assert.Equal(t, ActionBlock, g.Resolve(unauthed))
		assert.Equal(t, ActionRender, g.Resolve(authedState(models.RoleNomad)))
		assert.Equal(t, ActionRedirect, g.Resolve(unauthed))
	})

	t.Run("a token without a profile does not pass", func(t *testing.T) {
		g := New(false)
		state := session.State{Status: session.StatusAuthenticated, Token: "t1"}
		assert.Equal(t, ActionRedirect, g.Resolve(state))
	})
}

func TestGuard_RequireAdmin(t *testing.T) {
	t.Run("blocks authenticated non-admins like unauthenticated users", func(t *testing.T) {
		g := New(true)
		assert.Equal(t, ActionRedirect, g.Resolve(authedState(models.RoleExplorer)))
		assert.Equal(t, ActionBlock, g.Resolve(authedState(models.RoleExplorer)))
	})

	t.Run("renders admins and super admins", func(t *testing.T) {
		g := New(true)
		assert.Equal(t, ActionRender, g.Resolve(authedState(models.RoleAdmin)))
		assert.Equal(t, ActionRender, g.Resolve(authedState(models.RoleSuperAdmin)))
	})
}
