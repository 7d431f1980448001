// Package guard decides what an access-controlled surface should do
// with the current session: wait, render, block, or redirect to login.
// The decision is pure; callers own the actual navigation.
package guard

import "github.com/nomanion/nomadmin/internal/session"

// Action is the guard's verdict for a protected surface.
type Action int

const (
	// ActionWait means the session is still resolving. Show a loading
	// placeholder and ask again.
	ActionWait Action = iota
	// ActionRedirect means the caller should send the user to login.
	// Issued at most once per unauthenticated episode.
	ActionRedirect
	// ActionBlock means a redirect was already issued this episode.
	// Render nothing and stay put.
	ActionBlock
	// ActionRender means the session passes and the surface may render.
	ActionRender
)

func (a Action) String() string {
	switch a {
	case ActionRedirect:
		return "redirect"
	case ActionBlock:
		return "block"
	case ActionRender:
		return "render"
	default:
		return "wait"
	}
}

// Guard gates a surface on the session state. Not safe for concurrent
// use; each surface owns its guard.
type Guard struct {
	requireAdmin bool
	redirected   bool
}

// New creates a guard. With requireAdmin set, authenticated non-admin
// sessions are treated the same as unauthenticated ones.
func New(requireAdmin bool) *Guard {
	return &Guard{requireAdmin: requireAdmin}
}

// Resolve maps the session state to an action. An unresolved session
// always waits. A failing session redirects exactly once, then blocks
// until the session passes again, which re-arms the redirect.
func (g *Guard) Resolve(state session.State) Action {
	if state.Status == session.StatusUnresolved {
		return ActionWait
	}

	passes := state.IsAuthenticated()
	if passes && g.requireAdmin && !state.IsAdmin() {
		passes = false
	}

	if passes {
		g.redirected = false
		return ActionRender
	}

	if g.redirected {
		return ActionBlock
	}
	g.redirected = true
	return ActionRedirect
}
