package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/models"
	"github.com/nomanion/nomadmin/internal/session"
	"github.com/nomanion/nomadmin/internal/tokenstore"
)

func adminState() session.State {
	return session.State{
		Status:    session.StatusAuthenticated,
		User:      &models.User{ID: "u-1", Email: "a@b.com", Role: models.RoleAdmin},
		Token:     "t1",
		Confirmed: true,
	}
}

// TestNewModel tests model initialization
func TestNewModel(t *testing.T) {
	model := NewModel(nil, nil)

	if model.currentView != ViewLoading {
		t.Errorf("Expected ViewLoading, got %v", model.currentView)
	}

	if model.pageNum != 1 {
		t.Errorf("Expected pageNum 1, got %d", model.pageNum)
	}

	if model.quitting {
		t.Error("Expected quitting to be false by default")
	}
}

type fakeBackend struct{}

func (f *fakeBackend) RequestOTP(ctx context.Context, email string) error { return nil }

func (f *fakeBackend) VerifyOTP(ctx context.Context, email, otp string) (*api.LoginResponse, error) {
	return nil, nil
}

func (f *fakeBackend) LoginWithPassword(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	return nil, nil
}

func (f *fakeBackend) Me(ctx context.Context) (*models.User, error) { return nil, nil }

// TestHydration tests the first frame served from the persisted credential
func TestHydration(t *testing.T) {
	t.Run("cached admin profile opens the menu before any network call", func(t *testing.T) {
		store, err := tokenstore.NewStore(afero.NewMemMapFs(), "/data")
		if err != nil {
			t.Fatal(err)
		}
		admin := &models.User{ID: "u-1", Email: "a@b.com", Role: models.RoleAdmin}
		if err := store.Save("t1", admin); err != nil {
			t.Fatal(err)
		}

		model := NewModel(nil, session.NewManager(store, &fakeBackend{}))
		if model.currentView != ViewMenu {
			t.Errorf("Expected ViewMenu from a cached profile, got %v", model.currentView)
		}
		if model.state.Confirmed {
			t.Error("Expected the hydrated state to be unconfirmed")
		}
	})

	t.Run("no credential goes straight to login", func(t *testing.T) {
		store, err := tokenstore.NewStore(afero.NewMemMapFs(), "/data")
		if err != nil {
			t.Fatal(err)
		}

		model := NewModel(nil, session.NewManager(store, &fakeBackend{}))
		if model.currentView != ViewLogin {
			t.Errorf("Expected ViewLogin without a credential, got %v", model.currentView)
		}
	})
}

// TestAuthResolved tests the view transition driven by session resolution
func TestAuthResolved(t *testing.T) {
	t.Run("admin session opens the menu", func(t *testing.T) {
		model := NewModel(nil, nil)

		updated, _ := model.Update(authResolvedMsg{state: adminState()})
		m := updated.(Model)

		if m.currentView != ViewMenu {
			t.Errorf("Expected ViewMenu, got %v", m.currentView)
		}
	})

	t.Run("unauthenticated session redirects to login", func(t *testing.T) {
		model := NewModel(nil, nil)

		updated, _ := model.Update(authResolvedMsg{state: session.State{Status: session.StatusUnauthenticated}})
		m := updated.(Model)

		if m.currentView != ViewLogin {
			t.Errorf("Expected ViewLogin, got %v", m.currentView)
		}
		if m.login.form == nil {
			t.Error("Expected a login form to be built")
		}
	})

	t.Run("repeat failures do not rebuild the login form", func(t *testing.T) {
		model := NewModel(nil, nil)
		unauthed := authResolvedMsg{state: session.State{Status: session.StatusUnauthenticated}}

		updated, _ := model.Update(unauthed)
		m := updated.(Model)
		form := m.login.form

		updated, _ = m.Update(unauthed)
		m = updated.(Model)

		if m.login.form != form {
			t.Error("Expected the login form to survive a blocked redirect")
		}
	})

	t.Run("non-admin session is redirected", func(t *testing.T) {
		model := NewModel(nil, nil)
		state := session.State{
			Status: session.StatusAuthenticated,
			User:   &models.User{ID: "u-2", Role: models.RoleExplorer},
			Token:  "t1",
		}

		updated, _ := model.Update(authResolvedMsg{state: state})
		m := updated.(Model)

		if m.currentView != ViewLogin {
			t.Errorf("Expected ViewLogin for a non-admin, got %v", m.currentView)
		}
	})
}

// TestMenuNavigation tests menu key handling
func TestMenuNavigation(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(authResolvedMsg{state: adminState()})
	m := updated.(Model)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	updated, _ = m.Update(down)
	m = updated.(Model)
	if m.menuIndex != 1 {
		t.Errorf("Expected menuIndex 1, got %d", m.menuIndex)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	updated, _ = m.Update(up)
	m = updated.(Model)
	if m.menuIndex != 0 {
		t.Errorf("Expected menuIndex 0, got %d", m.menuIndex)
	}

	// Moving past the top stays put
	updated, _ = m.Update(up)
	m = updated.(Model)
	if m.menuIndex != 0 {
		t.Errorf("Expected menuIndex to stay 0, got %d", m.menuIndex)
	}
}

// TestOpenView tests opening a data view from the menu
func TestOpenView(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(authResolvedMsg{state: adminState()})
	m := updated.(Model)

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	updated, cmd := m.Update(enter)
	m = updated.(Model)

	if m.currentView != ViewItineraries {
		t.Errorf("Expected ViewItineraries, got %v", m.currentView)
	}
	if !m.loading {
		t.Error("Expected loading to be set")
	}
	if cmd == nil {
		t.Error("Expected a load command")
	}
}

// TestDataLoaded tests data message handling
func TestDataLoaded(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(authResolvedMsg{state: adminState()})
	m := updated.(Model)
	m.currentView = ViewItineraries
	m.loading = true

	msg := itinerariesLoadedMsg{
		items: []models.Itinerary{{ID: "it-1", Title: "Lisbon in 5 days"}},
		page:  &models.Pagination{Page: 1, TotalPages: 3, Total: 41},
	}
	updated, _ = m.Update(msg)
	m = updated.(Model)

	if m.loading {
		t.Error("Expected loading to be cleared")
	}
	if len(m.itineraries) != 1 {
		t.Errorf("Expected 1 itinerary, got %d", len(m.itineraries))
	}
	if m.page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", m.page.TotalPages)
	}
}

// TestPagination tests the next/previous page keys
func TestPagination(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(authResolvedMsg{state: adminState()})
	m := updated.(Model)
	m.currentView = ViewNomads
	m.page = &models.Pagination{Page: 1, TotalPages: 3}

	next := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}
	updated, cmd := m.Update(next)
	m = updated.(Model)
	if m.pageNum != 2 {
		t.Errorf("Expected pageNum 2, got %d", m.pageNum)
	}
	if cmd == nil {
		t.Error("Expected a reload command")
	}

	prev := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}
	updated, _ = m.Update(prev)
	m = updated.(Model)
	if m.pageNum != 1 {
		t.Errorf("Expected pageNum 1, got %d", m.pageNum)
	}

	// No previous page from page one
	updated, _ = m.Update(prev)
	m = updated.(Model)
	if m.pageNum != 1 {
		t.Errorf("Expected pageNum to stay 1, got %d", m.pageNum)
	}
}

// TestDataError tests load failure handling
func TestDataError(t *testing.T) {
	t.Run("plain failures surface in place", func(t *testing.T) {
		model := NewModel(nil, nil)
		updated, _ := model.Update(authResolvedMsg{state: adminState()})
		m := updated.(Model)
		m.currentView = ViewStats
		m.loading = true

		updated, cmd := m.Update(dataErrMsg{err: &api.Error{Message: "connection refused"}})
		m = updated.(Model)

		if m.loading {
			t.Error("Expected loading to be cleared")
		}
		if m.lastError != "connection refused" {
			t.Errorf("Expected lastError 'connection refused', got '%s'", m.lastError)
		}
		if cmd != nil {
			t.Error("Expected no follow-up command for a plain failure")
		}
	})

	t.Run("auth failures trigger a session re-check", func(t *testing.T) {
		model := NewModel(nil, &session.Manager{})
		updated, _ := model.Update(authResolvedMsg{state: adminState()})
		m := updated.(Model)
		m.currentView = ViewReviews

		_, cmd := m.Update(dataErrMsg{err: &api.Error{Message: "Unauthorized", Status: 401}})
		if cmd == nil {
			t.Error("Expected a re-check command after an auth failure")
		}
	})
}

// TestQuitKeys tests the quit shortcuts
func TestQuitKeys(t *testing.T) {
	model := NewModel(nil, nil)
	updated, _ := model.Update(authResolvedMsg{state: adminState()})
	m := updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("Expected tea.Quit, got %v", msg)
	}
}
