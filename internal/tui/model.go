// Package tui implements the interactive admin dashboard. Views are
// gated on the resolved session: the dashboard starts on a loading
// placeholder, revalidates the stored credential in the background, and
// either drops into the menu or redirects to the login form.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nomanion/nomadmin/internal/api"
	"github.com/nomanion/nomadmin/internal/guard"
	"github.com/nomanion/nomadmin/internal/models"
	"github.com/nomanion/nomadmin/internal/session"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewLoading is the placeholder shown while the session resolves
	ViewLoading ViewType = iota
	// ViewLogin is the credential form
	ViewLogin
	// ViewMenu is the dashboard landing menu
	ViewMenu
	// ViewItineraries lists draft itineraries awaiting publication
	ViewItineraries
	// ViewNomads lists nomad accounts
	ViewNomads
	// ViewExplorers lists explorer accounts
	ViewExplorers
	// ViewReviews lists reviews awaiting moderation
	ViewReviews
	// ViewStats shows the platform statistics snapshot
	ViewStats
)

// menuEntry pairs a menu label with the view it opens.
type menuEntry struct {
	label string
	view  ViewType
}

var menuEntries = []menuEntry{
	{"Itineraries", ViewItineraries},
	{"Nomads", ViewNomads},
	{"Explorers", ViewExplorers},
	{"Pending Reviews", ViewReviews},
	{"Statistics", ViewStats},
}

// Model represents the dashboard application state
type Model struct {
	client   *api.Client
	sessions *session.Manager
	gate     *guard.Guard

	// Session state
	state session.State

	// UI state
	currentView ViewType
	spinner     spinner.Model
	menuIndex   int
	cursor      int
	width       int
	height      int
	quitting    bool
	loading     bool
	lastError   string

	// Login state
	login loginState

	// Loaded data
	itineraries []models.Itinerary
	users       []models.User
	reviews     []models.Review
	stats       *models.Stats
	page        *models.Pagination
	pageNum     int

	styles Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}

// NewModel creates a dashboard model. The first frame is served from the
// persisted credential: a cached profile renders the menu immediately
// while CheckAuth confirms in the background, no credential goes straight
// to login, and anything else shows the loading placeholder.
func NewModel(client *api.Client, sessions *session.Manager) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		client:      client,
		sessions:    sessions,
		gate:        guard.New(true),
		currentView: ViewLoading,
		spinner:     sp,
		pageNum:     1,
		styles:      DefaultStyles(),
	}

	if sessions != nil {
		hydrated, _ := m.applyGuard(sessions.Hydrate())
		m = hydrated.(Model)
	}

	return m
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")). // Blue
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")). // Blue
			Padding(1, 2),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("39")).  // Blue
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
	}
}

// Messages

// authResolvedMsg carries the outcome of session revalidation
type authResolvedMsg struct {
	state session.State
}

// itinerariesLoadedMsg carries a page of draft itineraries
type itinerariesLoadedMsg struct {
	items []models.Itinerary
	page  *models.Pagination
}

// usersLoadedMsg carries a page of nomad or explorer accounts
type usersLoadedMsg struct {
	view  ViewType
	items []models.User
	page  *models.Pagination
}

// reviewsLoadedMsg carries the pending moderation queue
type reviewsLoadedMsg struct {
	items []models.Review
}

// statsLoadedMsg carries the statistics snapshot
type statsLoadedMsg struct {
	stats *models.Stats
}

// dataErrMsg carries a failed load or action
type dataErrMsg struct {
	err error
}

// reviewActionMsg reports a completed moderation action
type reviewActionMsg struct{}

// Init starts the spinner and kicks off session revalidation
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkAuthCmd())
}

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authResolvedMsg:
		return m.applyGuard(msg.state)

	case loginSubmittedMsg:
		return m.handleLoginSubmitted(msg)

	case otpRequestedMsg:
		return m.handleOTPRequested(msg)

	case itinerariesLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.itineraries = msg.items
		m.page = msg.page
		m.cursor = 0
		return m, nil

	case usersLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.users = msg.items
		m.page = msg.page
		m.cursor = 0
		return m, nil

	case reviewsLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.reviews = msg.items
		m.cursor = 0
		return m, nil

	case statsLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.stats = msg.stats
		return m, nil

	case reviewActionMsg:
		// Reload the queue so the acted-on entry drops out
		m.loading = true
		return m, m.loadCmd(ViewReviews)

	case dataErrMsg:
		m.loading = false
		m.lastError = msg.err.Error()
		if api.IsAuthError(msg.err) {
			// The backend revoked the session mid-use. Re-resolve so
			// the guard sends us back to login.
			return m, m.checkAuthCmd()
		}
		return m, nil
	}

	// Forward everything else to an active login form
	if m.currentView == ViewLogin {
		return m.updateLogin(msg)
	}

	return m, nil
}

// applyGuard maps a resolved session onto a view transition.
func (m Model) applyGuard(state session.State) (tea.Model, tea.Cmd) {
	m.state = state

	switch m.gate.Resolve(state) {
	case guard.ActionWait:
		m.currentView = ViewLoading
		return m, nil

	case guard.ActionRedirect:
		m.beginLogin()
		return m, nil

	case guard.ActionBlock:
		// Redirect already issued; stay on the login view
		return m, nil

	default: // guard.ActionRender
		if m.currentView == ViewLoading || m.currentView == ViewLogin {
			m.currentView = ViewMenu
		}
		return m, nil
	}
}

// View renders the dashboard
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentView {
	case ViewLoading:
		return m.renderLoading()
	case ViewLogin:
		return m.renderLogin()
	case ViewMenu:
		return m.renderMenu()
	case ViewItineraries:
		return m.renderItineraries()
	case ViewNomads, ViewExplorers:
		return m.renderUsers()
	case ViewReviews:
		return m.renderReviews()
	case ViewStats:
		return m.renderStats()
	default:
		return "Unknown view"
	}
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The login form owns the keyboard while active
	if m.currentView == ViewLogin {
		return m.updateLogin(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.currentView == ViewMenu {
			if m.menuIndex > 0 {
				m.menuIndex--
			}
		} else if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.currentView == ViewMenu {
			if m.menuIndex < len(menuEntries)-1 {
				m.menuIndex++
			}
		} else if m.cursor < m.listLen()-1 {
			m.cursor++
		}

	case "enter":
		if m.currentView == ViewMenu {
			return m.openView(menuEntries[m.menuIndex].view)
		}

	case "esc":
		if m.currentView != ViewMenu {
			m.currentView = ViewMenu
			m.lastError = ""
		}

	case "r":
		if view := m.currentView; view != ViewMenu && view != ViewLoading {
			m.loading = true
			return m, m.loadCmd(view)
		}

	case "n":
		if m.nextPageAvailable() {
			m.pageNum++
			m.loading = true
			return m, m.loadCmd(m.currentView)
		}

	case "p":
		if m.pageNum > 1 && m.paginatedView() {
			m.pageNum--
			m.loading = true
			return m, m.loadCmd(m.currentView)
		}

	case "a":
		if m.currentView == ViewReviews && m.cursor < len(m.reviews) {
			review := m.reviews[m.cursor]
			m.loading = true
			return m, m.approveReviewCmd(review)
		}

	case "l":
		if m.currentView == ViewMenu {
			return m, m.logoutCmd()
		}
	}

	return m, nil
}

// openView switches to a data view and starts its initial load.
func (m Model) openView(view ViewType) (tea.Model, tea.Cmd) {
	m.currentView = view
	m.pageNum = 1
	m.cursor = 0
	m.loading = true
	m.lastError = ""
	return m, m.loadCmd(view)
}

func (m Model) listLen() int {
	switch m.currentView {
	case ViewItineraries:
		return len(m.itineraries)
	case ViewNomads, ViewExplorers:
		return len(m.users)
	case ViewReviews:
		return len(m.reviews)
	default:
		return 0
	}
}

func (m Model) paginatedView() bool {
	switch m.currentView {
	case ViewItineraries, ViewNomads, ViewExplorers:
		return true
	default:
		return false
	}
}

func (m Model) nextPageAvailable() bool {
	return m.paginatedView() && m.page != nil && m.pageNum < m.page.TotalPages
}

// Commands

func (m Model) checkAuthCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return authResolvedMsg{state: sessions.CheckAuth(context.Background())}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		if err := sessions.Logout(); err != nil {
			return dataErrMsg{err: err}
		}
		return authResolvedMsg{state: sessions.State()}
	}
}

// loadCmd fetches the data backing a view.
func (m Model) loadCmd(view ViewType) tea.Cmd {
	client := m.client
	opts := api.ListOptions{Page: m.pageNum, Limit: 20}

	switch view {
	case ViewItineraries:
		return func() tea.Msg {
			items, page, err := client.ListDraftItineraries(context.Background(), opts)
			if err != nil {
				return dataErrMsg{err: err}
			}
			return itinerariesLoadedMsg{items: items, page: page}
		}

	case ViewNomads:
		return func() tea.Msg {
			items, page, err := client.ListNomads(context.Background(), opts)
			if err != nil {
				return dataErrMsg{err: err}
			}
			return usersLoadedMsg{view: ViewNomads, items: items, page: page}
		}

	case ViewExplorers:
		return func() tea.Msg {
			items, page, err := client.ListExplorers(context.Background(), opts)
			if err != nil {
				return dataErrMsg{err: err}
			}
			return usersLoadedMsg{view: ViewExplorers, items: items, page: page}
		}

	case ViewReviews:
		return func() tea.Msg {
			items, err := client.ListPendingReviews(context.Background())
			if err != nil {
				return dataErrMsg{err: err}
			}
			return reviewsLoadedMsg{items: items}
		}

	case ViewStats:
		return func() tea.Msg {
			stats, err := client.GetStats(context.Background())
			if err != nil {
				return dataErrMsg{err: err}
			}
			return statsLoadedMsg{stats: stats}
		}
	}

	return nil
}

func (m Model) approveReviewCmd(review models.Review) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.ApproveReview(context.Background(), review.ItineraryID, review.ID); err != nil {
			return dataErrMsg{err: err}
		}
		return reviewActionMsg{}
	}
}
