package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nomanion/nomadmin/internal/session"
)

// loginPhase tracks the two-step credential exchange: ask for the
// email, have the backend mail a one-time password, then ask for it.
type loginPhase int

const (
	phaseEmail loginPhase = iota
	phaseOTP
)

// loginState is the login view's form state.
type loginState struct {
	phase      loginPhase
	form       *huh.Form
	email      string
	otp        string
	submitting bool
}

// otpRequestedMsg reports the outcome of the request-otp call
type otpRequestedMsg struct {
	err error
}

// loginSubmittedMsg reports the outcome of the credential exchange
type loginSubmittedMsg struct {
	state session.State
	err   error
}

// beginLogin switches to the login view and resets the form to the
// email step.
func (m *Model) beginLogin() {
	m.currentView = ViewLogin
	m.login = loginState{phase: phaseEmail}
	m.login.form = m.emailForm()
}

func (m *Model) emailForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Description("An admin account registered on Nomanion").
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email address")
					}
					return nil
				}),
		),
	)
}

func (m *Model) otpForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("otp").
				Title("One-time password").
				Description("Check your inbox for the code we just sent").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("the code is required")
					}
					return nil
				}),
		),
	)
}

// updateLogin forwards messages to the active form and advances the
// phase when it completes.
func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.login.form == nil || m.login.submitting {
		return m, nil
	}

	form, cmd := m.login.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.login.form = f
	}

	if m.login.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.login.submitting = true
	m.lastError = ""

	// Read answers off the form itself; the model is copied on every
	// update so the Value pointers bound at build time are stale.
	switch m.login.phase {
	case phaseEmail:
		m.login.email = m.login.form.GetString("email")
		return m, tea.Batch(cmd, m.requestOTPCmd(m.login.email))
	default:
		m.login.otp = m.login.form.GetString("otp")
		return m, tea.Batch(cmd, m.loginCmd(m.login.email, m.login.otp))
	}
}

func (m Model) handleOTPRequested(msg otpRequestedMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false

	if msg.err != nil {
		m.lastError = msg.err.Error()
		m.login.form = m.emailForm()
		return m, m.login.form.Init()
	}

	m.login.phase = phaseOTP
	m.login.form = m.otpForm()
	return m, m.login.form.Init()
}

func (m Model) handleLoginSubmitted(msg loginSubmittedMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false

	if msg.err != nil {
		m.lastError = msg.err.Error()
		m.login.otp = ""
		m.login.form = m.otpForm()
		return m, m.login.form.Init()
	}

	return m.applyGuard(msg.state)
}

func (m Model) requestOTPCmd(email string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		return otpRequestedMsg{err: sessions.RequestOTP(context.Background(), email)}
	}
}

func (m Model) loginCmd(email, otp string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		state, err := sessions.Login(context.Background(), email, otp)
		return loginSubmittedMsg{state: state, err: err}
	}
}
