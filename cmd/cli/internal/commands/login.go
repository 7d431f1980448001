package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nomanion/nomadmin/internal/session"
)

type LoginCmd struct {
	Email    string `help:"Admin account email" required:""`
	Password string `help:"Sign in with a password instead of an emailed code" env:"NOMANION_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}

	var state session.State
	if l.Password != "" {
		state, err = app.sessions.LoginWithPassword(ctx, l.Email, l.Password)
	} else {
		state, err = l.loginWithOTP(ctx, app)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", state.User.Email, state.User.Role)
	return nil
}

func (l *LoginCmd) loginWithOTP(ctx context.Context, app *app) (session.State, error) {
	if err := app.sessions.RequestOTP(ctx, l.Email); err != nil {
		return session.State{}, err
	}
	fmt.Printf("A one-time password has been sent to %s\n", l.Email)

	var otp string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("One-time password").
				Value(&otp).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("the code is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return session.State{}, err
	}

	return app.sessions.Login(ctx, l.Email, strings.TrimSpace(otp))
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}

	if err := app.sessions.Logout(); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := globals.setup()
	if err != nil {
		return err
	}

	state, err := app.requireSession(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %s\n", "Name", state.User.FullName)
	fmt.Printf("%-12s %s\n", "Email", state.User.Email)
	fmt.Printf("%-12s %s\n", "Role", state.User.Role)
	if !state.Confirmed {
		fmt.Println("\n(served from the cached profile; the backend could not be reached)")
	}
	return nil
}
