package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/showtime/internal/pages"
	"github.com/urfave/cli/v3"
)

// ask returns value, prompting for it when empty.
func (r *Runner) ask(value, label string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}
	v, err := r.prompter.Prompt(label, secret, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	return v, nil
}

// AuthLogin validates credentials, logs in, and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email, err := r.ask(cmd.String("email"), "Email", false)
	if err != nil {
		return err
	}
	password, err := r.ask(cmd.String("password"), "Password", true)
	if err != nil {
		return err
	}

	identity, err := pages.NewAuth(r.api, r.session).Login(ctx, pages.LoginForm{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("logged in", "user", identity.UserID)
	r.writePlain("✓ Logged in as %s\n", identity.Name)
	return r.writePlain("Next: showtime movies\n")
}

// AuthSignup registers a new account and logs in with it.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	form := pages.SignupForm{}
	var err error

	if form.Name, err = r.ask(cmd.String("name"), "Name", false); err != nil {
		return err
	}
	if form.Email, err = r.ask(cmd.String("email"), "Email", false); err != nil {
		return err
	}
	if form.Phone, err = r.ask(cmd.String("phone"), "Phone", false); err != nil {
		return err
	}

	if p := cmd.String("password"); p != "" {
		form.Password, form.Confirm = p, p
	} else {
		if form.Password, err = r.ask("", "Password", true); err != nil {
			return err
		}
		if form.Confirm, err = r.ask("", "Confirm Password", true); err != nil {
			return err
		}
	}

	identity, err := pages.NewAuth(r.api, r.session).Signup(ctx, form)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	r.logger.Info("signed up", "user", identity.UserID)
	return r.writePlain("✓ Account created. Logged in as %s\n", identity.Name)
}

// AuthLogout ends the session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami prints the stored identity.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	identity, err := r.identity()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(identity, true)
	}

	r.writePlain("Name:  %s\n", identity.Name)
	r.writePlain("Email: %s\n", identity.Email)
	if identity.Phone != "" {
		r.writePlain("Phone: %s\n", identity.Phone)
	}
	return r.writePlain("ID:    %s\n", identity.UserID)
}
