package pages

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/services"
	"github.com/desertthunder/showtime/internal/session"
	"github.com/desertthunder/showtime/internal/shared"
)

// Fallback messages for auth failures without a server message.
const (
	LoginFailed  = "Login failed"
	SignupFailed = "Signup failed"
)

// LoginForm is the login page input. Fields are validated in order.
type LoginForm struct {
	Email    string `validate:"simple_email"`
	Password string `validate:"min=3"`
}

var loginMessages = map[string]string{
	"Email.simple_email": "Please enter a valid email address",
	"Password.min":       "Password must be at least 3 characters",
}

// SignupForm is the signup page input. Fields are validated in order.
type SignupForm struct {
	Name     string `validate:"trimmed_min=2"`
	Email    string `validate:"simple_email"`
	Phone    string `validate:"phone10"`
	Password string `validate:"min=6"`
	Confirm  string `validate:"eqfield=Password"`
}

var signupMessages = map[string]string{
	"Name.trimmed_min":   "Name must be at least 2 characters",
	"Email.simple_email": "Please enter a valid email address",
	"Phone.phone10":      "Phone number must be exactly 10 digits",
	"Password.min":       "Password must be at least 6 characters",
	"Confirm.eqfield":    "Passwords do not match",
}

// SessionWriter records a successful login.
type SessionWriter interface {
	Login(identity models.Identity) error
}

// Auth validates credentials, calls the API, and starts the session on success.
type Auth struct {
	api      services.AuthAPI
	session  SessionWriter
	validate *validator.Validate
}

// NewAuth creates an Auth over api and session.
func NewAuth(api services.AuthAPI, session SessionWriter) *Auth {
	return &Auth{api: api, session: session, validate: shared.NewValidator()}
}

// ValidateLogin checks f without any network call.
func (a *Auth) ValidateLogin(f LoginForm) error {
	return shared.ValidateForm(a.validate, f, loginMessages)
}

// ValidateSignup checks f without any network call.
func (a *Auth) ValidateSignup(f SignupForm) error {
	return shared.ValidateForm(a.validate, f, signupMessages)
}

// Login validates f and, when valid, logs in and persists the session.
//
// Validation failures return a [*shared.ValidationError] and no request is made.
func (a *Auth) Login(ctx context.Context, f LoginForm) (models.Identity, error) {
	if err := a.ValidateLogin(f); err != nil {
		return models.Identity{}, err
	}

	identity, err := a.api.Login(ctx, models.LoginRequest{Email: f.Email, Password: f.Password})
	if err != nil {
		return models.Identity{}, err
	}
	return a.start(identity)
}

// Signup validates f and, when valid, registers and persists the session.
func (a *Auth) Signup(ctx context.Context, f SignupForm) (models.Identity, error) {
	if err := a.ValidateSignup(f); err != nil {
		return models.Identity{}, err
	}

	identity, err := a.api.Signup(ctx, models.SignupRequest{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Password: f.Password,
	})
	if err != nil {
		return models.Identity{}, err
	}
	return a.start(identity)
}

// start begins the session for identity. A reply without a user id is an application error with no server
// message, so callers show their own fallback.
func (a *Auth) start(identity models.Identity) (models.Identity, error) {
	if !session.Valid(identity) {
		return models.Identity{}, &services.APIError{Kind: services.KindApplication, Err: session.ErrNoUserID}
	}
	if err := a.session.Login(identity); err != nil {
		return models.Identity{}, fmt.Errorf("failed to save session: %w", err)
	}
	return identity, nil
}
