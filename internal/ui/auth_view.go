package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showtime/internal/pages"
	"github.com/desertthunder/showtime/internal/router"
	"github.com/desertthunder/showtime/internal/shared"
)

// authForm is the shared state of the login and signup views.
type authForm struct {
	signup     bool
	inputs     []textinput.Model
	focus      int
	err        string
	submitting bool
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return ti
}

func newLoginForm() *authForm {
	f := &authForm{inputs: []textinput.Model{
		newInput("Email", false),
		newInput("Password", true),
	}}
	f.setFocus(0)
	return f
}

func newSignupForm() *authForm {
	f := &authForm{signup: true, inputs: []textinput.Model{
		newInput("Name", false),
		newInput("Email", false),
		newInput("Phone (10 digits)", false),
		newInput("Password", true),
		newInput("Confirm Password", true),
	}}
	f.setFocus(0)
	return f
}

func (f *authForm) setFocus(i int) {
	n := len(f.inputs)
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *authForm) value(i int) string { return f.inputs[i].Value() }

func (f *authForm) login() pages.LoginForm {
	return pages.LoginForm{Email: f.value(0), Password: f.value(1)}
}

func (f *authForm) signupForm() pages.SignupForm {
	return pages.SignupForm{
		Name:     f.value(0),
		Email:    f.value(1),
		Phone:    f.value(2),
		Password: f.value(3),
		Confirm:  f.value(4),
	}
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch {
	case key.Matches(msg, m.keys.abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.swap):
		if f.signup {
			return m, m.navigate("/login")
		}
		return m, m.navigate("/signup")
	case f.submitting:
		return m, nil
	case key.Matches(msg, m.keys.next):
		f.setFocus(f.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		f.setFocus(f.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// submitAuth validates the form in place. Only a valid form produces a request.
func (m *Model) submitAuth() tea.Cmd {
	f := m.form
	ctx := m.ctx

	if f.signup {
		input := f.signupForm()
		if err := m.auth.ValidateSignup(input); err != nil {
			f.err = shared.UserMessage(err, pages.SignupFailed)
			return nil
		}
		f.err, f.submitting = "", true
		return func() tea.Msg {
			identity, err := m.auth.Signup(ctx, input)
			return authenticatedMsg(f, identity, err)
		}
	}

	input := f.login()
	if err := m.auth.ValidateLogin(input); err != nil {
		f.err = shared.UserMessage(err, pages.LoginFailed)
		return nil
	}
	f.err, f.submitting = "", true
	return func() tea.Msg {
		identity, err := m.auth.Login(ctx, input)
		return authenticatedMsg(f, identity, err)
	}
}

func (m *Model) handleAuthenticated(res authResult) (tea.Model, tea.Cmd) {
	if res.form != m.form {
		return m, nil
	}
	res.form.submitting = false

	if res.err != nil {
		fallback := pages.LoginFailed
		if res.form.signup {
			fallback = pages.SignupFailed
		}
		res.form.err = shared.UserMessage(res.err, fallback)
		m.logger.Warn("authentication failed", "signup", res.form.signup, "err", res.err)
		return m, nil
	}

	m.logger.Info("logged in", "user", res.identity.UserID)
	return m, m.navigate("/" + string(router.Movies))
}

func (m *Model) renderAuth() string {
	f := m.form
	title := "Login"
	if f.signup {
		title = "Sign Up"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	if m.dest.Redirected() {
		b.WriteString(styles.warn.Render("Please log in to continue"))
		b.WriteString("\n\n")
	}
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case f.submitting && f.signup:
		b.WriteString(styles.help.Render("Creating account..."))
	case f.submitting:
		b.WriteString(styles.help.Render("Logging in..."))
	case f.err != "":
		b.WriteString(styles.err.Render(f.err))
	}
	b.WriteString("\n\n")

	swap := key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sign up"))
	if f.signup {
		swap = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "log in"))
	}
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.next, submit, swap, m.keys.abort}))
	return b.String()
}
