package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// AuthView is the login/register form shown before the chat opens.
type AuthView struct {
	styles *Styles
	client *AuthClient

	mode     authMode
	username textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	status   string
	busy     bool
}

// NewAuthView creates the form with the username field focused.
func NewAuthView(styles *Styles, client *AuthClient) *AuthView {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &AuthView{
		styles:   styles,
		client:   client,
		username: username,
		email:    email,
		password: password,
	}
}

// fields returns the inputs visible in the current mode, in focus order.
func (v *AuthView) fields() []*textinput.Model {
	if v.mode == modeRegister {
		return []*textinput.Model{&v.username, &v.email, &v.password}
	}
	return []*textinput.Model{&v.username, &v.password}
}

func (v *AuthView) setFocus(i int) {
	fields := v.fields()
	v.focus = (i + len(fields)) % len(fields)
	for j, f := range fields {
		if j == v.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// Update handles key input for the form.
func (v *AuthView) Update(msg tea.Msg) (*AuthView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return v, nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return v, nil
		case "ctrl+r":
			if v.mode == modeLogin {
				v.mode = modeRegister
			} else {
				v.mode = modeLogin
			}
			v.setFocus(0)
			v.status = ""
			return v, nil
		case "enter":
			return v.submit()
		}

	case authResultMsg:
		v.busy = false
		if msg.err != nil {
			v.status = v.styles.Error.Render(msg.err.Error())
			return v, nil
		}
		if msg.registered {
			v.mode = modeLogin
			v.setFocus(0)
			v.status = "Registered. Log in to continue."
			return v, nil
		}
		// Successful login is handled by App.
		return v, nil
	}

	var cmd tea.Cmd
	fields := v.fields()
	*fields[v.focus], cmd = fields[v.focus].Update(msg)
	return v, cmd
}

func (v *AuthView) submit() (*AuthView, tea.Cmd) {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	if username == "" || password == "" {
		v.status = v.styles.Error.Render("Username and password are required")
		return v, nil
	}

	v.busy = true
	v.status = "..."

	if v.mode == modeRegister {
		email := strings.TrimSpace(v.email.Value())
		return v, func() tea.Msg {
			if err := v.client.Register(username, email, password); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{registered: true, username: username}
		}
	}

	return v, func() tea.Msg {
		token, err := v.client.Login(username, password)
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{username: username, token: token}
	}
}

// View renders the form.
func (v *AuthView) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("AskMira"))
	b.WriteString("\n")

	if v.mode == modeRegister {
		b.WriteString(v.styles.Subtitle.Render("Create an account"))
	} else {
		b.WriteString(v.styles.Subtitle.Render("Log in"))
	}
	b.WriteString("\n\n")

	for _, f := range v.fields() {
		b.WriteString(v.styles.Input.Render(f.View()))
		b.WriteString("\n")
	}

	if v.status != "" {
		b.WriteString("\n" + v.status + "\n")
	}

	b.WriteString(v.styles.Help.Render(fmt.Sprintf(
		"enter submit · tab next field · ctrl+r switch to %s · ctrl+c quit",
		map[authMode]string{modeLogin: "register", modeRegister: "login"}[v.mode],
	)))
	return b.String()
}
