package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField identifies a credential input
type formField int

const (
	fieldEmail formField = iota
	fieldPassword
)

// CredentialForm is the signup/login form. It only collects input; the
// controller decides what a submit means.
type CredentialForm struct {
	Email    textinput.Model
	Password textinput.Model
	Focus    formField
}

// NewCredentialForm creates an empty form focused on the email field.
func NewCredentialForm() CredentialForm {
	email := textinput.New()
	email.Placeholder = "usuario@email.com"
	email.CharLimit = 254
	email.Width = 40
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "••••••••"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40
	password.Prompt = ""

	f := CredentialForm{Email: email, Password: password}
	f.setFocus(fieldEmail)
	return f
}

func (f *CredentialForm) setFocus(field formField) {
	f.Focus = field
	if field == fieldEmail {
		f.Email.Focus()
		f.Password.Blur()
	} else {
		f.Password.Focus()
		f.Email.Blur()
	}
}

// Reset moves focus back to the first field. Values are kept so the user
// does not retype them after navigating back.
func (f *CredentialForm) Reset() tea.Cmd {
	f.setFocus(fieldEmail)
	return textinput.Blink
}

// Values returns the current email and password.
func (f CredentialForm) Values() (string, string) {
	return strings.TrimSpace(f.Email.Value()), f.Password.Value()
}

// formAction is what a key press asks of the form's owner
type formAction int

const (
	formActionNone formAction = iota
	formActionSubmit
	formActionBack
)

// Update handles a key press. Enter on the email field advances to the
// password field unless the password is already filled in.
func (f CredentialForm) Update(msg tea.Msg, keys formKeyMap) (CredentialForm, formAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if f.Focus == fieldEmail {
			f.Email, cmd = f.Email.Update(msg)
		} else {
			f.Password, cmd = f.Password.Update(msg)
		}
		return f, formActionNone, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Back):
		return f, formActionBack, nil

	case key.Matches(keyMsg, keys.Next):
		f.setFocus(fieldPassword)
		return f, formActionNone, textinput.Blink

	case key.Matches(keyMsg, keys.Prev):
		f.setFocus(fieldEmail)
		return f, formActionNone, textinput.Blink

	case key.Matches(keyMsg, keys.Submit):
		if f.Focus == fieldEmail && f.Password.Value() == "" {
			f.setFocus(fieldPassword)
			return f, formActionNone, textinput.Blink
		}
		return f, formActionSubmit, nil
	}

	var cmd tea.Cmd
	if f.Focus == fieldEmail {
		f.Email, cmd = f.Email.Update(msg)
	} else {
		f.Password, cmd = f.Password.Update(msg)
	}
	return f, formActionNone, cmd
}
