package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quilltui/quill/internal/router"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// Field order per mode. Login uses email+password; register adds name and
// the confirmation field checked before any request is made.
const (
	authFieldName = iota
	authFieldEmail
	authFieldPassword
	authFieldConfirm
	authFieldCount
)

type authModel struct {
	mode   authMode
	inputs [authFieldCount]textinput.Model
	focus  int
}

func newAuthModel() authModel {
	var a authModel

	name := textinput.New()
	name.Placeholder = "username"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 128

	a.inputs[authFieldName] = name
	a.inputs[authFieldEmail] = email
	a.inputs[authFieldPassword] = password
	a.inputs[authFieldConfirm] = confirm

	a.mode = modeLogin
	a.focus = authFieldEmail
	a.inputs[authFieldEmail].Focus()
	return a
}

func (a *authModel) fields() []int {
	if a.mode == modeRegister {
		return []int{authFieldName, authFieldEmail, authFieldPassword, authFieldConfirm}
	}
	return []int{authFieldEmail, authFieldPassword}
}

func (a *authModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (a *authModel) cycleFocus(backward bool) {
	order := a.fields()
	current := 0
	for i, f := range order {
		if f == a.focus {
			current = i
			break
		}
	}
	a.inputs[a.focus].Blur()
	if backward {
		current = (current - 1 + len(order)) % len(order)
	} else {
		current = (current + 1) % len(order)
	}
	a.focus = order[current]
	a.inputs[a.focus].Focus()
}

func (a *authModel) toggleMode() {
	a.inputs[a.focus].Blur()
	if a.mode == modeLogin {
		a.mode = modeRegister
		a.focus = authFieldName
	} else {
		a.mode = modeLogin
		a.focus = authFieldEmail
	}
	a.inputs[a.focus].Focus()
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.auth.cycleFocus(false)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.auth.cycleFocus(true)
		return m, textinput.Blink
	case "ctrl+t":
		m.clearMessages()
		m.auth.toggleMode()
		return m, textinput.Blink
	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

// submitAuth validates locally, then issues login or register; a successful
// registration chains straight into login with the same credentials.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	m.clearMessages()

	email := strings.TrimSpace(m.auth.inputs[authFieldEmail].Value())
	password := m.auth.inputs[authFieldPassword].Value()

	if m.auth.mode == modeRegister {
		name := strings.TrimSpace(m.auth.inputs[authFieldName].Value())
		confirm := m.auth.inputs[authFieldConfirm].Value()
		if password != confirm {
			m.track.Fail("The passwords have to match!")
			return m, nil
		}
		return m, registerCmd(m.ctx, m.client, name, email, password)
	}

	return m, loginCmd(m.ctx, m.client, email, password)
}

func (m Model) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "register")
		return m, nil
	}
	email := strings.TrimSpace(m.auth.inputs[authFieldEmail].Value())
	password := m.auth.inputs[authFieldPassword].Value()
	return m, loginCmd(m.ctx, m.client, email, password)
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "login")
		return m, nil
	}
	m.clearMessages()
	m.profile.profile = msg.result.Profile
	m.profile.loaded = false
	m.screen = ScreenProfile
	return m, loadProfilePostsCmd(m.ctx, m.client, msg.result.Name)
}

func (m Model) renderAuth() string {
	var b strings.Builder

	title := "Log in"
	if m.auth.mode == modeRegister {
		title = "Create an account"
	}
	b.WriteString(m.styles.Logo.Render("quill"))
	b.WriteString("  ")
	b.WriteString(m.styles.Text.Render(title))
	b.WriteString("\n\n")

	labels := map[int]string{
		authFieldName:     "Name",
		authFieldEmail:    "Email",
		authFieldPassword: "Password",
		authFieldConfirm:  "Confirm",
	}
	for _, f := range m.auth.fields() {
		b.WriteString(m.styles.MutedText.Render(labels[f]))
		b.WriteString("\n")
		b.WriteString(m.auth.inputs[f].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderMessageArea())
	b.WriteString("\n")

	hint := "enter submit · tab next field · ctrl+t switch to register · ctrl+c quit"
	if m.auth.mode == modeRegister {
		hint = "enter submit · tab next field · ctrl+t switch to login · ctrl+c quit"
	}
	b.WriteString(m.styles.Footer.Width(m.width).Render(hint))

	return m.styles.Panel.Width(minInt(m.width-2, 64)).Render(b.String())
}

// renderMessageArea is the dedicated error/status region shared by every
// screen: one message at a time, plus the in-flight spinner.
func (m Model) renderMessageArea() string {
	snap := m.track.Snapshot()

	parts := []string{}
	if snap.Busy {
		parts = append(parts, m.spin.View()+m.styles.MutedText.Render(" Loading..."))
	}
	if snap.Message != "" {
		parts = append(parts, m.styles.DangerText.Render(snap.Message))
	} else if m.status != "" {
		parts = append(parts, m.styles.SuccessText.Render(m.status))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// startRouteScreen maps a resolved route to a screen.
func startRouteScreen(route router.Route) Screen {
	switch route.View {
	case router.ViewFeed:
		return ScreenFeed
	case router.ViewPost:
		return ScreenPost
	case router.ViewProfile:
		return ScreenProfile
	default:
		return ScreenAuth
	}
}
