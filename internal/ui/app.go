// Package ui provides the Bubble Tea terminal interface for quill.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/activity"
	"github.com/quilltui/quill/internal/collection"
	"github.com/quilltui/quill/internal/logging"
	"github.com/quilltui/quill/internal/prefs"
	"github.com/quilltui/quill/internal/router"
	"github.com/quilltui/quill/internal/session"
	"github.com/quilltui/quill/internal/social"
)

// Screen represents the current active feature view.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenFeed
	ScreenPost
	ScreenCompose
	ScreenProfile
)

// Options configure the UI.
type Options struct {
	Context   context.Context
	Client    social.API
	Session   *session.Store
	Tracker   *activity.Tracker
	Prefs     prefs.Prefs
	PrefsPath string
	Start     router.Route
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    social.API
	session   *session.Store
	track     *activity.Tracker
	prefsPath string

	theme  Theme
	styles Styles

	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
	status   string

	spin spinner.Model

	sortKey collection.SortKey

	auth    authModel
	feed    feedModel
	post    postModel
	compose composeModel
	profile profileModel
}

// New creates the root model. The start route only takes effect when a
// session exists; without a token every path lands on the auth screen.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	track := opts.Tracker
	if track == nil {
		track = &activity.Tracker{}
	}

	theme := GetTheme(opts.Prefs.Theme)

	sortKey := collection.SortKey(opts.Prefs.Sort)
	switch sortKey {
	case collection.SortTitle, collection.SortNewest, collection.SortOldest:
	default:
		sortKey = collection.SortNewest
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		session:   opts.Session,
		track:     track,
		prefsPath: opts.PrefsPath,
		theme:     theme,
		styles:    theme.Styles(),
		spin:      sp,
		sortKey:   sortKey,
		auth:      newAuthModel(),
		feed:      newFeedModel(),
		compose:   newComposeModel(),
		profile:   newProfileModel(),
	}

	if _, ok := opts.Session.Token(); ok {
		m.screen = startRouteScreen(opts.Start)
		if m.screen == ScreenAuth {
			m.screen = ScreenFeed
		}
		if m.screen == ScreenPost {
			m.post.id = opts.Start.PostID
		}
		if profile, ok := opts.Session.Profile(); ok {
			m.profile.profile = profile
		}
	} else {
		m.screen = ScreenAuth
	}

	return m
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, m.spin.Tick}
	switch m.screen {
	case ScreenFeed:
		cmds = append(cmds, loadFeedCmd(m.ctx, m.client))
	case ScreenPost:
		cmds = append(cmds, loadPostCmd(m.ctx, m.client, m.post.id))
	case ScreenProfile:
		cmds = append(cmds, loadProfilePostsCmd(m.ctx, m.client, m.profile.profile.Name))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.post.initViewport(msg.Width, msg.Height)
		} else {
			m.post.resizeViewport(msg.Width, msg.Height)
		}
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case registerDoneMsg:
		return m.handleRegisterDone(msg)
	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case feedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case searchDoneMsg:
		return m.handleSearchDone(msg)
	case postLoadedMsg:
		return m.handlePostLoaded(msg)
	case composeDoneMsg:
		return m.handleComposeDone(msg)
	case deleteDoneMsg:
		return m.handleDeleteDone(msg)
	case profilePostsMsg:
		return m.handleProfilePosts(msg)
	case apiKeyMsg:
		return m.handleAPIKey(msg)
	case logoutMsg:
		return m.handleLogout(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.screen {
	case ScreenAuth:
		return m.renderAuth()
	case ScreenFeed:
		return m.renderFeed()
	case ScreenPost:
		return m.renderPost()
	case ScreenCompose:
		return m.renderCompose()
	case ScreenProfile:
		return m.renderProfile()
	}
	return ""
}

// handleKey routes keyboard input. Text-editing contexts get the key first
// so global shortcuts never swallow typed characters.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.editing() {
		switch m.screen {
		case ScreenAuth:
			return m.handleAuthKey(msg)
		case ScreenFeed:
			return m.handleFeedInputKey(msg)
		case ScreenCompose:
			return m.handleComposeKey(msg)
		}
	}

	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()
		return m, nil
	}

	switch m.screen {
	case ScreenAuth:
		return m.handleAuthKey(msg)
	case ScreenFeed:
		return m.handleFeedKey(msg)
	case ScreenPost:
		return m.handlePostKey(msg)
	case ScreenProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

// editing reports whether a text input currently owns the keyboard.
func (m Model) editing() bool {
	switch m.screen {
	case ScreenAuth, ScreenCompose:
		return true
	case ScreenFeed:
		return m.feed.filtering || m.feed.searching
	}
	return false
}

// busy reports whether a request is in flight; submits are ignored while true.
func (m Model) busy() bool {
	return m.track.Snapshot().Busy
}

// fail records the user-visible message for a failed flow and logs the cause.
func (m *Model) fail(err error, context string) {
	message := social.UserMessage(err, unknownFallback)
	m.track.Fail(message)
	logging.L().Error().Err(err).Str("flow", context).Msg("request failed")
}

const unknownFallback = "Unknown error! Please retry later."

func (m *Model) clearMessages() {
	m.track.Clear()
	m.status = ""
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Sort: string(m.sortKey)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logging.L().Warn().Err(err).Msg("save prefs")
	}
}

func logoutCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: store.Clear()}
	}
}

func (m Model) handleLogout(msg logoutMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "logout")
		return m, nil
	}
	m.clearMessages()
	m.screen = ScreenAuth
	m.auth = newAuthModel()
	m.feed = newFeedModel()
	m.profile = newProfileModel()
	m.post = postModel{}
	m.post.initViewport(m.width, m.height)
	return m, m.auth.focusCmd()
}
