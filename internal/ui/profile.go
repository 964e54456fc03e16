package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/collection"
	"github.com/quilltui/quill/internal/social"
)

type profileModel struct {
	profile  social.Profile
	col      collection.Controller
	selected int
	loaded   bool
}

func newProfileModel() profileModel {
	return profileModel{}
}

func (p *profileModel) selectedPost() *social.Post {
	posts := p.col.Visible()
	if len(posts) == 0 || p.selected >= len(posts) {
		return nil
	}
	return &posts[p.selected]
}

// profileEnterCmd loads the logged-in profile's posts when the screen opens.
func (m Model) profileEnterCmd() tea.Cmd {
	return loadProfilePostsCmd(m.ctx, m.client, m.profile.profile.Name)
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.profile.selected < m.profile.col.Len()-1 {
			m.profile.selected++
		}
	case "k", "up":
		if m.profile.selected > 0 {
			m.profile.selected--
		}
	case "g", "home":
		m.profile.selected = 0
	case "G", "end":
		m.profile.selected = maxInt(m.profile.col.Len()-1, 0)

	case "enter":
		if post := m.profile.selectedPost(); post != nil {
			m.clearMessages()
			m.screen = ScreenPost
			m.post.id = post.ID
			m.post.post = nil
			return m, loadPostCmd(m.ctx, m.client, post.ID)
		}

	case "n":
		m.clearMessages()
		m.compose = composeForCreate(ScreenProfile)
		m.screen = ScreenCompose
		return m, textinput.Blink

	case "e":
		if post := m.profile.selectedPost(); post != nil {
			m.clearMessages()
			m.compose = composeForEdit(*post, ScreenProfile)
			m.screen = ScreenCompose
			return m, textinput.Blink
		}

	case "d":
		if post := m.profile.selectedPost(); post != nil && !m.busy() {
			m.clearMessages()
			return m, deletePostCmd(m.ctx, m.client, post.ID)
		}

	case "r":
		if m.busy() {
			return m, nil
		}
		m.clearMessages()
		return m, m.profileEnterCmd()

	case "s":
		m.cycleSort()
		return m, nil

	case "f":
		m.clearMessages()
		m.screen = ScreenFeed
		if !m.feed.loaded {
			return m, loadFeedCmd(m.ctx, m.client)
		}
		return m, nil

	case "y":
		if m.busy() {
			return m, nil
		}
		m.clearMessages()
		return m, apiKeyCmd(m.ctx, m.client, "quill key")

	case "L":
		return m, logoutCmd(m.session)
	}
	return m, nil
}

func (m Model) handleProfilePosts(msg profilePostsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "profile")
		return m, nil
	}
	m.profile.col.SetPosts(msg.posts)
	m.profile.col.SortBy(m.sortKey)
	m.profile.loaded = true
	if m.profile.selected >= m.profile.col.Len() {
		m.profile.selected = maxInt(m.profile.col.Len()-1, 0)
	}
	return m, nil
}

func (m Model) handleDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "delete")
		return m, nil
	}
	if !msg.ok {
		return m, nil
	}
	m.clearMessages()
	m.status = "Post deleted!"
	if m.screen == ScreenPost {
		m.screen = ScreenFeed
		return m, loadFeedCmd(m.ctx, m.client)
	}
	if m.screen == ScreenProfile {
		return m, m.profileEnterCmd()
	}
	return m, loadFeedCmd(m.ctx, m.client)
}

func (m Model) handleAPIKey(msg apiKeyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "api key")
		return m, nil
	}
	m.status = fmt.Sprintf("API key %q issued: %s", msg.key.Name, msg.key.Key)
	return m, nil
}

func (m Model) renderProfile() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("Profile"))
	b.WriteString("\n")

	p := m.profile.profile
	b.WriteString(m.styles.AccentText.Render(p.Name))
	if p.Email != "" {
		b.WriteString(m.styles.MutedText.Render("  " + p.Email))
	}
	b.WriteString("\n")
	if p.Bio != nil && strings.TrimSpace(*p.Bio) != "" {
		b.WriteString(m.styles.Text.Render(truncate(*p.Bio, maxInt(m.width-4, 20))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	posts := m.profile.col.Visible()
	switch {
	case !m.profile.loaded && m.busy():
		b.WriteString(m.styles.MutedText.Render("Fetching posts..."))
		b.WriteString("\n")
	case len(posts) == 0:
		b.WriteString(m.styles.WarningText.Render("No posts found!"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderPostList(posts, m.profile.selected))
	}

	b.WriteString("\n")
	b.WriteString(m.renderMessageArea())
	b.WriteString("\n")

	footer := "enter open · n new · e edit · d delete · s sort · y api key · f feed · L logout · ? help"
	b.WriteString(m.styles.Footer.Width(m.width).Render(footer))
	return b.String()
}
