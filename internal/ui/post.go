package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/social"
)

type postModel struct {
	id       int
	post     *social.Post
	viewport viewport.Model
	ready    bool
}

func (p *postModel) initViewport(width, height int) {
	p.viewport = viewport.New(maxInt(width, 20), maxInt(height-6, 5))
	p.ready = true
}

func (p *postModel) resizeViewport(width, height int) {
	p.viewport.Width = maxInt(width, 20)
	p.viewport.Height = maxInt(height-6, 5)
}

func (m Model) handlePostKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.clearMessages()
		m.screen = ScreenFeed
		return m, nil

	case "e":
		if post := m.post.post; post != nil && m.ownPost(*post) {
			m.clearMessages()
			m.compose = composeForEdit(*post, ScreenPost)
			m.screen = ScreenCompose
			return m, textinput.Blink
		}
		return m, nil

	case "d":
		if post := m.post.post; post != nil && m.ownPost(*post) && !m.busy() {
			m.clearMessages()
			return m, deletePostCmd(m.ctx, m.client, post.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.post.viewport, cmd = m.post.viewport.Update(msg)
	return m, cmd
}

// ownPost reports whether the logged-in profile authored the post.
func (m Model) ownPost(post social.Post) bool {
	name := m.profile.profile.Name
	return name != "" && post.Author.Name == name
}

func (m Model) handlePostLoaded(msg postLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "post")
		return m, nil
	}
	m.post.post = msg.post
	m.post.viewport.SetContent(m.renderPostBody(*msg.post))
	m.post.viewport.GotoTop()
	return m, nil
}

func (m Model) renderPost() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("Post"))
	b.WriteString("\n")

	if m.post.post == nil {
		if m.busy() {
			b.WriteString(m.styles.MutedText.Render("Fetching post..."))
		} else {
			b.WriteString(m.styles.WarningText.Render("No posts found!"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.post.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderMessageArea())
	b.WriteString("\n")

	footer := "esc back · e edit · d delete · ? help"
	if m.post.post != nil && !m.ownPost(*m.post.post) {
		footer = "esc back · ? help"
	}
	b.WriteString(m.styles.Footer.Width(m.width).Render(footer))
	return b.String()
}

func (m Model) renderPostBody(post social.Post) string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Bold(true).Render(post.Title))
	b.WriteString("\n")

	byline := fmt.Sprintf("%s · %s", post.Author.Name, formatDate(post.ParsedCreated(), post.Created))
	if post.Updated != "" && post.Updated != post.Created {
		byline += fmt.Sprintf(" (edited %s)", formatDate(post.ParsedUpdated(), post.Updated))
	}
	b.WriteString(m.styles.MutedText.Render(byline))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Text.Render(post.Body))
	b.WriteString("\n\n")

	if tags := joinTags(post.Tags); tags != "" {
		b.WriteString(m.styles.FaintText.Render(tags))
		b.WriteString("\n")
	}
	if post.Media != nil && post.Media.URL != "" {
		alt := post.Media.Alt
		if alt == "" {
			alt = "media"
		}
		b.WriteString(m.styles.FaintText.Render(fmt.Sprintf("[%s] %s", alt, post.Media.URL)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.MutedText.Render(
		fmt.Sprintf("%d comments · %d reactions", post.Counts.Comments, post.Counts.Reactions)))
	return b.String()
}
