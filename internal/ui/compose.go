package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/social"
)

// Compose fields in focus order; the body textarea sits between title and tags.
const (
	composeFieldTitle = iota
	composeFieldBody
	composeFieldTags
	composeFieldMediaURL
	composeFieldMediaAlt
	composeFieldCount
)

type composeModel struct {
	title    textinput.Model
	body     textarea.Model
	tags     textinput.Model
	mediaURL textinput.Model
	mediaAlt textinput.Model

	focus    int
	editID   int // zero when composing a new post
	returnTo Screen
}

func newComposeModel() composeModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	body := textarea.New()
	body.Placeholder = "write something..."
	body.SetHeight(6)

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.CharLimit = 200

	mediaURL := textinput.New()
	mediaURL.Placeholder = "image url (optional)"
	mediaURL.CharLimit = 300

	mediaAlt := textinput.New()
	mediaAlt.Placeholder = "image alt text (optional)"
	mediaAlt.CharLimit = 200

	return composeModel{
		title:    title,
		body:     body,
		tags:     tags,
		mediaURL: mediaURL,
		mediaAlt: mediaAlt,
	}
}

func composeForCreate(returnTo Screen) composeModel {
	c := newComposeModel()
	c.returnTo = returnTo
	c.title.Focus()
	return c
}

func composeForEdit(post social.Post, returnTo Screen) composeModel {
	c := newComposeModel()
	c.returnTo = returnTo
	c.editID = post.ID
	c.title.SetValue(post.Title)
	c.body.SetValue(post.Body)
	c.tags.SetValue(strings.Join(post.Tags, ", "))
	if post.Media != nil {
		c.mediaURL.SetValue(post.Media.URL)
		c.mediaAlt.SetValue(post.Media.Alt)
	}
	c.title.Focus()
	return c
}

func (c *composeModel) setFocus(field int) {
	c.title.Blur()
	c.body.Blur()
	c.tags.Blur()
	c.mediaURL.Blur()
	c.mediaAlt.Blur()

	c.focus = field
	switch field {
	case composeFieldTitle:
		c.title.Focus()
	case composeFieldBody:
		c.body.Focus()
	case composeFieldTags:
		c.tags.Focus()
	case composeFieldMediaURL:
		c.mediaURL.Focus()
	case composeFieldMediaAlt:
		c.mediaAlt.Focus()
	}
}

func (c *composeModel) payload() social.PostPayload {
	payload := social.PostPayload{
		Title: strings.TrimSpace(c.title.Value()),
		Body:  strings.TrimSpace(c.body.Value()),
		Tags:  splitTags(c.tags.Value()),
	}
	if url := strings.TrimSpace(c.mediaURL.Value()); url != "" {
		payload.Media = &social.Media{URL: url, Alt: strings.TrimSpace(c.mediaAlt.Value())}
	}
	return payload
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearMessages()
		m.screen = m.compose.returnTo
		return m, nil

	case "tab":
		m.compose.setFocus((m.compose.focus + 1) % composeFieldCount)
		return m, textinput.Blink

	case "shift+tab":
		m.compose.setFocus((m.compose.focus - 1 + composeFieldCount) % composeFieldCount)
		return m, textinput.Blink

	case "ctrl+s":
		return m.submitCompose()

	case "enter":
		// The body textarea keeps enter for newlines; other fields submit.
		if m.compose.focus != composeFieldBody {
			return m.submitCompose()
		}
	}

	var cmd tea.Cmd
	switch m.compose.focus {
	case composeFieldTitle:
		m.compose.title, cmd = m.compose.title.Update(msg)
	case composeFieldBody:
		m.compose.body, cmd = m.compose.body.Update(msg)
	case composeFieldTags:
		m.compose.tags, cmd = m.compose.tags.Update(msg)
	case composeFieldMediaURL:
		m.compose.mediaURL, cmd = m.compose.mediaURL.Update(msg)
	case composeFieldMediaAlt:
		m.compose.mediaAlt, cmd = m.compose.mediaAlt.Update(msg)
	}
	return m, cmd
}

func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	m.clearMessages()
	payload := m.compose.payload()
	if m.compose.editID > 0 {
		return m, updatePostCmd(m.ctx, m.client, m.compose.editID, payload)
	}
	return m, createPostCmd(m.ctx, m.client, payload)
}

func (m Model) handleComposeDone(msg composeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "compose")
		return m, nil
	}
	m.clearMessages()
	if msg.updated {
		m.status = "Post updated!"
	} else {
		m.status = "Post created!"
	}

	returnTo := m.compose.returnTo
	m.screen = returnTo
	switch returnTo {
	case ScreenProfile:
		return m, loadProfilePostsCmd(m.ctx, m.client, m.profile.profile.Name)
	case ScreenPost:
		if msg.post != nil {
			m.post.id = msg.post.ID
			return m, loadPostCmd(m.ctx, m.client, msg.post.ID)
		}
		return m, nil
	default:
		return m, loadFeedCmd(m.ctx, m.client)
	}
}

func (m Model) renderCompose() string {
	var b strings.Builder

	title := "New post"
	if m.compose.editID > 0 {
		title = "Edit post"
	}
	b.WriteString(m.renderHeader(title))
	b.WriteString("\n")

	b.WriteString(m.styles.MutedText.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.compose.title.View())
	b.WriteString("\n")

	b.WriteString(m.styles.MutedText.Render("Body"))
	b.WriteString("\n")
	b.WriteString(m.compose.body.View())
	b.WriteString("\n")

	b.WriteString(m.styles.MutedText.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(m.compose.tags.View())
	b.WriteString("\n")

	b.WriteString(m.styles.MutedText.Render("Media"))
	b.WriteString("\n")
	b.WriteString(m.compose.mediaURL.View())
	b.WriteString("\n")
	b.WriteString(m.compose.mediaAlt.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderMessageArea())
	b.WriteString("\n")

	footer := "ctrl+s save · tab next field · esc cancel"
	b.WriteString(m.styles.Footer.Width(m.width).Render(footer))
	return b.String()
}
