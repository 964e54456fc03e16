package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/collection"
	"github.com/quilltui/quill/internal/social"
)

type feedModel struct {
	col      collection.Controller
	selected int
	loaded   bool

	filterInput textinput.Model
	filtering   bool

	searchInput textinput.Model
	searching   bool
}

func newFeedModel() feedModel {
	filter := textinput.New()
	filter.Placeholder = "filter title or body"
	filter.Prompt = "/"
	filter.CharLimit = 80

	search := textinput.New()
	search.Placeholder = "search all posts"
	search.Prompt = "search: "
	search.CharLimit = 80

	return feedModel{filterInput: filter, searchInput: search}
}

// visible is the rendered projection: held order under the active filter.
func (f *feedModel) visible() []social.Post {
	return f.col.Visible()
}

func (f *feedModel) clampSelection() {
	count := len(f.visible())
	if f.selected >= count {
		f.selected = count - 1
	}
	if f.selected < 0 {
		f.selected = 0
	}
}

func (f *feedModel) selectedPost() *social.Post {
	posts := f.visible()
	if len(posts) == 0 || f.selected >= len(posts) {
		return nil
	}
	return &posts[f.selected]
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.feed.selected < len(m.feed.visible())-1 {
			m.feed.selected++
		}
	case "k", "up":
		if m.feed.selected > 0 {
			m.feed.selected--
		}
	case "g", "home":
		m.feed.selected = 0
	case "G", "end":
		m.feed.selected = len(m.feed.visible()) - 1
		if m.feed.selected < 0 {
			m.feed.selected = 0
		}

	case "enter":
		if post := m.feed.selectedPost(); post != nil {
			m.clearMessages()
			m.screen = ScreenPost
			m.post.id = post.ID
			m.post.post = nil
			return m, loadPostCmd(m.ctx, m.client, post.ID)
		}

	case "r":
		if m.busy() {
			return m, nil
		}
		m.clearMessages()
		return m, loadFeedCmd(m.ctx, m.client)

	case "s":
		m.cycleSort()
		return m, nil

	case "/":
		m.feed.filtering = true
		m.feed.filterInput.SetValue(m.feed.col.FilterText())
		m.feed.filterInput.Focus()
		return m, textinput.Blink

	case "S":
		m.feed.searching = true
		m.feed.searchInput.SetValue("")
		m.feed.searchInput.Focus()
		return m, textinput.Blink

	case "n":
		m.clearMessages()
		m.compose = composeForCreate(ScreenFeed)
		m.screen = ScreenCompose
		return m, textinput.Blink

	case "p":
		m.clearMessages()
		m.screen = ScreenProfile
		return m, m.profileEnterCmd()

	case "L":
		return m, logoutCmd(m.session)
	}
	return m, nil
}

// handleFeedInputKey owns the keyboard while the filter or search prompt is open.
func (m Model) handleFeedInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.feed.filtering {
		switch msg.String() {
		case "enter":
			m.feed.filtering = false
			m.feed.filterInput.Blur()
			m.feed.col.Filter(m.feed.filterInput.Value())
			m.feed.selected = 0
			return m, nil
		case "esc":
			m.feed.filtering = false
			m.feed.filterInput.Blur()
			m.feed.col.Filter("")
			m.feed.selected = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.feed.filterInput, cmd = m.feed.filterInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		m.feed.searching = false
		m.feed.searchInput.Blur()
		return m.submitSearch()
	case "esc":
		m.feed.searching = false
		m.feed.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.feed.searchInput, cmd = m.feed.searchInput.Update(msg)
	return m, cmd
}

// submitSearch clears the local filter box before a remote search so the
// result list is never doubly narrowed. Blank text is a no-op.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.feed.searchInput.Value())
	if text == "" {
		return m, nil
	}
	if m.busy() {
		return m, nil
	}
	m.clearMessages()
	m.feed.filterInput.SetValue("")
	return m, searchCmd(m.ctx, m.client, text)
}

func (m *Model) cycleSort() {
	switch m.sortKey {
	case collection.SortNewest:
		m.sortKey = collection.SortOldest
	case collection.SortOldest:
		m.sortKey = collection.SortTitle
	default:
		m.sortKey = collection.SortNewest
	}
	m.feed.col.SortBy(m.sortKey)
	m.profile.col.SortBy(m.sortKey)
	m.savePrefs()
}

func (m Model) handleFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "feed")
		return m, nil
	}
	m.feed.col.SetPosts(msg.posts)
	m.feed.col.SortBy(m.sortKey)
	m.feed.loaded = true
	m.feed.clampSelection()
	return m, nil
}

func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail(msg.err, "search")
		return m, nil
	}
	if msg.posts == nil {
		// Blank query short-circuited without a request.
		return m, nil
	}
	m.feed.col.SetPosts(msg.posts)
	m.feed.selected = 0
	return m, nil
}

func (m Model) renderFeed() string {
	var b strings.Builder

	b.WriteString(m.renderHeader("Feed"))
	b.WriteString("\n")

	posts := m.feed.visible()
	switch {
	case !m.feed.loaded && m.busy():
		b.WriteString(m.styles.MutedText.Render("Fetching posts..."))
		b.WriteString("\n")
	case len(posts) == 0:
		// Empty collections are a terminal state, not a blank screen.
		b.WriteString(m.styles.WarningText.Render("No posts found!"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderPostList(posts, m.feed.selected))
	}

	b.WriteString("\n")
	b.WriteString(m.renderMessageArea())
	b.WriteString("\n")

	if m.feed.filtering {
		b.WriteString(m.feed.filterInput.View())
		b.WriteString("\n")
	} else if m.feed.searching {
		b.WriteString(m.feed.searchInput.View())
		b.WriteString("\n")
	}

	footer := "enter open · n new · s sort · / filter · S search · r refresh · p profile · L logout · ? help"
	b.WriteString(m.styles.Footer.Width(m.width).Render(footer))
	return b.String()
}

func (m Model) renderHeader(screen string) string {
	left := m.styles.Logo.Render("quill") + "  " + m.styles.Text.Render(screen)
	extras := []string{}
	if text := m.feed.col.FilterText(); screen == "Feed" && text != "" {
		extras = append(extras, m.styles.AccentText.Render(fmt.Sprintf("filter:%s", text)))
	}
	if screen == "Feed" || screen == "Profile" {
		extras = append(extras, m.styles.MutedText.Render("sort:"+string(m.sortKey)))
	}
	if len(extras) > 0 {
		left += "  " + strings.Join(extras, "  ")
	}
	return m.styles.Header.Width(m.width).Render(left)
}

// renderPostList renders posts as a simple selectable table.
func (m Model) renderPostList(posts []social.Post, selected int) string {
	var b strings.Builder

	titleWidth := minInt(40, maxInt(m.width/3, 16))
	for i, post := range posts {
		date := formatDate(post.ParsedCreated(), post.Created)
		line := fmt.Sprintf("%-*s  %-16s  %-12s  %2dc %2dr",
			titleWidth,
			truncate(post.Title, titleWidth),
			truncate(post.Author.Name, 16),
			date,
			post.Counts.Comments,
			post.Counts.Reactions,
		)
		if i == selected {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
