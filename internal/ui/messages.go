package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quilltui/quill/internal/social"
)

// Messages carrying client results back onto the UI loop.

type registerDoneMsg struct {
	profile *social.Profile
	err     error
}

type loginDoneMsg struct {
	result *social.LoginResult
	err    error
}

type feedLoadedMsg struct {
	posts []social.Post
	meta  *social.Meta
	err   error
}

type searchDoneMsg struct {
	posts []social.Post
	err   error
}

type postLoadedMsg struct {
	post *social.Post
	err  error
}

type composeDoneMsg struct {
	post    *social.Post
	updated bool
	err     error
}

type deleteDoneMsg struct {
	id  int
	ok  bool
	err error
}

type profilePostsMsg struct {
	posts []social.Post
	meta  *social.Meta
	err   error
}

type apiKeyMsg struct {
	key *social.APIKey
	err error
}

type logoutMsg struct {
	err error
}

// Commands wrapping client calls. Each runs on a background goroutine and
// reports back as exactly one message.

func registerCmd(ctx context.Context, client social.API, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		profile, err := client.Register(ctx, name, email, password)
		return registerDoneMsg{profile: profile, err: err}
	}
}

func loginCmd(ctx context.Context, client social.API, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Login(ctx, email, password)
		return loginDoneMsg{result: result, err: err}
	}
}

func loadFeedCmd(ctx context.Context, client social.API) tea.Cmd {
	return func() tea.Msg {
		posts, meta, err := client.ListPosts(ctx)
		return feedLoadedMsg{posts: posts, meta: meta, err: err}
	}
}

func searchCmd(ctx context.Context, client social.API, text string) tea.Cmd {
	return func() tea.Msg {
		posts, err := client.SearchPosts(ctx, text)
		return searchDoneMsg{posts: posts, err: err}
	}
}

func loadPostCmd(ctx context.Context, client social.API, id int) tea.Cmd {
	return func() tea.Msg {
		post, err := client.GetPost(ctx, id)
		return postLoadedMsg{post: post, err: err}
	}
}

func createPostCmd(ctx context.Context, client social.API, payload social.PostPayload) tea.Cmd {
	return func() tea.Msg {
		post, err := client.CreatePost(ctx, payload)
		return composeDoneMsg{post: post, err: err}
	}
}

func updatePostCmd(ctx context.Context, client social.API, id int, payload social.PostPayload) tea.Cmd {
	return func() tea.Msg {
		post, err := client.UpdatePost(ctx, id, payload)
		return composeDoneMsg{post: post, updated: true, err: err}
	}
}

func deletePostCmd(ctx context.Context, client social.API, id int) tea.Cmd {
	return func() tea.Msg {
		ok, err := client.DeletePost(ctx, id)
		return deleteDoneMsg{id: id, ok: ok, err: err}
	}
}

func loadProfilePostsCmd(ctx context.Context, client social.API, name string) tea.Cmd {
	return func() tea.Msg {
		posts, meta, err := client.ListProfilePosts(ctx, name)
		return profilePostsMsg{posts: posts, meta: meta, err: err}
	}
}

func apiKeyCmd(ctx context.Context, client social.API, name string) tea.Cmd {
	return func() tea.Msg {
		key, err := client.CreateAPIKey(ctx, name)
		return apiKeyMsg{key: key, err: err}
	}
}
