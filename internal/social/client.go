package social

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/quilltui/quill/internal/activity"
)

// API defines the operation surface feature views depend on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	Register(ctx context.Context, name, email, password string) (*Profile, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateAPIKey(ctx context.Context, name string) (*APIKey, error)
	ListPosts(ctx context.Context) ([]Post, *Meta, error)
	ListProfilePosts(ctx context.Context, name string) ([]Post, *Meta, error)
	GetPost(ctx context.Context, id int) (*Post, error)
	CreatePost(ctx context.Context, payload PostPayload) (*Post, error)
	UpdatePost(ctx context.Context, id int, payload PostPayload) (*Post, error)
	DeletePost(ctx context.Context, id int) (bool, error)
	SearchPosts(ctx context.Context, text string) ([]Post, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// SessionStore persists the credentials the client reads and writes.
type SessionStore interface {
	SaveLogin(token string, profile Profile) error
	Token() (string, bool)
}

// Client talks to the social HTTP API.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	userAgent    string
	apiKey       string
	apiKeyHeader string
	session      SessionStore
	track        *activity.Tracker
}

const (
	defaultBaseURL      = "https://v2.api.noroff.dev"
	defaultAPIKeyHeader = "X-Noroff-API-Key"
	defaultUserAgent    = "quill/0.1"
	requestTimeout      = 10 * time.Second
)

// API path suffixes appended to the base URL.
const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathAPIKey   = "/auth/create-api-key"
	pathPosts    = "/social/posts"
	pathSearch   = "/social/posts/search"
	pathProfiles = "/social/profiles"
)

// Per-operation fallback messages shown when the request itself fails rather
// than returning an HTTP error response.
const (
	fallbackRegister = "Could not register the account!"
	fallbackLogin    = "Could not login! Please retry later."
	fallbackAPIKey   = "Could not register for an API key!"
	fallbackPosts    = "Could not show the posts!"
	fallbackPost     = "Could not show the post! Please retry later."
	fallbackCreate   = "Could not create the post!"
	fallbackUpdate   = "Could not update the post!"
)

// Options configure a Client.
type Options struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string // empty uses the default vendor header
	UserAgent    string
	Session      SessionStore
	Tracker      *activity.Tracker // optional; marks requests in flight
}

// NewClient builds a Client from the provided options.
func NewClient(opts Options) (*Client, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	header := strings.TrimSpace(opts.APIKeyHeader)
	if header == "" {
		header = defaultAPIKeyHeader
	}
	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = defaultUserAgent
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent:    agent,
		apiKey:       strings.TrimSpace(opts.APIKey),
		apiKeyHeader: header,
		session:      opts.Session,
		track:        opts.Tracker,
	}, nil
}

// Register creates a new account and returns the decoded profile summary.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Profile, error) {
	body := registerRequest{Name: name, Email: email, Password: password}
	if err := validatePayload(body); err != nil {
		return nil, err
	}
	var payload profileResponse
	if err := c.do(ctx, call{method: http.MethodPost, rel: &url.URL{Path: pathRegister}, body: body, fallback: fallbackRegister}, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Login authenticates, splits the access token out of the profile payload,
// persists both through the session store, and returns the full payload.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := loginRequest{Email: email, Password: password}
	if err := validatePayload(body); err != nil {
		return nil, err
	}
	var payload loginResponse
	if err := c.do(ctx, call{method: http.MethodPost, rel: &url.URL{Path: pathLogin}, body: body, fallback: fallbackLogin}, &payload); err != nil {
		return nil, err
	}
	result := payload.Data
	if err := c.session.SaveLogin(result.AccessToken, result.Profile); err != nil {
		return nil, transportErr(fallbackLogin, err)
	}
	return &result, nil
}

// CreateAPIKey requests a new application key for the logged-in account.
func (c *Client) CreateAPIKey(ctx context.Context, name string) (*APIKey, error) {
	if strings.TrimSpace(name) == "" {
		name = "quill key"
	}
	body := map[string]string{"name": name}
	var payload apiKeyResponse
	if err := c.do(ctx, call{method: http.MethodPost, rel: &url.URL{Path: pathAPIKey}, body: body, authed: true, fallback: fallbackAPIKey}, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// ListPosts retrieves the post feed with author and count expansions.
func (c *Client) ListPosts(ctx context.Context) ([]Post, *Meta, error) {
	rel := &url.URL{Path: pathPosts, RawQuery: listQuery().Encode()}
	var payload postListResponse
	if err := c.do(ctx, call{method: http.MethodGet, rel: rel, authed: true, fallback: fallbackPosts}, &payload); err != nil {
		return nil, nil, err
	}
	return payload.Data, &payload.Meta, nil
}

// ListProfilePosts retrieves the posts owned by the named profile.
func (c *Client) ListProfilePosts(ctx context.Context, name string) ([]Post, *Meta, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil, &Error{Kind: KindBadRequest, Message: "The profile name is required!"}
	}
	rel := &url.URL{
		Path:     pathProfiles + "/" + trimmed + "/posts",
		RawQuery: listQuery().Encode(),
	}
	var payload postListResponse
	if err := c.do(ctx, call{method: http.MethodGet, rel: rel, authed: true, fallback: fallbackPosts}, &payload); err != nil {
		return nil, nil, err
	}
	return payload.Data, &payload.Meta, nil
}

// GetPost retrieves a single post by id.
func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	rel := &url.URL{
		Path:     fmt.Sprintf("%s/%d", pathPosts, id),
		RawQuery: listQuery().Encode(),
	}
	var payload postResponse
	if err := c.do(ctx, call{method: http.MethodGet, rel: rel, authed: true, fallback: fallbackPost}, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// CreatePost publishes a new post and returns the decoded result.
func (c *Client) CreatePost(ctx context.Context, payload PostPayload) (*Post, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	var decoded postResponse
	if err := c.do(ctx, call{method: http.MethodPost, rel: &url.URL{Path: pathPosts}, body: payload, authed: true, fallback: fallbackCreate}, &decoded); err != nil {
		return nil, err
	}
	return &decoded.Data, nil
}

// UpdatePost replaces the titled fields of an existing post.
func (c *Client) UpdatePost(ctx context.Context, id int, payload PostPayload) (*Post, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	rel := &url.URL{Path: fmt.Sprintf("%s/%d", pathPosts, id)}
	var decoded postResponse
	if err := c.do(ctx, call{method: http.MethodPut, rel: rel, body: payload, authed: true, fallback: fallbackUpdate}, &decoded); err != nil {
		return nil, err
	}
	return &decoded.Data, nil
}

// DeletePost removes a post by id and reports whether the server accepted.
func (c *Client) DeletePost(ctx context.Context, id int) (bool, error) {
	rel := &url.URL{Path: fmt.Sprintf("%s/%d", pathPosts, id)}
	if err := c.do(ctx, call{method: http.MethodDelete, rel: rel, authed: true, fallback: fallbackPost}, nil); err != nil {
		return false, err
	}
	return true, nil
}

// SearchPosts queries the server-side post search. Empty or whitespace text
// short-circuits without issuing a request.
func (c *Client) SearchPosts(ctx context.Context, text string) ([]Post, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	values := url.Values{}
	values.Set("q", trimmed)
	rel := &url.URL{Path: pathSearch, RawQuery: values.Encode()}
	var payload postListResponse
	if err := c.do(ctx, call{method: http.MethodGet, rel: rel, authed: true, fallback: fallbackPosts}, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// call describes one request: resource routes set authed to attach the bearer
// token and API key header; fallback is the message used when the request
// throws rather than responding.
type call struct {
	method   string
	rel      *url.URL
	body     any
	authed   bool
	fallback string
}

func (c *Client) do(ctx context.Context, req call, dest any) error {
	done := c.begin()
	defer done()

	var payload io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return transportErr(req.fallback, err)
		}
		payload = bytes.NewReader(raw)
	}

	reqURL := c.baseURL.ResolveReference(req.rel)
	httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL.String(), payload)
	if err != nil {
		return transportErr(req.fallback, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.authed {
		if token, ok := c.session.Token(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
		if c.apiKey != "" {
			httpReq.Header.Set(c.apiKeyHeader, c.apiKey)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return transportErr(req.fallback, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr(req.fallback, err)
	}
	if apiErr := Normalize(resp.StatusCode, raw); apiErr != nil {
		if apiErr.Message == "" {
			apiErr.Message = req.fallback
		}
		return apiErr
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return transportErr(req.fallback, err)
	}
	return nil
}

// begin marks a request in flight; the returned func clears it and must run
// regardless of outcome.
func (c *Client) begin() func() {
	if c.track == nil {
		return func() {}
	}
	return c.track.Begin()
}

func transportErr(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, cause: cause}
}

func listQuery() url.Values {
	values := url.Values{}
	values.Set("_author", "true")
	values.Set("_comments", "true")
	values.Set("_reactions", "true")
	return values
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
