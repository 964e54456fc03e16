package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/quilltui/quill/internal/activity"
)

// memSession implements SessionStore in memory for client tests.
type memSession struct {
	token   string
	profile Profile
	saved   bool
}

func (m *memSession) SaveLogin(token string, profile Profile) error {
	m.token = token
	m.profile = profile
	m.saved = true
	return nil
}

func (m *memSession) Token() (string, bool) {
	return m.token, m.token != ""
}

func testClient(t *testing.T, serverURL string, session SessionStore, track *activity.Tracker) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL: serverURL,
		APIKey:  "key-123",
		Session: session,
		Tracker: track,
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com/v2?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestNewClient_RequiresSession(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("NewClient accepted missing session store")
	}
}

func TestClient_LoginPersistsTokenAndProfile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathLogin || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body loginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if body.Email != "ada@stud.noroff.no" {
			t.Errorf("login email = %q", body.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"name":"ada","email":"ada@stud.noroff.no","accessToken":"tok-abc"}}`))
	}))
	t.Cleanup(server.Close)

	session := &memSession{}
	c := testClient(t, server.URL, session, nil)

	result, err := c.Login(testCtx(t), "ada@stud.noroff.no", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.AccessToken != "tok-abc" || result.Name != "ada" {
		t.Fatalf("Login result = %#v", result)
	}
	if !session.saved || session.token != "tok-abc" {
		t.Fatalf("session not persisted: %#v", session)
	}
	if session.profile.Name != "ada" {
		t.Fatalf("profile not persisted: %#v", session.profile)
	}
}

func TestClient_LoginRejectsInvalidCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"server detail ignored"}]}`))
	}))
	t.Cleanup(server.Close)

	session := &memSession{}
	c := testClient(t, server.URL, session, nil)

	_, err := c.Login(testCtx(t), "ada@stud.noroff.no", "wrongpass")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Kind != KindUnauthorized || apiErr.Message != unauthorizedMessage {
		t.Fatalf("err = %#v, want fixed unauthorized message", apiErr)
	}
	if session.saved {
		t.Fatal("session saved after failed login")
	}
}

func TestClient_RegisterValidatesBeforeRequest(t *testing.T) {
	t.Parallel()

	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{}, nil)

	_, err := c.Register(testCtx(t), "ada", "not-an-email", "hunter22")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBadRequest {
		t.Fatalf("err = %v, want bad request", err)
	}
	if requested {
		t.Fatal("invalid payload reached the server")
	}

	_, err = c.Register(testCtx(t), "ada", "ada@stud.noroff.no", "short")
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBadRequest {
		t.Fatalf("short password err = %v, want bad request", err)
	}
}

func TestClient_ListPostsSendsAuthAndExpansions(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathPosts {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get(defaultAPIKeyHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"first"},{"id":2,"title":"second"}],"meta":{"totalCount":2,"isLastPage":true}}`))
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok-abc"}, nil)

	posts, meta, err := c.ListPosts(testCtx(t))
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 1 || posts[1].Title != "second" {
		t.Fatalf("ListPosts posts = %#v", posts)
	}
	if meta == nil || meta.TotalCount != 2 || !meta.IsLastPage {
		t.Fatalf("ListPosts meta = %#v", meta)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotKey != "key-123" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotQuery.Get("_author") != "true" ||
		gotQuery.Get("_comments") != "true" ||
		gotQuery.Get("_reactions") != "true" {
		t.Fatalf("query = %v, want expansion params", gotQuery)
	}
}

func TestClient_ListPostsServerErrorMapsToUnknown(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok"}, nil)

	_, _, err := c.ListPosts(testCtx(t))
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Kind != KindUnknown || apiErr.Message != unknownMessage {
		t.Fatalf("err = %#v, want unknown message", apiErr)
	}
}

func TestClient_CreatePostRoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != pathPosts {
			http.NotFound(w, r)
			return
		}
		var payload PostPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Title != "hello" || payload.Media != nil {
			t.Errorf("payload = %#v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":7,"title":"hello","body":"world"}}`))
	}))
	t.Cleanup(server.Close)

	track := &activity.Tracker{}
	c := testClient(t, server.URL, &memSession{token: "tok"}, track)

	post, err := c.CreatePost(testCtx(t), PostPayload{Title: "hello", Body: "world"})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if post.ID != 7 || post.Body != "world" {
		t.Fatalf("CreatePost post = %#v", post)
	}
	if track.Snapshot().Busy {
		t.Fatal("tracker still busy after completed request")
	}
}

func TestClient_CreatePostRequiresTitle(t *testing.T) {
	t.Parallel()

	c := testClient(t, "http://127.0.0.1:0", &memSession{token: "tok"}, nil)

	_, err := c.CreatePost(testCtx(t), PostPayload{Body: "no title"})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindBadRequest {
		t.Fatalf("err = %v, want bad request", err)
	}
}

func TestClient_UpdateAndDeleteTargetPostPath(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":9,"title":"renamed"}}`))
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok"}, nil)

	post, err := c.UpdatePost(testCtx(t), 9, PostPayload{Title: "renamed"})
	if err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	if post.Title != "renamed" {
		t.Fatalf("UpdatePost post = %#v", post)
	}
	if gotMethod != http.MethodPut || gotPath != "/social/posts/9" {
		t.Fatalf("update request = %s %s", gotMethod, gotPath)
	}

	ok, err := c.DeletePost(testCtx(t), 9)
	if err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}
	if !ok {
		t.Fatal("DeletePost = false, want true")
	}
	if gotMethod != http.MethodDelete || gotPath != "/social/posts/9" {
		t.Fatalf("delete request = %s %s", gotMethod, gotPath)
	}
}

func TestClient_SearchPostsEncodesQueryAndSkipsBlank(t *testing.T) {
	t.Parallel()

	requests := 0
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != pathSearch {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":3,"title":"space & time"}],"meta":{}}`))
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok"}, nil)

	posts, err := c.SearchPosts(testCtx(t), "  space & time  ")
	if err != nil {
		t.Fatalf("SearchPosts returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != 3 {
		t.Fatalf("SearchPosts posts = %#v", posts)
	}
	if gotQuery.Get("q") != "space & time" {
		t.Fatalf("q = %q, want trimmed text", gotQuery.Get("q"))
	}

	posts, err = c.SearchPosts(testCtx(t), "   ")
	if err != nil || posts != nil {
		t.Fatalf("blank search = (%#v, %v), want (nil, nil)", posts, err)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, blank search must not hit the server", requests)
	}
}

func TestClient_ListProfilePostsBuildsPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"meta":{"totalCount":0}}`))
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok"}, nil)

	if _, _, err := c.ListProfilePosts(testCtx(t), "ada"); err != nil {
		t.Fatalf("ListProfilePosts returned error: %v", err)
	}
	if gotPath != "/social/profiles/ada/posts" {
		t.Fatalf("path = %q", gotPath)
	}

	if _, _, err := c.ListProfilePosts(testCtx(t), "  "); err == nil {
		t.Fatal("blank profile name accepted")
	}
}

func TestClient_CreateAPIKeyDefaultsName(t *testing.T) {
	t.Parallel()

	var gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != pathAPIKey {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotName = body["name"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"name":"quill key","key":"k-junk"}}`))
	}))
	t.Cleanup(server.Close)

	c := testClient(t, server.URL, &memSession{token: "tok"}, nil)

	key, err := c.CreateAPIKey(testCtx(t), "")
	if err != nil {
		t.Fatalf("CreateAPIKey returned error: %v", err)
	}
	if key.Key != "k-junk" {
		t.Fatalf("CreateAPIKey key = %#v", key)
	}
	if gotName != "quill key" {
		t.Fatalf("name = %q, want default", gotName)
	}
}

func TestClient_TransportFailureUsesFallback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse subsequent connections

	track := &activity.Tracker{}
	c := testClient(t, server.URL, &memSession{token: "tok"}, track)

	_, _, err := c.ListPosts(testCtx(t))
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Kind != KindTransport || apiErr.Message != fallbackPosts {
		t.Fatalf("err = %#v, want transport fallback %q", apiErr, fallbackPosts)
	}
	if apiErr.Unwrap() == nil {
		t.Fatal("transport error lost its cause")
	}
	if track.Snapshot().Busy {
		t.Fatal("tracker still busy after failed request")
	}
}
