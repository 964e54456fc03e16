package social

import "time"

// Media is an image reference with alternative text.
type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Profile mirrors the profile payload returned by the auth endpoints and
// embedded in posts as the author summary.
type Profile struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Bio    *string `json:"bio"`
	Avatar Media   `json:"avatar"`
	Banner Media   `json:"banner"`
}

// Counts aggregates engagement totals for a post.
type Counts struct {
	Comments  int `json:"comments"`
	Reactions int `json:"reactions"`
}

// Post mirrors a single post payload. Created and Updated stay in wire form;
// use the parse helpers when ordering matters.
type Post struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
	Media   *Media   `json:"media"`
	Created string   `json:"created"`
	Updated string   `json:"updated"`
	Author  Profile  `json:"author"`
	Counts  Counts   `json:"_count"`
}

// ParsedCreated returns the creation timestamp as time.Time when possible.
func (p Post) ParsedCreated() time.Time {
	return parseTime(p.Created)
}

// ParsedUpdated returns the update timestamp as time.Time when possible.
func (p Post) ParsedUpdated() time.Time {
	return parseTime(p.Updated)
}

// Meta carries the pagination block returned beside list data.
type Meta struct {
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
	PageCount    int  `json:"pageCount"`
	TotalCount   int  `json:"totalCount"`
}

// LoginResult is the full decoded login payload: the profile summary plus
// the access token the server minted for this session.
type LoginResult struct {
	Profile
	AccessToken string `json:"accessToken"`
}

// APIKey is the credential issued by the key endpoint for this application.
type APIKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

type profileResponse struct {
	Data Profile `json:"data"`
}

type loginResponse struct {
	Data LoginResult `json:"data"`
}

type apiKeyResponse struct {
	Data APIKey `json:"data"`
}

type postResponse struct {
	Data Post `json:"data"`
}

type postListResponse struct {
	Data []Post `json:"data"`
	Meta Meta   `json:"meta"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
