// Package social provides the HTTP client for the Noroff social API.
//
// # Overview
//
// This package defines the API client the feature views depend on. It handles
// HTTP communication, JSON serialization, request validation, and a uniform
// mapping from HTTP failures to the single message shown in the error area.
//
// # Architecture
//
// The package is split into four files:
//
//   - client.go: HTTP client, request plumbing, and the API interface
//   - types.go: Data structures mirroring the social API schema
//   - errors.go: Error taxonomy and response normalization
//   - validate.go: Request payload validation
//
// # Client Usage
//
// Create a client with a session store (required) and optional overrides:
//
//	client, err := social.NewClient(social.Options{
//		BaseURL: "https://v2.api.noroff.dev",
//		APIKey:  cfg.APIKey,
//		Session: store,
//		Tracker: tracker,
//	})
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	posts, meta, err := client.ListPosts(ctx)
//	post, err := client.GetPost(ctx, 42)
//
// # Endpoints
//
//   - POST /auth/register: Create an account
//   - POST /auth/login: Authenticate; persists token and profile on success
//   - POST /auth/create-api-key: Mint an application key
//   - GET /social/posts: Post feed with author and count expansions
//   - GET /social/posts/{id}: Single post
//   - POST /social/posts: Create a post
//   - PUT /social/posts/{id}: Update a post
//   - DELETE /social/posts/{id}: Delete a post
//   - GET /social/posts/search?q=: Server-side search
//   - GET /social/profiles/{name}/posts: Posts owned by a profile
//
// List endpoints always request _author, _comments, and _reactions
// expansions so the feed can render bylines and engagement counts.
//
// # Authentication
//
// Resource routes attach two credentials:
//
//   - Authorization: Bearer <token> read from the session store
//   - X-Noroff-API-Key: the configured application key
//
// The auth routes (register, login) send neither. Login splits the access
// token out of the response payload and hands token and profile to the
// session store separately, so the stored profile never carries the token.
//
// # Error Handling
//
// Every operation returns either a decoded value or a *Error. The Kind field
// discriminates the failure:
//
//   - KindBadRequest: 400 with a message extracted from the response body
//   - KindUnauthorized: 401, always the same fixed message
//   - KindUnknown: any other non-2xx status, a fixed retry message
//   - KindTransport: network failure, decode failure, or a malformed error
//     body; the message is the per-operation fallback
//
// The message on the error is exactly what the UI displays. Wrapped causes
// are for logs only.
//
// # Validation
//
// Register, login, and post payloads are validated before any request is
// issued. Violations come back as KindBadRequest errors with a field-level
// message, so the UI treats them identically to server rejections.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. Each call marks itself in
// flight on the optional activity tracker and releases on return.
package social
