// Package session persists login credentials between runs.
//
// # Overview
//
// The store is a small Badger-backed key/value database holding two values:
// the bearer token and the cached profile summary. Values are stored as
// JSON so both share one access path.
//
// # Semantics
//
//   - SaveLogin writes token and profile under separate keys; the token
//     never appears inside the stored profile value
//   - Token and Profile report absence with a false second return rather
//     than an error
//   - Malformed stored JSON propagates as an error for the caller to handle
//   - Clear removes both keys and is idempotent, as is Remove
//
// # Durability
//
// The database lives under the configured data directory and survives
// restarts: a stored token lets the UI skip the auth screen on the next
// launch. Open creates the directory when missing.
package session
