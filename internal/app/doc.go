// Package app provides the orchestration layer for the quill application.
//
// # Overview
//
// This package wires together configuration, logging, preferences, the
// session store, the API client, and the UI to create the complete quill
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Startup Sequence
//
//  1. Load configuration from ~/.config/quill/config.toml
//  2. Initialize file-based logging (the terminal belongs to the UI)
//  3. Load user preferences (theme, sort order)
//  4. Open the session store under the data directory
//  5. Build the API client with the session store and activity tracker
//  6. Resolve the optional start path to an initial view
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Error Handling
//
// Fatal errors returned from Run:
//
//   - Configuration file present but invalid
//   - Log file cannot be created
//   - Session store cannot be opened
//   - Client initialization failure
//
// Recoverable conditions handled without aborting:
//
//   - Missing configuration file (defaults apply)
//   - Missing or malformed preferences file (defaults apply)
//   - Unknown start path (the UI opens on its default view)
//
// # Options
//
//   - ConfigPath: Path to config.toml (default: ~/.config/quill/config.toml)
//   - PrefsPath: Path to prefs.toml (default: ~/.config/quill/prefs.toml)
//   - OpenPath: Location path selecting the initial view, e.g. /feed or
//     /feed/post/42
package app
