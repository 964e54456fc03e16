// Package config handles loading and parsing quill configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quill/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/quill/config.toml
//   - API base URL: https://v2.api.noroff.dev
//   - Data directory: ~/.local/share/quill
//   - Log file: <data_dir>/quill.log
//   - Session store: <data_dir>/session
//
// # TOML Format
//
// Example config.toml:
//
//	base_url = "https://v2.api.noroff.dev"
//	api_key = "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
//	data_dir = "~/.local/share/quill"
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed automatically for
// the config file location, data_dir, and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error: quill works out-of-the-box without
// one.
package config
