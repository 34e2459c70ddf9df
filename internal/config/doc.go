// Package config loads jot's configuration file.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/jot/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Missing or blank fields use defaults
//
// # TOML Format
//
//	service_base_url = "http://localhost:3000"
//	request_timeout = "5s"
//	strict_list = false
//	log_file = "~/.local/share/jot/jot.log"   # "-" turns logging off
//	log_level = "info"
//
// Every field is optional. service_base_url may carry a path prefix, which
// the client keeps in front of /api/. strict_list makes a failed list show up
// as an error instead of being logged and ignored.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, and values that do
// not parse (request_timeout, log_level). A missing file is not an error.
package config
