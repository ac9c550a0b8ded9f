// Package config handles loading and parsing the clientdesk configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/clientdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Environment variables and command-line flags are layered on top by the
// cmd package; this package only knows about the file.
//
// # File Format
//
//	api_url = "https://crm.example.com"   # host:port or full URL
//	api_token = ""                        # sent as a bearer token when set
//	entity_type = "clients"               # cache namespace
//	per_page = 20
//	selection_mode = "multiple"           # none, single or multiple
//	poll_seconds = 30                     # background refresh cadence
//	log_file = "~/.local/state/clientdesk/clientdesk.log"
//	log_level = "info"
//
//	[cache]
//	enabled = true
//	list_ttl = 300                        # seconds
//	detail_ttl = 600                      # seconds
//	max_size = 100                        # entries
//
// # Error Handling
//
// A missing file is not an error. Malformed TOML, an unknown selection_mode or
// an unknown log_level fail with an error mentioning "parse config".
package config
