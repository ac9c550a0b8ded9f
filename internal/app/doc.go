// Package app provides the orchestration layer for clientdesk.
//
// # Overview
//
// This package wires configuration, preferences, the clients API, the
// list-detail context and the UI together. It is the composition root: every
// dependency is built here and handed to the pieces that use it.
//
// # Startup
//
//  1. Open the file logger from config (log_file, log_level)
//  2. Load user preferences and layer them over the config's list defaults
//  3. Build the API client and wrap it in a clients.Adapter
//  4. Create the list-detail context for clients
//  5. Under one errgroup: mount the context, run the background refresher and
//     run the TUI; when the TUI exits the other two are cancelled
//  6. Save preferences, including the last page size and sort
//
// # Background Refresh
//
// The refresher reloads the current page every poll interval (default 30
// seconds), bypassing the cache. Ticks are skipped while a load or a search
// debounce is in flight, and before the first page has been shown. After a
// failed reload the wait doubles per consecutive failure, capped at five
// minutes, and drops back to the poll interval on the next success.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - log file cannot be opened or the log level is unknown
//   - the API URL cannot be parsed
//   - the TUI fails to start
//
// Recoverable errors are owned by the list-detail context: a failed load is
// recorded in its state, shown by the UI and retried by the refresher.
package app
