// Package ui provides the clientdesk terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program rendered with Lipgloss. It owns no data: all
// list, detail, search and selection state lives in a list-detail Controller
// (normally a *listdetail.Context for clients), and the UI renders the
// snapshots that controller publishes.
//
// # Event Flow
//
//  1. New subscribes to the controller; each published State is pushed into a
//     one-slot feed that keeps only the newest snapshot
//  2. A waiting command turns the feed into stateMsg values; older versions
//     are dropped
//  3. Key presses map to controller actions, run inside tea.Cmds because
//     they may block on the network
//  4. Window resizes call SetViewportWidth with the terminal width scaled to
//     pixels, which picks the mobile, tablet or desktop layout
//
// # Layouts
//
//   - mobile: the list fills the screen; opening a client replaces it
//   - tablet: the list fills the screen until a client is opened, then splits
//   - desktop: list and detail are always side by side
//
// # Package Structure
//
//   - app.go: Model, Controller interface, key handling and Run
//   - header.go: status bar and command bar
//   - list.go: list pane rows and pane layout
//   - detail.go: detail pane with tabs, tables and actions
//   - help.go: help overlay
//   - keys.go, layout.go, theme.go, style_helpers.go: bindings, sizing and styling
package ui
