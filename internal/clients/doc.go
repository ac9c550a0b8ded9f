// Package clients provides an HTTP client for the clients REST API and the
// adapter that plugs it into the list-detail engine.
//
// # Overview
//
// The package is split into three files:
//
//   - client.go: HTTP client, request coalescing and error mapping
//   - types.go: data structures mirroring the API schema
//   - adapter.go: LoadList/LoadDetail collaborators and detail tab layout
//
// # API Endpoints
//
//   - GET /api/clients?q=&page=&per_page=&sort=&order=&<filter>=: one page of
//     Summary rows in the list envelope (data, total, page, per_page)
//   - GET /api/clients/:id: one Record
//
// Paging fields derived from total (total_pages, has_next, has_previous) are
// recomputed locally, so a server that omits or miscomputes them still
// produces a consistent Page.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: clientdesk/0.1
//   - Send Authorization: Bearer <token> when a token is configured
//   - Have a 10-second timeout (configurable via WithHTTPClient)
//
// Identical GETs that overlap share one round trip (singleflight keyed by the
// full URL). Each caller decodes its own copy of the body.
//
// # Error Handling
//
// Errors carry zerr metadata and wrap one of the package sentinels:
//
//   - ErrStatus: 4xx/5xx responses; StatusCode(err) returns the code
//   - ErrNotFound: 404 from GetClient
//   - ErrDecode: malformed JSON
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api request failed: /api/clients returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// # Thread Safety
//
// Client and Adapter are safe for concurrent use.
package clients
