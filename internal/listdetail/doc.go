// Package listdetail is the state engine behind a synchronized list and
// detail view.
//
// # Overview
//
// A Context owns everything one mounted entity view needs: the current list
// page and the parameters that produced it, the opened item's detail, the
// selection, the debounced search text, the viewport's layout mode and a
// response cache. Views never mutate that state directly. They call actions
// on the Context and render the State snapshots it publishes.
//
// The Context reaches the outside world only through two functions supplied
// at construction:
//
//	LoadList(ctx, ListViewParams) (ListViewResponse[T], error)
//	LoadDetail(ctx, EntityID) (DetailViewData[D], error)
//
// # Components
//
//   - cache.go: bounded TTL store with FIFO eviction
//   - search.go: trailing-edge debounce over an owned clockwork timer
//   - list.go: list loading, paging, sorting, filtering and search commits
//   - detail.go: detail loading with supersession of older requests
//   - selection.go: none/single/multiple selection rules
//   - responsive.go: width to layout mode mapping
//   - context.go: composition root, snapshots and listener delivery
//
// # Concurrency Model
//
// One mutex guards the Context's state. It is never held while a loader
// runs, so actions may overlap freely. Ordering is enforced with sequence
// numbers instead of cancellation:
//
//   - every list load takes the next list sequence number; its result is
//     applied only if no newer list load started meanwhile
//   - every detail fetch takes the next detail sequence number; a fetch for
//     another item supersedes it and its result is dropped
//
// Superseded results are still cached, so a quick return to the same page
// or item is served without another request.
//
// # Publishing
//
// Every state change bumps State.Version and delivers one snapshot to all
// listeners. Each listener gets its own copy of the same version: list data,
// selection, filters and detail tabs are cloned, while item values and the
// detail Record are copied by value and may share memory they point to.
// Delivery is serialized: a listener never sees a lower version after a
// higher one, and when changes arrive faster than listeners consume them
// intermediate versions may be skipped.
//
// # Error Handling
//
// Loader errors never escape an action. They are recorded in State:
//
//   - ListLoadError: the previous page stays visible (stale-while-error)
//   - PaginationError: as above, and the page number reverts
//   - DetailLoadError: the selected id is kept so RetryDetail can target it
//
// Failed loads are not cached.
package listdetail
