package listdetail

import (
	"slices"
	"time"
)

// State is the snapshot a Context publishes to its listeners. Every value in
// it is a copy; mutating it does not affect the Context or other listeners.
type State[T Entity, D any] struct {
	// Version increases with every publish. Listeners never receive a
	// lower version after a higher one.
	Version    uint64
	EntityType string

	Params        ListViewParams
	SearchText    string // what the search box shows; may run ahead of Params.Query
	SearchPending bool

	List          ListViewResponse[T]
	HasList       bool
	ListLoading   bool
	ListError     string
	ListErrorKind ErrorKind
	ListFailures  int // consecutive failed list loads

	SelectedItemID  EntityID
	Detail          *DetailViewData[D]
	DetailLoading   bool
	DetailError     string
	DetailErrorKind ErrorKind

	Selection  SelectionState
	Responsive ResponsiveState
	Cache      CacheStats

	LastUpdated time.Time
}

// Items returns the rows of the current page.
func (s State[T, D]) Items() []T {
	return s.List.Data
}

// IsOffline reports whether list loads have failed repeatedly.
func (s State[T, D]) IsOffline() bool {
	return s.ListFailures >= 2
}

// IsSelected reports whether id is marked in the selection.
func (s State[T, D]) IsSelected(id EntityID) bool {
	return s.Selection.Has(id)
}

// HasDetail reports whether a loaded detail matches the selected item.
func (s State[T, D]) HasDetail() bool {
	return s.Detail != nil && s.Detail.ID == s.SelectedItemID
}

// IndexOf returns the row index of id on the current page, or -1.
func (s State[T, D]) IndexOf(id EntityID) int {
	return slices.IndexFunc(s.List.Data, func(item T) bool { return item.EntityID() == id })
}

func (s State[T, D]) clone() State[T, D] {
	out := s
	out.Params = s.Params.clone()
	out.List = s.List.clone()
	if s.Detail != nil {
		detail := s.Detail.clone()
		out.Detail = &detail
	}
	out.Selection.IDs = slices.Clone(s.Selection.IDs)
	if out.Selection.IDs == nil {
		out.Selection.IDs = []EntityID{}
	}
	return out
}
