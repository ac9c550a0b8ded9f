package listdetail

import "go.trai.ch/zerr"

// ErrorKind classifies a load failure recorded in State.
type ErrorKind int

const (
	NoError ErrorKind = iota
	// ListLoadError: the list collaborator failed; the previous page stays visible.
	ListLoadError
	// PaginationError: a page change failed; the page number was reverted.
	PaginationError
	// DetailLoadError: the detail collaborator failed; the selection is kept.
	DetailLoadError
)

func (k ErrorKind) String() string {
	switch k {
	case ListLoadError:
		return "list_load_error"
	case PaginationError:
		return "pagination_error"
	case DetailLoadError:
		return "detail_load_error"
	default:
		return "none"
	}
}

var (
	// ErrNoListLoader is returned when Options.LoadList is nil.
	ErrNoListLoader = zerr.New("no list loader configured")

	// ErrNoDetailLoader is returned when Options.LoadDetail is nil.
	ErrNoDetailLoader = zerr.New("no detail loader configured")

	// ErrUnknownSelectionMode is returned by ParseSelectionMode.
	ErrUnknownSelectionMode = zerr.New("unknown selection mode")
)
