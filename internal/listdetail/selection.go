package listdetail

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// SelectionMode is fixed for the lifetime of a Context.
type SelectionMode int

const (
	SelectionNone SelectionMode = iota
	SelectionSingle
	SelectionMultiple
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionSingle:
		return "single"
	case SelectionMultiple:
		return "multiple"
	default:
		return "none"
	}
}

// ParseSelectionMode accepts "none", "single" or "multiple".
func ParseSelectionMode(value string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return SelectionNone, nil
	case "single":
		return SelectionSingle, nil
	case "multiple", "multi":
		return SelectionMultiple, nil
	default:
		return SelectionNone, zerr.With(zerr.Wrap(ErrUnknownSelectionMode, strconv.Quote(value)), "value", value)
	}
}

// Selection tracks marked ids under a fixed mode. Ids keep the order in
// which they were selected.
type Selection struct {
	mode SelectionMode
	ids  []EntityID
}

// NewSelection returns an empty selection.
func NewSelection(mode SelectionMode) *Selection {
	return &Selection{mode: mode, ids: []EntityID{}}
}

// Mode returns the configured mode.
func (s *Selection) Mode() SelectionMode { return s.mode }

// Select marks id. Single mode replaces, multiple mode toggles and none
// ignores the call. It reports whether anything changed.
func (s *Selection) Select(id EntityID) bool {
	switch s.mode {
	case SelectionSingle:
		if len(s.ids) == 1 && s.ids[0] == id {
			return false
		}
		s.ids = []EntityID{id}
		return true
	case SelectionMultiple:
		if i := slices.Index(s.ids, id); i >= 0 {
			s.ids = slices.Delete(s.ids, i, i+1)
			return true
		}
		s.ids = append(s.ids, id)
		return true
	default:
		return false
	}
}

// SelectAll sets the selection to exactly ids. Only multiple mode honours it.
func (s *Selection) SelectAll(ids []EntityID) bool {
	if s.mode != SelectionMultiple {
		return false
	}
	next := make([]EntityID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	if slices.Equal(next, s.ids) {
		return false
	}
	s.ids = next
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() bool {
	if len(s.ids) == 0 {
		return false
	}
	s.ids = []EntityID{}
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id EntityID) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids; never nil.
func (s *Selection) IDs() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

// SelectionState is the published form of a Selection.
type SelectionState struct {
	Mode SelectionMode
	IDs  []EntityID
}

// Has reports whether id is selected.
func (s SelectionState) Has(id EntityID) bool {
	return slices.Contains(s.IDs, id)
}

// Single returns the id selected in single mode.
func (s SelectionState) Single() (EntityID, bool) {
	if s.Mode != SelectionSingle || len(s.IDs) == 0 {
		return "", false
	}
	return s.IDs[0], true
}

func (s *Selection) state() SelectionState {
	return SelectionState{Mode: s.mode, IDs: s.IDs()}
}
