package listdetail

import (
	"fmt"
	"maps"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SortDirection orders a list page.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// DefaultPerPage is used when params carry no page size.
const DefaultPerPage = 20

// ListViewParams describes one list request. It is a value object: the With
// methods return modified copies and never touch the receiver's filter map.
type ListViewParams struct {
	Query         string            `json:"query"`
	Page          int               `json:"page"`
	PerPage       int               `json:"per_page"`
	SortField     string            `json:"sort_field"`
	SortDirection SortDirection     `json:"sort_direction"`
	Filters       map[string]string `json:"filters,omitempty"`
}

// Normalize clamps page and page size and defaults the sort direction.
func (p ListViewParams) Normalize() ListViewParams {
	out := p.clone()
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PerPage <= 0 {
		out.PerPage = DefaultPerPage
	}
	if out.SortDirection != SortDesc {
		out.SortDirection = SortAsc
	}
	out.Query = strings.TrimSpace(out.Query)
	return out
}

// WithQuery returns a copy with a new query and the page reset to 1.
func (p ListViewParams) WithQuery(query string) ListViewParams {
	out := p.clone()
	out.Query = strings.TrimSpace(query)
	out.Page = 1
	return out
}

// WithPage returns a copy pointing at page.
func (p ListViewParams) WithPage(page int) ListViewParams {
	out := p.clone()
	out.Page = page
	return out.Normalize()
}

// WithPerPage returns a copy with a new page size. The page is moved so the
// first row that was visible stays on screen.
func (p ListViewParams) WithPerPage(perPage int) ListViewParams {
	out := p.Normalize()
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	firstRow := (out.Page - 1) * out.PerPage
	out.PerPage = perPage
	out.Page = firstRow/perPage + 1
	return out
}

// WithSort returns a copy sorted by field in dir, back on page 1.
func (p ListViewParams) WithSort(field string, dir SortDirection) ListViewParams {
	out := p.clone()
	out.SortField = strings.TrimSpace(field)
	out.SortDirection = dir
	out.Page = 1
	return out.Normalize()
}

// WithFilters returns a copy with filters replaced, back on page 1. Empty
// values drop the filter.
func (p ListViewParams) WithFilters(filters map[string]string) ListViewParams {
	out := p.clone()
	out.Filters = nil
	for k, v := range filters {
		k = strings.TrimSpace(k)
		if k == "" || strings.TrimSpace(v) == "" {
			continue
		}
		if out.Filters == nil {
			out.Filters = make(map[string]string, len(filters))
		}
		out.Filters[k] = v
	}
	out.Page = 1
	return out
}

// Canonical serializes the params deterministically. Structurally equal
// params always produce the same string regardless of map iteration order.
func (p ListViewParams) Canonical() string {
	n := p.Normalize()
	values := url.Values{}
	values.Set("q", n.Query)
	values.Set("page", strconv.Itoa(n.Page))
	values.Set("per_page", strconv.Itoa(n.PerPage))
	values.Set("sort", n.SortField)
	values.Set("dir", string(n.SortDirection))
	for k, v := range n.Filters {
		values.Set("f."+k, v)
	}
	// Encode sorts by key.
	return values.Encode()
}

// CacheKey returns the list cache key for these params inside namespace.
func (p ListViewParams) CacheKey(namespace string) string {
	return fmt.Sprintf("%s:list:%016x", namespaceOrDefault(namespace), xxhash.Sum64String(p.Canonical()))
}

// Equal reports whether both params canonicalize identically.
func (p ListViewParams) Equal(other ListViewParams) bool {
	return p.Canonical() == other.Canonical()
}

func (p ListViewParams) clone() ListViewParams {
	out := p
	if p.Filters != nil {
		out.Filters = maps.Clone(p.Filters)
	}
	return out
}

func detailCacheKey(namespace string, id EntityID) string {
	return fmt.Sprintf("%s:detail:%s", namespaceOrDefault(namespace), id)
}

func namespaceOrDefault(namespace string) string {
	if strings.TrimSpace(namespace) == "" {
		return "default"
	}
	return namespace
}
