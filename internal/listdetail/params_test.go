package listdetail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListViewParams_CacheKeyDeterministic(t *testing.T) {
	a := ListViewParams{Query: "acme", Page: 2, PerPage: 20, SortField: "name",
		Filters: map[string]string{"status": "active", "region": "eu", "tier": "gold"}}
	b := ListViewParams{Query: "acme", Page: 2, PerPage: 20, SortField: "name", SortDirection: SortAsc,
		Filters: map[string]string{"tier": "gold", "region": "eu", "status": "active"}}

	for range 20 {
		assert.Equal(t, a.CacheKey("clients"), b.CacheKey("clients"))
	}
	assert.True(t, a.Equal(b))
}

func TestListViewParams_CacheKeyDistinguishes(t *testing.T) {
	base := ListViewParams{Page: 1, PerPage: 20}

	assert.NotEqual(t, base.CacheKey("clients"), base.CacheKey("folders"), "keys are namespaced")
	assert.NotEqual(t, base.CacheKey("clients"), base.WithPage(2).CacheKey("clients"))
	assert.NotEqual(t, base.CacheKey("clients"), base.WithQuery("x").CacheKey("clients"))
	assert.NotEqual(t, base.CacheKey("clients"),
		base.WithFilters(map[string]string{"status": "active"}).CacheKey("clients"))
	assert.Contains(t, base.CacheKey(""), "default:list:")
}

func TestListViewParams_Normalize(t *testing.T) {
	p := ListViewParams{Query: "  acme ", Page: -3, PerPage: 0, SortDirection: "sideways"}.Normalize()

	assert.Equal(t, "acme", p.Query)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, SortAsc, p.SortDirection)
}

func TestListViewParams_WithPerPageKeepsFirstRow(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		from, to int
		wantPage int
	}{
		{name: "page 3 of 20s to 50s", page: 3, from: 20, to: 50, wantPage: 1},
		{name: "page 5 of 20s to 50s", page: 5, from: 20, to: 50, wantPage: 2},
		{name: "page 2 of 50s to 10s", page: 2, from: 50, to: 10, wantPage: 6},
		{name: "invalid size uses default", page: 1, from: 20, to: 0, wantPage: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListViewParams{Page: tt.page, PerPage: tt.from}.WithPerPage(tt.to)
			assert.Equal(t, tt.wantPage, got.Page)
		})
	}
}

func TestListViewParams_WithMethodsDoNotShareFilters(t *testing.T) {
	orig := ListViewParams{Page: 4, Filters: map[string]string{"status": "active"}}

	next := orig.WithFilters(map[string]string{"status": "lead", "owner": ""})
	next.Filters["extra"] = "x"

	assert.Equal(t, map[string]string{"status": "active"}, orig.Filters)
	assert.Equal(t, 1, next.Page)
	assert.NotContains(t, next.Filters, "owner", "empty values drop the filter")

	sorted := orig.WithSort("name", SortDesc)
	assert.Equal(t, 1, sorted.Page)
	assert.Equal(t, SortDesc, sorted.SortDirection)
	assert.Equal(t, SortAsc, sorted.SortDirection.Flip())
}

func TestListViewResponse_Normalize(t *testing.T) {
	resp := NewListViewResponse([]row{{ID: "1"}, {ID: "2"}}, 100, 1, 20)
	assert.Equal(t, 5, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.False(t, resp.HasPrevious)

	last := NewListViewResponse[row](nil, 100, 5, 20)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
	assert.NotNil(t, last.Data)

	empty := NewListViewResponse[row](nil, 0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)

	assert.Equal(t, 3, TotalPages(41, 20))
}
