package listdetail

import (
	"slices"
	"time"
)

// EntityID identifies one record of the entity a Context manages.
type EntityID string

// Entity is implemented by list rows so selection can address them.
type Entity interface {
	EntityID() EntityID
}

// ListViewResponse is one page of list data.
type ListViewResponse[T any] struct {
	Data        []T  `json:"data" yaml:"data"`
	Total       int  `json:"total" yaml:"total"`
	Page        int  `json:"page" yaml:"page"`
	PerPage     int  `json:"per_page" yaml:"per_page"`
	TotalPages  int  `json:"total_pages" yaml:"total_pages"`
	HasNext     bool `json:"has_next" yaml:"has_next"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
}

// NewListViewResponse builds a page and derives the paging fields.
func NewListViewResponse[T any](data []T, total, page, perPage int) ListViewResponse[T] {
	return ListViewResponse[T]{
		Data:    data,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}.Normalize()
}

// Normalize recomputes TotalPages, HasNext and HasPrevious from Total, Page
// and PerPage. Responses decoded from an API go through here so the paging
// invariants hold no matter what the server sent.
func (r ListViewResponse[T]) Normalize() ListViewResponse[T] {
	if r.Total < 0 {
		r.Total = 0
	}
	if r.PerPage <= 0 {
		r.PerPage = DefaultPerPage
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Data == nil {
		r.Data = []T{}
	}
	r.TotalPages = TotalPages(r.Total, r.PerPage)
	r.HasNext = r.Page < r.TotalPages
	r.HasPrevious = r.Page > 1
	return r
}

// TotalPages is ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func (r ListViewResponse[T]) clone() ListViewResponse[T] {
	r.Data = slices.Clone(r.Data)
	return r
}

// TabKind tags the content carried by a detail tab.
type TabKind string

const (
	TabFields TabKind = "fields"
	TabTable  TabKind = "table"
	TabText   TabKind = "text"
)

// TabContent is the typed body of a DetailTab.
type TabContent interface {
	Kind() TabKind
}

// DetailField is one labelled value.
type DetailField struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// FieldsContent renders as a label/value list.
type FieldsContent struct {
	Fields []DetailField `json:"fields" yaml:"fields"`
}

func (FieldsContent) Kind() TabKind { return TabFields }

// TableContent renders as rows under column headings.
type TableContent struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

func (TableContent) Kind() TabKind { return TabTable }

// TextContent is free text.
type TextContent struct {
	Text string `json:"text" yaml:"text"`
}

func (TextContent) Kind() TabKind { return TabText }

// DetailTab is a named section of a detail view.
type DetailTab struct {
	ID      string     `json:"id" yaml:"id"`
	Label   string     `json:"label" yaml:"label"`
	Content TabContent `json:"content" yaml:"content"`
}

// DetailAction is an operation the detail view may offer.
type DetailAction struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Destructive bool   `json:"destructive,omitempty" yaml:"destructive,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// DetailViewData is one item's full record plus presentation metadata.
type DetailViewData[D any] struct {
	ID        EntityID       `json:"id" yaml:"id"`
	Title     string         `json:"title" yaml:"title"`
	Subtitle  string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Record    D              `json:"record" yaml:"record"`
	Tabs      []DetailTab    `json:"tabs" yaml:"tabs"`
	Actions   []DetailAction `json:"actions" yaml:"actions"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Tab returns the tab with the given id.
func (d DetailViewData[D]) Tab(id string) (DetailTab, bool) {
	for _, tab := range d.Tabs {
		if tab.ID == id {
			return tab, true
		}
	}
	return DetailTab{}, false
}

// clone copies tabs and actions down to their rows. Record is copied by value
// only, so any slices or maps inside it stay shared.
func (d DetailViewData[D]) clone() DetailViewData[D] {
	d.Tabs = slices.Clone(d.Tabs)
	for i := range d.Tabs {
		d.Tabs[i].Content = cloneContent(d.Tabs[i].Content)
	}
	d.Actions = slices.Clone(d.Actions)
	return d
}

func cloneContent(content TabContent) TabContent {
	switch c := content.(type) {
	case FieldsContent:
		c.Fields = slices.Clone(c.Fields)
		return c
	case TableContent:
		c.Columns = slices.Clone(c.Columns)
		c.Rows = slices.Clone(c.Rows)
		for i := range c.Rows {
			c.Rows[i] = slices.Clone(c.Rows[i])
		}
		return c
	default:
		return content
	}
}
