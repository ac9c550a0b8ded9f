package listdetail

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
)

type row struct {
	ID   string
	Name string
}

func (r row) EntityID() EntityID { return EntityID(r.ID) }

type record struct {
	Name  string
	Email string
}

// fakeAPI serves pages from an in-memory table and records every call.
type fakeAPI struct {
	mu          sync.Mutex
	rows        []row
	listCalls   []ListViewParams
	detailCalls []EntityID
	listErrs    []error
	detailErrs  []error
	listHook    func(ListViewParams)
	detailHook  func(EntityID)
}

func newFakeAPI(n int) *fakeAPI {
	rows := make([]row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, row{ID: fmt.Sprint(i), Name: fmt.Sprintf("client %d", i)})
	}
	return &fakeAPI{rows: rows}
}

func (f *fakeAPI) failList(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErrs = append(f.listErrs, errs...)
}

func (f *fakeAPI) failDetail(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailErrs = append(f.detailErrs, errs...)
}

func (f *fakeAPI) setRows(n int) {
	next := newFakeAPI(n)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = next.rows
}

func (f *fakeAPI) loadList(_ context.Context, params ListViewParams) (ListViewResponse[row], error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, params)
	var err error
	if len(f.listErrs) > 0 {
		err = f.listErrs[0]
		f.listErrs = f.listErrs[1:]
	}
	hook := f.listHook
	var matched []row
	for _, r := range f.rows {
		if params.Query == "" || strings.Contains(r.Name, params.Query) {
			matched = append(matched, r)
		}
	}
	f.mu.Unlock()

	if hook != nil {
		hook(params)
	}
	if err != nil {
		return ListViewResponse[row]{}, err
	}
	start := min((params.Page-1)*params.PerPage, len(matched))
	end := min(start+params.PerPage, len(matched))
	return NewListViewResponse(append([]row(nil), matched[start:end]...), len(matched), params.Page, params.PerPage), nil
}

func (f *fakeAPI) loadDetail(_ context.Context, id EntityID) (DetailViewData[record], error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, id)
	var err error
	if len(f.detailErrs) > 0 {
		err = f.detailErrs[0]
		f.detailErrs = f.detailErrs[1:]
	}
	hook := f.detailHook
	f.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	if err != nil {
		return DetailViewData[record]{}, err
	}
	name := "client " + string(id)
	return DetailViewData[record]{
		ID:     id,
		Title:  name,
		Record: record{Name: name, Email: string(id) + "@example.com"},
		Tabs: []DetailTab{
			{ID: "overview", Label: "Overview", Content: FieldsContent{Fields: []DetailField{{Label: "Name", Value: name}}}},
		},
	}, nil
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls)
}

func (f *fakeAPI) lastList() ListViewParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.listCalls) == 0 {
		return ListViewParams{}
	}
	return f.listCalls[len(f.listCalls)-1]
}

func (f *fakeAPI) detailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.detailCalls)
}

func newTestContext(t *testing.T, api *fakeAPI, clock clockwork.Clock, configure ...func(*Options[row, record])) *Context[row, record] {
	t.Helper()
	opts := Options[row, record]{
		EntityType:    "clients",
		Cache:         DefaultCacheConfig(),
		SelectionMode: SelectionMultiple,
		LoadList:      api.loadList,
		LoadDetail:    api.loadDetail,
		Clock:         clock,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	c := New(opts)
	t.Cleanup(c.Close)
	return c
}

func ids(items []row) []EntityID {
	out := make([]EntityID, 0, len(items))
	for _, item := range items {
		out = append(out, item.EntityID())
	}
	return out
}
