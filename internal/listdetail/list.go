package listdetail

import (
	"maps"
)

type loadKind int

const (
	loadPlain loadKind = iota
	// loadPageChange reverts the page number when the load fails.
	loadPageChange
	// loadForce skips the cache.
	loadForce
)

// Load fetches the page described by params and makes it current. A fresh
// cached response is used without calling the list loader. When a newer load
// starts before this one returns, this one's result is still returned and
// cached but never becomes current state.
func (c *Context[T, D]) Load(params ListViewParams) (ListViewResponse[T], error) {
	return c.load(params, loadPlain)
}

// LoadPage moves to page, clamped to the known page range.
func (c *Context[T, D]) LoadPage(page int) {
	c.mu.Lock()
	params := c.st.Params
	if c.st.HasList && c.st.List.TotalPages > 0 && page > c.st.List.TotalPages {
		page = c.st.List.TotalPages
	}
	c.mu.Unlock()

	_, _ = c.load(params.WithPage(page), loadPageChange)
}

// NextPage loads the following page if there is one.
func (c *Context[T, D]) NextPage() {
	c.mu.Lock()
	params := c.st.Params
	ok := !c.st.HasList || c.st.List.HasNext
	c.mu.Unlock()
	if !ok {
		return
	}
	_, _ = c.load(params.WithPage(params.Page+1), loadPageChange)
}

// PrevPage loads the preceding page if there is one.
func (c *Context[T, D]) PrevPage() {
	c.mu.Lock()
	params := c.st.Params
	c.mu.Unlock()
	if params.Page <= 1 {
		return
	}
	_, _ = c.load(params.WithPage(params.Page-1), loadPageChange)
}

// SetPerPage changes the page size, keeping the first visible row on screen
// where the known total allows it.
func (c *Context[T, D]) SetPerPage(perPage int) {
	c.mu.Lock()
	params := c.st.Params.WithPerPage(perPage)
	if c.st.HasList {
		if pages := TotalPages(c.st.List.Total, params.PerPage); pages > 0 && params.Page > pages {
			params.Page = pages
		}
	}
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

// SetSort orders the list by field and returns to page 1.
func (c *Context[T, D]) SetSort(field string, dir SortDirection) {
	c.mu.Lock()
	params := c.st.Params.WithSort(field, dir)
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

// SetFilters replaces the active filters and returns to page 1.
func (c *Context[T, D]) SetFilters(filters map[string]string) {
	c.mu.Lock()
	params := c.st.Params.WithFilters(filters)
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

// SetFilter sets or, with an empty value, removes one filter.
func (c *Context[T, D]) SetFilter(key, value string) {
	c.mu.Lock()
	filters := maps.Clone(c.st.Params.Filters)
	c.mu.Unlock()

	if filters == nil {
		filters = map[string]string{}
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	c.SetFilters(filters)
}

// SetSearchQuery updates the search text shown to the user. The list is
// reloaded once typing settles.
func (c *Context[T, D]) SetSearchQuery(text string) {
	c.search.Set(text)
	c.publishSearch()
}

// ClearSearch empties the search text and reloads without delay.
func (c *Context[T, D]) ClearSearch() {
	c.search.Clear()

	c.mu.Lock()
	filtered := c.st.Params.Query != ""
	c.mu.Unlock()
	if filtered {
		c.commitQuery("")
	}
	c.publishSearch()
}

// FlushSearch commits the typed text now.
func (c *Context[T, D]) FlushSearch() {
	c.search.Flush()
	c.publishSearch()
}

// RefreshList repeats the current request. A fresh cached page is reused.
func (c *Context[T, D]) RefreshList() {
	c.mu.Lock()
	params := c.st.Params
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

// ReloadList repeats the current request, bypassing the cache.
func (c *Context[T, D]) ReloadList() {
	c.mu.Lock()
	params := c.st.Params
	c.mu.Unlock()

	_, _ = c.load(params, loadForce)
}

// InvalidateCache drops every cached list page and detail for this Context.
func (c *Context[T, D]) InvalidateCache() {
	c.cache.InvalidatePrefix(c.entityType + ":")
	c.mu.Lock()
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Context[T, D]) commitQuery(query string) {
	c.mu.Lock()
	params := c.st.Params.WithQuery(query)
	c.mu.Unlock()

	_, _ = c.load(params, loadPlain)
}

func (c *Context[T, D]) publishSearch() {
	c.mu.Lock()
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Context[T, D]) load(params ListViewParams, kind loadKind) (ListViewResponse[T], error) {
	return c.loadFrom(params, kind, 0)
}

// loadFrom is load with the page a failed page change falls back to. Zero
// means the page current when the load starts; a corrected retry passes the
// page from before the original change.
func (c *Context[T, D]) loadFrom(params ListViewParams, kind loadKind, revertPage int) (ListViewResponse[T], error) {
	params = params.Normalize()
	if c.loadList == nil {
		return ListViewResponse[T]{}, ErrNoListLoader
	}
	key := params.CacheKey(c.entityType)

	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	if revertPage == 0 {
		revertPage = c.st.Params.Page
	}
	c.st.Params = params
	if kind == loadForce {
		c.cache.Invalidate(key)
	}
	if cached, ok := c.cache.Get(key); ok {
		if resp, ok := cached.(ListViewResponse[T]); ok {
			if fixed, retry := c.pageOutOfRange(params, resp); retry {
				c.mu.Unlock()
				return c.loadFrom(fixed, kind, revertPage)
			}
			c.applyListLocked(resp)
			snap := c.publishLocked()
			c.mu.Unlock()
			c.log.Debug().Str("key", key).Int("page", params.Page).Msg("list cache hit")
			c.notify(snap)
			return resp.clone(), nil
		}
	}
	c.st.ListLoading = true
	c.st.ListError = ""
	c.st.ListErrorKind = NoError
	ctx := c.ctxLocked()
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)

	c.log.Debug().Str("key", key).Str("query", params.Query).Int("page", params.Page).Msg("loading list")
	resp, err := c.loadList(ctx, params)
	if err == nil {
		resp = resp.Normalize()
		c.cache.Set(key, resp.clone(), c.cacheCfg.ListTTL)
	}

	c.mu.Lock()
	if seq != c.listSeq {
		c.mu.Unlock()
		c.log.Debug().Uint64("seq", seq).Msg("discarding superseded list response")
		return resp, err
	}
	if err != nil {
		c.st.ListLoading = false
		c.st.ListError = err.Error()
		c.st.ListErrorKind = ListLoadError
		c.st.ListFailures++
		if kind == loadPageChange {
			c.st.Params.Page = revertPage
			c.st.ListErrorKind = PaginationError
		}
		snap := c.publishLocked()
		c.mu.Unlock()
		c.log.Warn().Err(err).Int("page", params.Page).Msg("list load failed")
		c.notify(snap)
		return resp, err
	}
	if fixed, retry := c.pageOutOfRange(params, resp); retry {
		c.mu.Unlock()
		c.log.Debug().Int("page", params.Page).Int("total_pages", resp.TotalPages).Msg("page past end, reloading last page")
		return c.loadFrom(fixed, kind, revertPage)
	}
	c.applyListLocked(resp)
	snap = c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
	return resp.clone(), nil
}

// pageOutOfRange reports whether resp shows params asked for a page past the
// end, and returns params for the last real page.
func (c *Context[T, D]) pageOutOfRange(params ListViewParams, resp ListViewResponse[T]) (ListViewParams, bool) {
	last := max(resp.TotalPages, 1)
	if params.Page <= last {
		return params, false
	}
	return params.WithPage(last), true
}

func (c *Context[T, D]) applyListLocked(resp ListViewResponse[T]) {
	c.st.List = resp.clone()
	c.st.HasList = true
	c.st.ListLoading = false
	c.st.ListError = ""
	c.st.ListErrorKind = NoError
	c.st.ListFailures = 0
}
