package listdetail

import "context"

// SelectItem opens id in the detail pane and loads its detail. Selecting the
// item that is already shown or loading does nothing; selecting it after a
// failed load retries. In single selection mode the selection follows the
// opened item.
func (c *Context[T, D]) SelectItem(id EntityID) {
	if id == "" {
		return
	}
	c.mu.Lock()
	if id == c.st.SelectedItemID && c.st.DetailError == "" &&
		(c.st.DetailLoading || (c.st.Detail != nil && c.st.Detail.ID == id)) {
		c.mu.Unlock()
		return
	}
	if c.selection.Mode() == SelectionSingle && c.selection.Select(id) {
		c.st.Selection = c.selection.state()
	}
	req, snap := c.beginDetailLocked(id, false)
	c.mu.Unlock()

	c.notify(snap)
	if req != nil {
		c.fetchDetail(*req)
	}
}

// RetryDetail reloads the selected item's detail, bypassing the cache.
func (c *Context[T, D]) RetryDetail() {
	c.mu.Lock()
	id := c.st.SelectedItemID
	if id == "" {
		c.mu.Unlock()
		return
	}
	req, snap := c.beginDetailLocked(id, true)
	c.mu.Unlock()

	c.notify(snap)
	if req != nil {
		c.fetchDetail(*req)
	}
}

// CloseDetail clears the opened item without touching the selection.
func (c *Context[T, D]) CloseDetail() {
	c.mu.Lock()
	if c.st.SelectedItemID == "" && c.st.Detail == nil && !c.st.DetailLoading {
		c.mu.Unlock()
		return
	}
	c.detailSeq++
	c.st.SelectedItemID = ""
	c.st.Detail = nil
	c.st.DetailLoading = false
	c.st.DetailError = ""
	c.st.DetailErrorKind = NoError
	snap := c.publishLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// detailRequest is a detail fetch that beginDetailLocked has claimed.
type detailRequest struct {
	id  EntityID
	key string
	seq uint64
	ctx context.Context
}

// beginDetailLocked makes id the opened item and either serves it from the
// cache or marks it loading. It returns a request only when the collaborator
// must be called. c.mu must be held, so the duplicate check in SelectItem and
// the loading flag it reads change together.
func (c *Context[T, D]) beginDetailLocked(id EntityID, force bool) (*detailRequest, State[T, D]) {
	key := detailCacheKey(c.entityType, id)

	c.detailSeq++
	c.st.SelectedItemID = id
	c.st.Detail = nil
	c.st.DetailError = ""
	c.st.DetailErrorKind = NoError
	if force {
		c.cache.Invalidate(key)
	}
	if cached, ok := c.cache.Get(key); ok {
		if detail, ok := cached.(DetailViewData[D]); ok {
			detail = detail.clone()
			c.st.Detail = &detail
			c.st.DetailLoading = false
			c.log.Debug().Str("id", string(id)).Msg("detail cache hit")
			return nil, c.publishLocked()
		}
	}
	if c.loadDetail == nil {
		c.st.DetailLoading = false
		c.st.DetailError = ErrNoDetailLoader.Error()
		c.st.DetailErrorKind = DetailLoadError
		return nil, c.publishLocked()
	}
	c.st.DetailLoading = true
	req := &detailRequest{id: id, key: key, seq: c.detailSeq, ctx: c.ctxLocked()}
	return req, c.publishLocked()
}

// fetchDetail calls the collaborator for req and applies the result unless a
// newer selection has superseded it.
func (c *Context[T, D]) fetchDetail(req detailRequest) {
	c.log.Debug().Str("id", string(req.id)).Msg("loading detail")
	detail, err := c.loadDetail(req.ctx, req.id)
	if err == nil {
		c.cache.Set(req.key, detail.clone(), c.cacheCfg.DetailTTL)
	}

	c.mu.Lock()
	if req.seq != c.detailSeq {
		c.mu.Unlock()
		c.log.Debug().Str("id", string(req.id)).Msg("discarding superseded detail response")
		return
	}
	c.st.DetailLoading = false
	if err != nil {
		c.st.DetailError = err.Error()
		c.st.DetailErrorKind = DetailLoadError
	} else {
		detail = detail.clone()
		c.st.Detail = &detail
	}
	snap := c.publishLocked()
	c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Str("id", string(req.id)).Msg("detail load failed")
	}
	c.notify(snap)
}
