package listdetail

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultSearchDelay is the quiet period before typed text is committed.
const DefaultSearchDelay = 300 * time.Millisecond

// SearchController debounces query text. Set updates the displayed text at
// once and commits it only after delay passes without another Set
// (trailing edge). Each Set cancels and re-arms the timer.
type SearchController struct {
	clock  clockwork.Clock
	delay  time.Duration
	commit func(query string)

	mu        sync.Mutex
	text      string
	committed string
	timer     clockwork.Timer
	gen       uint64 // bumped on every Set/Clear/Flush; a timer only commits its own generation
}

// NewSearchController returns a controller calling commit with each settled
// query. commit runs outside the controller's lock.
func NewSearchController(clock clockwork.Clock, delay time.Duration, commit func(query string)) *SearchController {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &SearchController{clock: clock, delay: delay, commit: commit}
}

// Set records text for display and (re)arms the debounce timer.
func (s *SearchController) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.delay, func() { s.fire(gen) })
}

// Clear empties the text and commits "" immediately, skipping the delay.
func (s *SearchController) Clear() {
	s.mu.Lock()
	s.text = ""
	s.stopLocked()
	changed := s.committed != ""
	s.committed = ""
	s.mu.Unlock()

	if changed && s.commit != nil {
		s.commit("")
	}
}

// Reset sets both the shown and the committed text to query without calling
// commit. It seeds the controller from a query that is already applied.
func (s *SearchController) Reset(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.text = query
	s.committed = strings.TrimSpace(query)
}

// Flush commits the pending text now instead of waiting for the timer.
func (s *SearchController) Flush() {
	s.mu.Lock()
	s.stopLocked()
	query, ok := s.takeLocked()
	s.mu.Unlock()

	if ok && s.commit != nil {
		s.commit(query)
	}
}

// Stop cancels any pending commit.
func (s *SearchController) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Text is what the input shows.
func (s *SearchController) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Committed is the last query handed to commit.
func (s *SearchController) Committed() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Pending reports whether typed text is waiting on the timer.
func (s *SearchController) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *SearchController) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	query, ok := s.takeLocked()
	s.mu.Unlock()

	if ok && s.commit != nil {
		s.commit(query)
	}
}

// takeLocked moves text to committed and reports whether it changed.
func (s *SearchController) takeLocked() (string, bool) {
	query := strings.TrimSpace(s.text)
	if query == s.committed {
		return query, false
	}
	s.committed = query
	return query, true
}

func (s *SearchController) stopLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
