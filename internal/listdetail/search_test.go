package listdetail

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvQuery(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case q := <-ch:
		return q
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for commit")
		return ""
	}
}

func assertNoCommit(t *testing.T, ch <-chan string) {
	t.Helper()
	select {
	case q := <-ch:
		t.Fatalf("unexpected commit %q", q)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSearchController_DebouncesTrailingEdge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	s := NewSearchController(clock, 0, func(q string) { commits <- q })

	s.Set("a")
	clock.Advance(100 * time.Millisecond)
	s.Set("ab")
	clock.Advance(100 * time.Millisecond)
	s.Set("abc")
	assert.Equal(t, "abc", s.Text(), "text is visible immediately")
	assert.True(t, s.Pending())

	clock.Advance(DefaultSearchDelay - time.Millisecond)
	assertNoCommit(t, commits)

	clock.Advance(time.Millisecond)
	assert.Equal(t, "abc", recvQuery(t, commits))
	assertNoCommit(t, commits)

	require.Eventually(t, func() bool { return !s.Pending() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "abc", s.Committed())
}

func TestSearchController_UnchangedQueryIsNotCommitted(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	s := NewSearchController(clock, time.Second, func(q string) { commits <- q })

	s.Set("acme")
	clock.Advance(time.Second)
	assert.Equal(t, "acme", recvQuery(t, commits))

	s.Set("acme ")
	clock.Advance(time.Second)
	assertNoCommit(t, commits)
}

func TestSearchController_ClearBypassesDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	s := NewSearchController(clock, 0, func(q string) { commits <- q })

	s.Set("acme")
	s.Flush()
	assert.Equal(t, "acme", recvQuery(t, commits))

	s.Set("acm")
	s.Clear()
	assert.Equal(t, "", recvQuery(t, commits))
	assert.Equal(t, "", s.Text())
	assert.False(t, s.Pending())

	// The cancelled timer must not fire afterwards.
	clock.Advance(time.Second)
	assertNoCommit(t, commits)
}

func TestSearchController_SettingEmptyTextIsDebounced(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	s := NewSearchController(clock, 0, func(q string) { commits <- q })

	s.Set("acme")
	s.Flush()
	recvQuery(t, commits)

	s.Set("")
	assertNoCommit(t, commits)
	clock.Advance(DefaultSearchDelay)
	assert.Equal(t, "", recvQuery(t, commits))
}

func TestSearchController_ResetDoesNotCommit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	commits := make(chan string, 10)
	s := NewSearchController(clock, 0, func(q string) { commits <- q })

	s.Set("draft")
	s.Reset("acme")
	assert.Equal(t, "acme", s.Text())
	assert.Equal(t, "acme", s.Committed())
	assert.False(t, s.Pending())

	clock.Advance(time.Second)
	assertNoCommit(t, commits)

	s.Clear()
	assert.Equal(t, "", recvQuery(t, commits))
}
