package poller_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/host"
	"github.com/j2h4u/beeminder-wordcount/internal/poller"
)

// fakeWorkspace returns whatever view is currently set.
type fakeWorkspace struct {
	mu    sync.Mutex
	view  host.View
	calls int
}

func (w *fakeWorkspace) set(v host.View) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = v
}

func (w *fakeWorkspace) ActiveView() (host.View, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	return w.view, w.view != nil
}

func (w *fakeWorkspace) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

func TestPoller_Tick(t *testing.T) {
	ws := &fakeWorkspace{}
	p := poller.New(ws, time.Hour)

	_, ok := p.Tick()
	assert.False(t, ok, "no active view")

	ws.set(host.StaticView{DisplayTitle: "Notes"})
	_, ok = p.Tick()
	assert.False(t, ok, "view without selection")

	ws.set(host.StaticView{DisplayTitle: "Notes", Selected: "  three little words "})
	m, ok := p.Tick()
	require.True(t, ok)
	assert.Equal(t, poller.Measurement{WordCount: 3, Title: "Notes"}, m)
}

func TestPoller_EmitsWhileRunning(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.set(host.StaticView{DisplayTitle: "Draft", Selected: "one two"})

	p := poller.New(ws, 5*time.Millisecond)
	p.Start()
	defer p.Stop()

	select {
	case m := <-p.Measurements():
		assert.Equal(t, 2, m.WordCount)
		assert.Equal(t, "Draft", m.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no measurement received")
	}
}

// TestPoller_NoTicksAfterStop verifies teardown stops all measurement.
func TestPoller_NoTicksAfterStop(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.set(host.StaticView{DisplayTitle: "Draft", Selected: "words"})

	p := poller.New(ws, 2*time.Millisecond)
	p.Start()
	p.Start() // second start is a no-op
	require.Eventually(t, func() bool { return ws.callCount() > 0 }, 2*time.Second, time.Millisecond)

	p.Stop()
	calls := ws.callCount()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, ws.callCount(), "workspace consulted after Stop")
	select {
	case m := <-p.Measurements():
		t.Fatalf("unexpected measurement after Stop: %+v", m)
	default:
	}

	p.Stop() // stopping twice is a no-op
}

func TestPoller_DefaultInterval(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, poller.DefaultInterval)
}
