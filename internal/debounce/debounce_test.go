package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncer_RunsLastTriggerOnce(t *testing.T) {
	var r recorder
	d := New(20*time.Millisecond, r.record)

	d.Trigger("n")
	d.Trigger("ne")
	d.Trigger("net")

	require.Eventually(t, func() bool { return len(r.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"net"}, r.snapshot())
	assert.False(t, d.Pending())

	// Nothing else fires later.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, r.snapshot(), 1)
}

func TestDebouncer_Flush(t *testing.T) {
	var r recorder
	d := New(time.Hour, r.record)

	assert.False(t, d.Flush())
	d.Trigger("query")
	assert.True(t, d.Pending())
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"query"}, r.snapshot())
	assert.False(t, d.Flush())
}

func TestDebouncer_Stop(t *testing.T) {
	var r recorder
	d := New(10*time.Millisecond, r.record)

	d.Trigger("discarded")
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(40 * time.Millisecond)
	assert.Empty(t, r.snapshot())

	d.Trigger("kept")
	require.Eventually(t, func() bool { return len(r.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"kept"}, r.snapshot())
}
