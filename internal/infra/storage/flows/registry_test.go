package flows

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
	"github.com/m04kA/Kelale-BookingPortal/pkg/logger"
)

type gauge struct {
	mu sync.Mutex
	n  int
}

func (g *gauge) SetOpenFlows(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = n
}

func (g *gauge) value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func TestRegistry_OpenGetRemove(t *testing.T) {
	g := &gauge{}
	r := NewRegistry(time.Minute, g, logger.Nop())

	f, err := r.Open("r1", "", workflow.Dependencies{})
	require.NoError(t, err)
	require.NotEmpty(t, f.ID())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, g.value())

	got, err := r.Get(f.ID())
	require.NoError(t, err)
	assert.Same(t, f, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrFlowNotFound)

	require.NoError(t, r.Remove(f.ID()))
	assert.True(t, f.Closed())
	assert.Equal(t, 0, g.value())
	assert.ErrorIs(t, r.Remove(f.ID()), ErrFlowNotFound)
}

func TestRegistry_SweepEvictsIdleFlows(t *testing.T) {
	start := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	c := &clock{t: start}
	r := NewRegistry(30*time.Minute, nil, logger.Nop())

	stale := workflow.New(NewID(), "r1", "", workflow.Dependencies{Clock: c})
	require.NoError(t, r.Add(stale))

	c.t = start.Add(20 * time.Minute)
	fresh := workflow.New(NewID(), "r2", "", workflow.Dependencies{Clock: c})
	require.NoError(t, r.Add(fresh))

	evicted := r.Sweep(start.Add(40 * time.Minute))
	assert.Equal(t, 1, evicted)
	assert.True(t, stale.Closed())
	assert.False(t, fresh.Closed())

	_, err := r.Get(stale.ID())
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = r.Get(fresh.ID())
	assert.NoError(t, err)
}

func TestRegistry_CloseAll(t *testing.T) {
	r := NewRegistry(time.Minute, nil, logger.Nop())
	a, err := r.Open("r1", "", workflow.Dependencies{})
	require.NoError(t, err)
	b, err := r.Open("r2", "", workflow.Dependencies{})
	require.NoError(t, err)

	r.CloseAll()
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Zero(t, r.Len())

	_, err = r.Open("r3", "", workflow.Dependencies{})
	assert.ErrorIs(t, err, ErrRegistryClosed)
}

func TestRegistry_RunStops(t *testing.T) {
	r := NewRegistry(time.Minute, nil, logger.Nop())
	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		r.Run(10*time.Millisecond, stopCh)
		close(done)
	}()

	close(stopCh)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
