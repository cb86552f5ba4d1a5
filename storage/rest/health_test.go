package rest

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Client_Health(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			// the probe must hit the backend base, not the /api base
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.True(t, c.Health(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		assert.False(t, c.Health(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1/api", 200*time.Millisecond)
		assert.False(t, c.Health(context.Background()))
	})
}

func Test_HealthPoller(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	p := NewHealthPoller(c, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	select {
	case up := <-p.Updates():
		assert.True(t, up)
	case <-time.After(2 * time.Second):
		t.Fatal("no health update received")
	}

	// Stop is idempotent.
	p.Stop()
	p.Stop()
}

func Test_HealthPoller_keepsPollingAfterFailure(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// first probe fails, the loop must keep ticking anyway
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	p := NewHealthPoller(c, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case up := <-p.Updates():
			if up {
				// a true update can only come from a probe after the failed one
				assert.Greater(t, atomic.LoadInt32(&calls), int32(1))
				return
			}
		case <-deadline:
			t.Fatal("poller did not keep polling after a failed probe")
		}
	}
}
