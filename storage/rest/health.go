package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/sistemaclass/classcli/core"
)

// Health probes {backendBase}/health and reports boolean reachability.
// Best-effort: every failure is swallowed to false, nothing is thrown.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.backendBase, "/health"), nil)
	if err != nil {
		return false
	}
	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode >= 200 && res.StatusCode < 300
}

// HealthPoller repeatedly probes the backend and pushes the latest state.
// The poll keeps running after failures; Stop clears the loop.
type HealthPoller struct {
	client   *Client
	interval time.Duration
	updates  chan bool
	stop     chan struct{}
}

func NewHealthPoller(client *Client, interval time.Duration) *HealthPoller {
	if interval <= 0 {
		interval = core.Conf.GetDuration("healthCheckInterval")
	}
	return &HealthPoller{
		client:   client,
		interval: interval,
		updates:  make(chan bool, 1),
		stop:     make(chan struct{}),
	}
}

// Start launches the polling loop: one immediate probe, then one per tick.
func (p *HealthPoller) Start(ctx context.Context) {
	go func() {
		p.push(p.client.Health(ctx))
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.push(p.client.Health(ctx))
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// push keeps only the latest state; a slow consumer never blocks the loop.
func (p *HealthPoller) push(up bool) {
	select {
	case p.updates <- up:
	default:
		select {
		case <-p.updates:
		default:
		}
		select {
		case p.updates <- up:
		default:
		}
	}
}

func (p *HealthPoller) Updates() <-chan bool { return p.updates }

func (p *HealthPoller) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}
