// Package health provides Kubernetes-style liveness and readiness probes.
//
// Checks run in background goroutines at a fixed interval and use
// consecutive failure/success thresholds so a single blip does not flip the
// reported state.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports nil when the checked component is healthy.
type CheckFunc func(ctx context.Context) error

// Kind classifies a check as a liveness or readiness probe.
type Kind int

const (
	Liveness Kind = iota
	Readiness
)

// check holds one probe's configuration and state. The consecutive counters
// are touched only by the single run goroutine; healthy and lastErr are read
// by HTTP handlers and therefore atomic.
type check struct {
	name    string
	kind    Kind
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	fails int
	oks   int
}

const (
	failureThreshold = 3
	successThreshold = 1
)

func (c *check) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(ctx)
	c.lastErr.Store(&err)

	if err != nil {
		c.oks = 0
		if c.fails++; c.fails >= failureThreshold {
			c.healthy.Store(false)
		}
		return
	}
	c.fails = 0
	if c.oks++; c.oks >= successThreshold {
		c.healthy.Store(true)
	}
}

func (c *check) failure() (string, bool) {
	if c.healthy.Load() {
		return "", false
	}
	if p := c.lastErr.Load(); p != nil && *p != nil {
		return (*p).Error(), true
	}
	return "check is unhealthy", true
}

// Health manages the probes for a service.
type Health struct {
	ready atomic.Bool

	mu     sync.RWMutex
	checks []*check
	cancel context.CancelFunc
}

// New creates a Health in the not-ready state. Call SetReady(true) after
// initialization completes.
func New() *Health {
	return &Health{}
}

// AddCheck registers a probe. Register all checks before calling Start.
func (h *Health) AddCheck(kind Kind, name string, timeout time.Duration, fn CheckFunc) {
	c := &check{name: name, kind: kind, timeout: timeout, fn: fn}
	c.healthy.Store(true)

	h.mu.Lock()
	h.checks = append(h.checks, c)
	h.mu.Unlock()
}

// Start runs every registered check in its own goroutine at the given
// interval until Stop is called or ctx is cancelled.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	checks := make([]*check, len(h.checks))
	copy(checks, h.checks)
	h.mu.Unlock()

	for _, c := range checks {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			c.run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					c.run(ctx)
				}
			}
		}()
	}
}

// Stop cancels the background check goroutines. Safe to call repeatedly.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady flips the manual readiness gate. Set false during graceful
// shutdown to drain traffic before the listener closes.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and every readiness
// check is passing.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}
	for _, c := range h.snapshot(Readiness) {
		if !c.healthy.Load() {
			return false
		}
	}
	return true
}

func (h *Health) snapshot(kind Kind) []*check {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*check, 0, len(h.checks))
	for _, c := range h.checks {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves /livez: 200 when all liveness checks pass, else 503
// with the failing checks listed.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, h.failures(Liveness))
}

// ReadyEndpoint serves /readyz: 200 when the service is marked ready and all
// readiness checks pass.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	failures := h.failures(Readiness)
	if !h.ready.Load() {
		failures["_readiness"] = "service is not ready"
	}
	writeStatus(w, failures)
}

func (h *Health) failures(kind Kind) map[string]string {
	failures := make(map[string]string)
	for _, c := range h.snapshot(kind) {
		if msg, failed := c.failure(); failed {
			failures[c.name] = msg
		}
	}
	return failures
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	status := http.StatusOK
	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
