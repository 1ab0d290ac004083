// Package poller drives the periodic pass refresh: credential check,
// artifact fetch, render, re-arm. It owns all retry pacing; the
// credential and upstream layers never retry on their own.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/huihutong/passd/internal/observability/statsd"
	"github.com/huihutong/passd/internal/render"
	"github.com/huihutong/passd/internal/service"
	"github.com/huihutong/passd/internal/store"
	"github.com/huihutong/passd/internal/upstream"
)

// Retry pacing defaults. The backoff never shrinks below the floor so a
// flapping upstream is probed at most once per five seconds.
const (
	DefaultRetryBackoff = 5 * time.Second
	DefaultBackoffCap   = 60 * time.Second
)

// ArtifactFetcher is the upstream surface the controller consumes for
// the pass payload itself.
type ArtifactFetcher interface {
	MakeQRCode(ctx context.Context, satoken string) (string, error)
}

// ProfileRefresher is the optional best-effort profile enrichment hook
// run after each successful cycle.
type ProfileRefresher interface {
	Refresh(ctx context.Context, openID string)
}

// Config holds the controller's pacing knobs.
type Config struct {
	// RetryBackoff is the fast-retry floor after a transient failure.
	RetryBackoff time.Duration
	// BackoffCap bounds backoff growth under repeated failure.
	BackoffCap time.Duration
}

// Options holds the dependencies for creating a Controller.
type Options struct {
	Credentials service.CredentialProvider // Required
	Artifacts   ArtifactFetcher            // Required
	Store       store.Store                // Required
	Renderer    render.Renderer            // Required

	Profiles ProfileRefresher // Optional: post-cycle profile refresh
	Clock    Clock            // Optional: defaults to RealClock
	Logger   *slog.Logger     // Optional
	Metrics  statsd.Sink      // Optional: cycle counters/timings
	Config   Config
}

// Controller is the refresh state machine. All state lives behind one
// mutex (single logical actor); network work runs in per-cycle
// goroutines whose results are gated on a monotonically increasing
// cycle id, so a cancelled or superseded cycle can never mutate the
// displayed artifact.
type Controller struct {
	creds    service.CredentialProvider
	arts     ArtifactFetcher
	store    store.Store
	renderer render.Renderer
	profiles ProfileRefresher
	clock    Clock
	logger   *slog.Logger
	metrics  statsd.Sink
	cfg      Config

	mu        sync.Mutex
	baseCtx   context.Context
	running   bool
	cycle     uint64
	cancel    context.CancelFunc
	timer     Timer
	failures  int
	snap      Snapshot
	listeners []Listener
}

// NewController validates dependencies and builds a controller in the
// Idle state.
func NewController(opts Options) (*Controller, error) {
	if opts.Credentials == nil {
		return nil, errors.New("CredentialProvider is required")
	}
	if opts.Artifacts == nil {
		return nil, errors.New("ArtifactFetcher is required")
	}
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("Renderer is required")
	}

	cfg := opts.Config
	if cfg.RetryBackoff < DefaultRetryBackoff {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.BackoffCap < cfg.RetryBackoff {
		cfg.BackoffCap = DefaultBackoffCap
	}

	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		creds:    opts.Credentials,
		arts:     opts.Artifacts,
		store:    opts.Store,
		renderer: opts.Renderer,
		profiles: opts.Profiles,
		clock:    clock,
		logger:   logger,
		metrics:  opts.Metrics,
		cfg:      cfg,
		snap:     Snapshot{State: StateIdle, Status: statusIdle},
	}, nil
}

// OnUpdate registers a listener for snapshot changes. Registration is
// explicit per controller instance; there is no ambient broadcast.
func (c *Controller) OnUpdate(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Run starts the controller and blocks until ctx is cancelled, then
// stops it. Suitable for driving under an errgroup.
func (c *Controller) Run(ctx context.Context) error {
	c.Start(ctx)
	<-ctx.Done()
	c.Stop()
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// Start begins refreshing. Any in-flight cycle and any pending timer
// are cancelled first: at most one cycle is ever active.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.running = true
	c.mu.Unlock()
	c.begin()
}

// Refresh forces an immediate cycle (the manual tap, an identity-token
// change, or an interval change). No-op when the controller is stopped.
func (c *Controller) Refresh() {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		c.begin()
	}
}

// Stop cancels the pending timer and any in-flight cycle and returns to
// Idle. Idempotent; late results from the abandoned cycle are
// discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.running = false
	c.cycle++ // invalidate in-flight results
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.snap = Snapshot{State: StateIdle, Status: statusIdle}
	listeners, snap := slices.Clone(c.listeners), c.snap
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// SetRefreshInterval persists a new refresh interval and re-arms the
// loop. Out-of-range values are rejected and the previous interval
// stays in effect.
func (c *Controller) SetRefreshInterval(ctx context.Context, seconds int) error {
	err := c.store.Update(ctx, func(settings *store.Settings) error {
		return settings.Preferences.SetRefreshInterval(seconds)
	})
	if err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// begin cancels whatever is active and launches a fresh cycle.
func (c *Controller) begin() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	if c.cancel != nil {
		c.cancel()
	}
	c.cycle++
	id := c.cycle
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.runCycle(ctx, id)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// runCycle is one full credential-check + artifact-fetch + display
// iteration. Every state application is gated on id still being the
// controller's current cycle.
func (c *Controller) runCycle(ctx context.Context, id uint64) {
	start := c.clock.Now()

	settings, err := c.store.Load(ctx)
	if err != nil {
		c.failCycle(id, err)
		return
	}
	if settings.OpenID == "" {
		// Prompt state: no network calls, no retry timer. Only an
		// explicit trigger after the user sets an OpenID recovers.
		c.transition(id, func(s *Snapshot) {
			s.State = StateError
			s.Status = statusNeedIdentity
			s.Detail = ""
			s.ScreenHint = false
		})
		return
	}

	if !c.transition(id, func(s *Snapshot) {
		s.State = StateAuthenticating
		s.Status = statusUpdating
		s.ScreenHint = false
	}) {
		return
	}

	payload, err := service.FetchWithRepair(ctx, c.creds, settings.OpenID,
		func(ctx context.Context, satoken string) (string, error) {
			c.transition(id, func(s *Snapshot) { s.State = StateFetchingArtifact })
			return c.arts.MakeQRCode(ctx, satoken)
		})
	if err != nil {
		if ctx.Err() != nil {
			return // cancelled cycle, nothing to report
		}
		c.failCycle(id, err)
		return
	}

	image, err := c.renderer.Render(payload, settings.Preferences.ScaleFactor)
	if err != nil {
		c.failCycle(id, fmt.Errorf("render pass: %w", err))
		return
	}

	elapsed := c.clock.Now().Sub(start)
	interval := time.Duration(settings.Preferences.RefreshIntervalSeconds) * time.Second
	nextAt := c.clock.Now().Add(interval)

	applied := c.transition(id, func(s *Snapshot) {
		s.State = StateDisplaying
		s.Status = statusUpdated
		s.Detail = ""
		s.Payload = payload
		s.ImagePNG = image
		s.RenderedAt = c.clock.Now()
		s.NextRefreshAt = nextAt
		s.CycleDuration = elapsed
		s.ScreenHint = true
	})
	if !applied {
		return
	}

	c.mu.Lock()
	c.failures = 0
	c.mu.Unlock()

	c.emitCycle("success", "", elapsed)
	c.schedule(id, interval)

	if c.profiles != nil {
		go c.profiles.Refresh(ctx, settings.OpenID)
	}
}

// failCycle surfaces a failed cycle and schedules the retry. Transient
// failures park in RetryScheduled with the fast backoff; everything
// else lands in Error with the raw diagnostic, still re-armed so the
// loop never silently stops.
func (c *Controller) failCycle(id uint64, err error) {
	kind := upstream.Classify(err)
	transient := upstream.IsTransient(err)

	c.mu.Lock()
	if id != c.cycle {
		c.mu.Unlock()
		return
	}
	c.failures++
	delay := c.backoffLocked()
	c.mu.Unlock()

	state, status := StateError, statusFailed
	if transient {
		state, status = StateRetryScheduled, statusRetrying
	}
	if !c.transition(id, func(s *Snapshot) {
		s.State = state
		s.Status = status
		s.Detail = err.Error()
		s.NextRefreshAt = c.clock.Now().Add(delay)
		s.ScreenHint = false
	}) {
		return
	}

	c.logger.Warn("pass refresh failed",
		"kind", kind, "retry_in", delay, "error", err)
	c.emitCycle("failure", kind, 0)
	c.schedule(id, delay)
}

// backoffLocked grows linearly with consecutive failures, floored at
// RetryBackoff and capped at BackoffCap.
func (c *Controller) backoffLocked() time.Duration {
	delay := time.Duration(c.failures) * c.cfg.RetryBackoff
	if delay < c.cfg.RetryBackoff {
		delay = c.cfg.RetryBackoff
	}
	if delay > c.cfg.BackoffCap {
		delay = c.cfg.BackoffCap
	}
	return delay
}

// schedule arms the next cycle if id is still current.
func (c *Controller) schedule(id uint64, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.cycle || !c.running {
		return
	}
	c.stopTimerLocked()
	c.timer = c.clock.AfterFunc(delay, func() {
		c.onTimer(id)
	})
}

// onTimer starts the next cycle when its scheduling cycle is still
// current; a timer surviving cancellation by a race fires into nothing.
func (c *Controller) onTimer(id uint64) {
	c.mu.Lock()
	stale := id != c.cycle || !c.running
	c.mu.Unlock()
	if stale {
		return
	}
	c.begin()
}

// transition applies mutate to the snapshot and notifies listeners,
// unless the cycle has been superseded. Listeners run outside the lock.
func (c *Controller) transition(id uint64, mutate func(*Snapshot)) bool {
	c.mu.Lock()
	if id != c.cycle {
		c.mu.Unlock()
		return false
	}
	snap := c.snap
	mutate(&snap)
	c.snap = snap
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return true
}

func (c *Controller) emitCycle(outcome, kind string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	tags := map[string]string{"outcome": outcome}
	if kind != "" {
		tags["kind"] = kind
	}
	c.metrics.Count("cycle", 1, tags)
	if elapsed > 0 {
		c.metrics.Timing("cycle.duration", elapsed, nil)
	}
}
