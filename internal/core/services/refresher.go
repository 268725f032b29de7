package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sifter/internal/core/domain"
	"github.com/custodia-labs/sifter/internal/core/ports/driven"
	"github.com/custodia-labs/sifter/internal/core/ports/driving"
	"github.com/custodia-labs/sifter/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.Refresher = (*Refresher)(nil)

// DefaultMinRebuildGap is the shortest time between two rebuilds.
const DefaultMinRebuildGap = 250 * time.Millisecond

// reloader is the part of the record service the refresher drives.
type reloader interface {
	Reload(ctx context.Context) error
	Loaded() bool
}

// Refresher rebuilds the collection on a fixed interval until the source
// reports it is fully loaded, and whenever the change notifier fires.
type Refresher struct {
	records  reloader
	interval time.Duration
	notifier driven.ChangeNotifier
	limiter  *rate.Limiter

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	listeners []func()
}

// NewRefresher creates a refresher. notifier may be nil.
func NewRefresher(records reloader, interval time.Duration, notifier driven.ChangeNotifier) *Refresher {
	if interval <= 0 {
		interval = domain.DefaultRefreshEvery
	}
	return &Refresher{
		records:  records,
		interval: interval,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Every(min(interval, DefaultMinRebuildGap)), 1),
	}
}

// OnRefresh registers fn to run after every successful rebuild.
func (r *Refresher) OnRefresh(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Start runs the refresh loop. It blocks until Stop is called, ctx is
// cancelled, or the source is loaded and no notifier is configured.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	return r.run(ctx, stopCh)
}

// Stop ends a running refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	close(r.stopCh)
}

func (r *Refresher) run(ctx context.Context, stopCh <-chan struct{}) error {
	var changes <-chan struct{}
	if r.notifier != nil {
		changes = r.notifier.Changes()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	tick := ticker.C
	if r.records.Loaded() {
		tick = nil
	}

	for {
		if tick == nil && changes == nil {
			logger.Debug("refresher: source loaded, stopping")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-tick:
			r.refresh(ctx)
			if r.records.Loaded() {
				logger.Info("Record source fully loaded, periodic refresh stopped")
				ticker.Stop()
				tick = nil
			}
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			logger.Debug("refresher: change notification")
			r.refresh(ctx)
		}
	}
}

// refresh rebuilds once, throttled by the limiter.
func (r *Refresher) refresh(ctx context.Context) {
	if err := r.limiter.Wait(ctx); err != nil {
		return
	}
	if err := r.records.Reload(ctx); err != nil {
		logger.Warn("refresh failed: %v", err)
		return
	}

	r.mu.Lock()
	listeners := append([]func(){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
