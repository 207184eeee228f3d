// Package coordinator keeps the device's local cache and the remote store in step.
//
// Reads answer from the local cache at once and refresh from the store in the
// background. Writes land locally first and are mirrored to the store by
// fire-and-forget tasks. Store failures are logged and counted, never returned.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"smokefree/internal/device/localcache"
	"smokefree/internal/device/model"
	"smokefree/internal/device/remote"
	"smokefree/pkg/lib/statistics"
)

const defaultRequestTimeout = 10 * time.Second

// LocalCache is the offline store the coordinator reads from and writes to first.
type LocalCache interface {
	GetSettings() (*model.Settings, error)
	SaveSettings(v *model.Settings) error
	GetLog(date string) (*model.DailyLog, error)
	SaveLog(v *model.DailyLog) error
	ListLogs() ([]model.DailyLog, error)
	GetAlarms(date string) (*model.AlarmSchedule, error)
	SaveAlarms(v *model.AlarmSchedule) error
	GetEntitlement() (*model.Entitlement, error)
	SaveEntitlement(v *model.Entitlement) error
}

var _ LocalCache = (*localcache.Store)(nil)

type Options struct {
	DeviceID        string
	RequestTimeout  time.Duration
	StatsWindowDays int
	Now             func() time.Time
}

type Coordinator struct {
	local    LocalCache
	remote   remote.Store
	deviceID string
	timeout  time.Duration
	window   int
	now      func() time.Time
	log      *slog.Logger

	mu                sync.RWMutex
	snap              Snapshot
	entitlementLoaded bool

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	wg sync.WaitGroup
}

func New(local LocalCache, store remote.Store, opts Options, log *slog.Logger) *Coordinator {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.StatsWindowDays <= 0 {
		opts.StatsWindowDays = statistics.DefaultWindowDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Coordinator{
		local:    local,
		remote:   store,
		deviceID: opts.DeviceID,
		timeout:  opts.RequestTimeout,
		window:   opts.StatsWindowDays,
		now:      opts.Now,
		log:      log.With(slog.String("deviceID", opts.DeviceID)),
		snap:     Snapshot{Phase: PhaseCache},
		subs:     make(map[int]func(Snapshot)),
	}
}

func (c *Coordinator) DeviceID() string {
	return c.deviceID
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.clone()
}

// Subscribe registers fn to receive every snapshot emitted after the call. The
// returned func removes the subscription.
func (c *Coordinator) Subscribe(fn func(Snapshot)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Wait blocks until every dispatched background task has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) today() string {
	return c.now().Format(model.DateLayout)
}

// apply mutates the state under the write lock without emitting.
func (c *Coordinator) apply(fn func(s *Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.snap)
	c.snap.UpdatedAt = c.now()
}

// update is apply followed by an emit of the resulting snapshot.
func (c *Coordinator) update(fn func(s *Snapshot)) {
	c.apply(fn)
	c.emit(c.Snapshot())
}

func (c *Coordinator) emit(snap Snapshot) {
	c.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// dispatch runs task in the background with a context detached from the caller.
// Its outcome is recorded on the snapshot and otherwise only logged.
func (c *Coordinator) dispatch(ctx context.Context, op string, task func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		log := c.log.With(slog.String("op", op))

		taskCtx, cancel := context.WithTimeout(detached, c.timeout)
		defer cancel()

		err := task(taskCtx)
		if err != nil {
			log.Warn("store sync failed", slog.String("error", err.Error()))
		} else {
			log.Debug("store sync done")
		}

		c.update(func(s *Snapshot) {
			if err != nil {
				s.LastSyncError = err
				s.ConsecutiveFailures++
				return
			}
			s.LastSyncError = nil
			s.ConsecutiveFailures = 0
		})
	}()
}
