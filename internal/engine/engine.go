package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
	"github.com/five82/deskremote/internal/telemetry"
)

const (
	DefaultPollInterval      = 2 * time.Second
	DefaultReconnectInterval = 10 * time.Second
	DefaultDebounceWindow    = 300 * time.Millisecond

	// latencyWindow is how many /info round trips feed AvgResponse.
	latencyWindow = 10
	taskQueueSize = 64
)

// Options configure an Engine. Zero durations use the package defaults.
type Options struct {
	Client            remote.API
	Store             *state.Store
	Logger            zerolog.Logger
	ServerURL         string
	PollInterval      time.Duration
	ReconnectInterval time.Duration
	DebounceWindow    time.Duration
	HistorySize       int
	Now               func() time.Time
}

// Engine keeps the local view of a control server in sync. All mutable
// state below the loop marker is owned by the loop goroutine; public
// methods post tasks to it. Calls made before Start or after Stop are
// dropped and never block.
type Engine struct {
	client    remote.API
	store     *state.Store
	log       zerolog.Logger
	serverURL string
	now       func() time.Time

	pollInterval      time.Duration
	reconnectInterval time.Duration
	debounceWindow    time.Duration

	tasks chan func()
	quit  chan struct{}
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
	running atomic.Bool // set once the loop goroutine exists

	reqCtx    context.Context
	cancelReq context.CancelFunc

	// loop-owned
	conn         state.ConnectionState
	suspended    bool
	probing      bool
	infoInFlight bool
	infoSeq      uint64
	system       remote.SystemInfo
	hasSystem    bool
	samples      *telemetry.Buffer
	latency      *telemetry.Ring[time.Duration]
	lastUpdated  time.Time
	lastErr      error
	controlErr   error
	failures     int

	poll       *timerSlot
	reconnect  *timerSlot
	volume     *control
	brightness *control
}

// New builds an engine. It does not touch the network until Start.
func New(opts Options) (*Engine, error) {
	if opts.Client == nil {
		return nil, ErrNoClient
	}
	if opts.Store == nil {
		opts.Store = &state.Store{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		client:            opts.Client,
		store:             opts.Store,
		log:               opts.Logger.With().Str("component", "engine").Logger(),
		serverURL:         opts.ServerURL,
		now:               opts.Now,
		pollInterval:      orDefault(opts.PollInterval, DefaultPollInterval),
		reconnectInterval: orDefault(opts.ReconnectInterval, DefaultReconnectInterval),
		debounceWindow:    orDefault(opts.DebounceWindow, DefaultDebounceWindow),
		tasks:             make(chan func(), taskQueueSize),
		quit:              make(chan struct{}),
		samples:           telemetry.NewBuffer(opts.HistorySize, opts.Now),
		latency:           telemetry.NewRing[time.Duration](latencyWindow),
	}
	e.poll = newTimerSlot("poll", e.post, e.onPollTick)
	e.reconnect = newTimerSlot("reconnect", e.post, e.onReconnectTick)
	e.volume = newVolumeControl(e)
	e.brightness = newBrightnessControl(e)
	e.publish()
	return e, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Start launches the loop and the first status probe. Cancelling ctx has
// the same effect as Stop.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true
	e.reqCtx, e.cancelReq = context.WithCancel(ctx)

	e.wg.Add(1)
	go e.run()
	e.running.Store(true)

	go func() {
		select {
		case <-ctx.Done():
			e.Stop()
		case <-e.quit:
		}
	}()

	e.post(func() {
		e.log.Info().Str("server", e.serverURL).Msg("engine starting")
		e.conn = state.Connecting
		e.publish()
		e.probe()
	})
	return nil
}

// Stop cancels every timer and in-flight request and waits for the loop
// and its request goroutines to exit. Safe to call more than once and
// before Start.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.stopped {
		e.stopped = true
		close(e.quit)
	}
	e.mu.Unlock()

	e.wg.Wait()
}

// Snapshot returns the latest published state.
func (e *Engine) Snapshot() state.Snapshot {
	return e.store.Snapshot()
}

// RetryNow cancels the pending reconnect timer and probes immediately.
func (e *Engine) RetryNow() {
	e.post(func() {
		e.reconnect.cancel()
		if e.conn != state.Online {
			e.conn = state.Connecting
			e.publish()
		}
		e.probe()
	})
}

// Suspend halts all timers without changing connection state. Pending
// control intents are kept and re-armed by Resume.
func (e *Engine) Suspend() {
	e.post(func() {
		if e.suspended {
			return
		}
		e.suspended = true
		e.poll.cancel()
		e.reconnect.cancel()
		e.volume.debounce.cancel()
		e.brightness.debounce.cancel()
		e.log.Debug().Str("state", e.conn.String()).Msg("suspended")
		e.publish()
	})
}

// Resume restarts whatever the current connection state calls for.
func (e *Engine) Resume() {
	e.post(func() {
		if !e.suspended {
			return
		}
		e.suspended = false
		e.log.Debug().Str("state", e.conn.String()).Msg("resumed")

		switch e.conn {
		case state.Online:
			e.fetchInfo()
			e.poll.arm(e.pollInterval)
		case state.Offline:
			e.reconnect.arm(e.reconnectInterval)
		case state.Connecting:
			e.probe()
		}
		for _, c := range []*control{e.volume, e.brightness} {
			if c.pending && !c.writing {
				c.debounce.arm(e.debounceWindow)
			}
		}
		e.publish()
	})
}

// post queues fn on the loop. It reports false, dropping fn, before Start
// and once the engine is stopped.
func (e *Engine) post(fn func()) bool {
	if !e.running.Load() {
		return false
	}
	select {
	case <-e.quit:
		return false
	default:
	}
	select {
	case e.tasks <- fn:
		return true
	case <-e.quit:
		return false
	}
}

func (e *Engine) run() {
	defer e.wg.Done()
	defer e.teardown()

	for {
		select {
		case <-e.quit:
			return
		case fn := <-e.tasks:
			select {
			case <-e.quit:
				return
			default:
			}
			fn()
		}
	}
}

func (e *Engine) teardown() {
	e.poll.cancel()
	e.reconnect.cancel()
	e.volume.debounce.cancel()
	e.brightness.debounce.cancel()
	e.cancelReq()
	e.log.Info().Msg("engine stopped")
}

// spawn runs call off the loop; the task it returns is posted back.
func (e *Engine) spawn(call func(ctx context.Context) func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.post(call(e.reqCtx))
	}()
}

func (e *Engine) probe() {
	if e.probing {
		return
	}
	e.probing = true
	e.spawn(func(ctx context.Context) func() {
		resp, err := e.client.FetchStatus(ctx)
		return func() { e.probeDone(resp, err) }
	})
}

func (e *Engine) probeDone(resp *remote.StatusResponse, err error) {
	e.probing = false
	if err == nil && (resp == nil || !resp.OK) {
		msg := "server not ready"
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		err = &remote.Error{Kind: remote.KindRejected, Path: "/status", Message: msg}
	}

	if err != nil {
		if e.conn == state.Online {
			e.goOffline(err)
			return
		}
		e.conn = state.Offline
		e.lastErr = err
		e.failures++
		if !e.suspended {
			e.reconnect.arm(e.reconnectInterval)
		}
		e.log.Debug().Err(err).Int("failures", e.failures).Msg("status probe failed")
		e.publish()
		return
	}

	e.reconnect.cancel()
	e.lastErr = nil
	e.failures = 0
	e.enterOnline()
}

func (e *Engine) enterOnline() {
	if e.conn != state.Online {
		e.log.Info().Str("server", e.serverURL).Msg("connected")
	}
	e.conn = state.Online
	if e.suspended {
		e.publish()
		return
	}
	e.fetchInfo()
	e.volume.refresh()
	e.brightness.refresh()
	e.poll.arm(e.pollInterval)
	e.publish()
}

func (e *Engine) goOffline(err error) {
	e.poll.cancel()
	// Responses from requests issued while online are now stale.
	e.infoSeq++
	e.infoInFlight = false

	e.conn = state.Offline
	e.lastErr = err
	e.failures++
	if !e.suspended {
		e.reconnect.arm(e.reconnectInterval)
	}
	e.log.Warn().Err(err).Msg("connection lost")
	e.publish()
}

func (e *Engine) onPollTick() {
	e.poll.arm(e.pollInterval)
	e.fetchInfo()
	for _, c := range []*control{e.volume, e.brightness} {
		if c.stale {
			c.refresh()
		}
	}
}

func (e *Engine) onReconnectTick() {
	e.probe()
}

// fetchInfo keeps at most one /info request in flight.
func (e *Engine) fetchInfo() {
	if e.infoInFlight {
		return
	}
	e.infoInFlight = true
	e.infoSeq++
	seq := e.infoSeq
	e.spawn(func(ctx context.Context) func() {
		start := time.Now()
		info, err := e.client.FetchInfo(ctx)
		elapsed := time.Since(start)
		return func() { e.infoDone(seq, info, elapsed, err) }
	})
}

func (e *Engine) infoDone(seq uint64, info *remote.SystemInfo, elapsed time.Duration, err error) {
	if seq != e.infoSeq {
		return
	}
	e.infoInFlight = false
	if e.conn != state.Online {
		return
	}
	if err == nil && info == nil {
		err = &remote.Error{Kind: remote.KindMalformed, Path: "/info", Message: "empty body"}
	}
	if err != nil {
		e.goOffline(err)
		return
	}

	e.system = *info
	e.hasSystem = true
	e.samples.Append(*info)
	e.latency.Push(elapsed)
	e.lastUpdated = e.now()
	e.lastErr = nil
	e.failures = 0
	e.publish()
}

func (e *Engine) publish() {
	e.store.Publish(state.Snapshot{
		Connection:          e.conn,
		ServerURL:           e.serverURL,
		System:              e.system,
		HasSystem:           e.hasSystem,
		Samples:             e.samples.Snapshot(),
		Volume:              e.volume.intValue(),
		HasVolume:           e.volume.known,
		VolumePending:       e.volume.busy(),
		Brightness:          e.brightness.value,
		HasBrightness:       e.brightness.known,
		BrightnessPending:   e.brightness.busy(),
		LastUpdated:         e.lastUpdated,
		LastError:           e.lastErr,
		ControlError:        e.controlErr,
		ConsecutiveFailures: e.failures,
		AvgResponse:         telemetry.Average(e.latency.Items()),
		Suspended:           e.suspended,
	})
}
