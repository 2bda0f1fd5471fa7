package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
)

const (
	testPoll      = 20 * time.Millisecond
	testReconnect = 40 * time.Millisecond
	testDebounce  = 30 * time.Millisecond
	waitFor       = 2 * time.Second
	tick          = 5 * time.Millisecond
)

// fakeServer backs a MockAPI with mutable server-side state so tests can
// flip reachability and inspect what the engine sent.
type fakeServer struct {
	up          atomic.Bool
	statusCalls atomic.Int32
	infoCalls   atomic.Int32
	volumeReads atomic.Int32
	volumeSends atomic.Int32
	// volumeReadFailures is how many upcoming FetchVolume calls fail.
	volumeReadFailures atomic.Int32

	// infoGate, when set, blocks FetchInfo until it is closed.
	infoGate chan struct{}
	// volumeGate, when set, blocks each SetVolume until it receives a value.
	volumeGate chan struct{}

	mu               sync.Mutex
	volume           int
	brightness       float64
	volumeWrites     []int
	brightnessWrites []float64
	failWrites       bool
}

func newFakeServer(t *testing.T, configure ...func(*fakeServer)) (*fakeServer, *remote.MockAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := remote.NewMockAPI(ctrl)
	f := &fakeServer{volume: 40, brightness: 0.6}
	f.up.Store(true)
	for _, fn := range configure {
		fn(f)
	}

	m.EXPECT().FetchStatus(gomock.Any()).DoAndReturn(func(context.Context) (*remote.StatusResponse, error) {
		f.statusCalls.Add(1)
		if !f.up.Load() {
			return nil, unreachable("/status")
		}
		return &remote.StatusResponse{OK: true, Message: "Server is running"}, nil
	}).AnyTimes()

	m.EXPECT().FetchInfo(gomock.Any()).DoAndReturn(func(ctx context.Context) (*remote.SystemInfo, error) {
		f.infoCalls.Add(1)
		if f.infoGate != nil {
			select {
			case <-f.infoGate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if !f.up.Load() {
			return nil, unreachable("/info")
		}
		return &remote.SystemInfo{
			CPU: remote.CPUInfo{CurrentLoad: 12.5, AvgLoad: 0.4},
			Mem: remote.MemInfo{Total: 16 << 30, Used: 4 << 30, Free: 12 << 30},
		}, nil
	}).AnyTimes()

	m.EXPECT().FetchVolume(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		f.volumeReads.Add(1)
		if f.volumeReadFailures.Add(-1) >= 0 {
			return 0, &remote.Error{Kind: remote.KindHTTP, Path: "/volume", Status: 500, Message: "mixer busy"}
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.volume, nil
	}).AnyTimes()

	m.EXPECT().FetchBrightness(gomock.Any()).DoAndReturn(func(context.Context) (float64, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.brightness, nil
	}).AnyTimes()

	m.EXPECT().SetVolume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, v int) error {
		f.volumeSends.Add(1)
		if f.volumeGate != nil {
			select {
			case <-f.volumeGate:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.volumeWrites = append(f.volumeWrites, v)
		if f.failWrites {
			return &remote.Error{Kind: remote.KindHTTP, Path: "/volume", Status: 500, Message: "mixer unavailable"}
		}
		f.volume = v
		return nil
	}).AnyTimes()

	m.EXPECT().SetBrightness(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b float64) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.brightnessWrites = append(f.brightnessWrites, b)
		if f.failWrites {
			return &remote.Error{Kind: remote.KindHTTP, Path: "/brightness", Status: 500}
		}
		f.brightness = b
		return nil
	}).AnyTimes()

	return f, m
}

func unreachable(path string) error {
	return &remote.Error{Kind: remote.KindNetwork, Path: path, Message: "connection refused"}
}

func (f *fakeServer) volumes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.volumeWrites...)
}

func (f *fakeServer) brightnesses() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.brightnessWrites...)
}

func newTestEngine(t *testing.T, api remote.API, configure ...func(*Options)) *Engine {
	t.Helper()
	opts := Options{
		Client:            api,
		Logger:            zerolog.Nop(),
		ServerURL:         "http://desk.local:5001",
		PollInterval:      testPoll,
		ReconnectInterval: testReconnect,
		DebounceWindow:    testDebounce,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	e, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(e.Stop)
	return e
}

func startEngine(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.Start(context.Background()))
}

func waitForState(t *testing.T, e *Engine, want state.ConnectionState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.Snapshot().Connection == want
	}, waitFor, tick, "connection never reached %s", want)
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := New(Options{})
	require.ErrorIs(t, err, ErrNoClient)
}

func TestNew_PublishesInitialSnapshot(t *testing.T) {
	_, api := newFakeServer(t)
	e := newTestEngine(t, api)

	snap := e.Snapshot()
	assert.Equal(t, state.Unknown, snap.Connection)
	assert.Equal(t, "http://desk.local:5001", snap.ServerURL)
	assert.False(t, snap.HasSystem)
}

func TestStart_ConnectsThenPollsAtCadence(t *testing.T) {
	srv, api := newFakeServer(t)
	e := newTestEngine(t, api)
	startEngine(t, e)

	waitForState(t, e, state.Online)

	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= 4 }, waitFor, tick)

	snap := e.Snapshot()
	assert.True(t, snap.HasSystem)
	assert.InDelta(t, 12.5, snap.System.CPU.CurrentLoad, 1e-9)
	assert.InDelta(t, 25.0, snap.MemoryPercent(), 1e-9)
	assert.GreaterOrEqual(t, len(snap.Samples), 3)
	assert.False(t, snap.LastUpdated.IsZero())
	assert.NoError(t, snap.LastError)

	require.Eventually(t, func() bool {
		s := e.Snapshot()
		return s.HasVolume && s.HasBrightness
	}, waitFor, tick)
	snap = e.Snapshot()
	assert.Equal(t, 40, snap.Volume)
	assert.InDelta(t, 0.6, snap.Brightness, 1e-9)
}

func TestStart_Twice(t *testing.T) {
	_, api := newFakeServer(t)
	e := newTestEngine(t, api)
	startEngine(t, e)

	require.ErrorIs(t, e.Start(context.Background()), ErrAlreadyStarted)
}

func TestStart_AfterStop(t *testing.T) {
	_, api := newFakeServer(t)
	e := newTestEngine(t, api)
	e.Stop()

	require.ErrorIs(t, e.Start(context.Background()), ErrStopped)
}

func TestStart_UnreachableGoesOfflineAndRetries(t *testing.T) {
	srv, api := newFakeServer(t, func(f *fakeServer) { f.up.Store(false) })
	e := newTestEngine(t, api)
	startEngine(t, e)

	waitForState(t, e, state.Offline)
	require.Eventually(t, func() bool { return srv.statusCalls.Load() >= 3 }, waitFor, tick)

	snap := e.Snapshot()
	require.ErrorIs(t, snap.LastError, remote.ErrNetworkUnreachable)
	assert.GreaterOrEqual(t, snap.ConsecutiveFailures, 2)
	assert.Zero(t, srv.infoCalls.Load(), "no /info while offline")
}

func TestStatusNotOK_StaysOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := remote.NewMockAPI(ctrl)
	api.EXPECT().FetchStatus(gomock.Any()).
		Return(&remote.StatusResponse{OK: false, Message: "warming up"}, nil).AnyTimes()

	e := newTestEngine(t, api)
	startEngine(t, e)

	waitForState(t, e, state.Offline)
	snap := e.Snapshot()
	require.ErrorIs(t, snap.LastError, remote.ErrRejected)
	assert.Contains(t, snap.LastError.Error(), "warming up")
}

func TestInfoFailure_OfflineThenReconnectResumesPolling(t *testing.T) {
	srv, api := newFakeServer(t)
	e := newTestEngine(t, api)
	startEngine(t, e)

	waitForState(t, e, state.Online)
	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= 2 }, waitFor, tick)

	srv.up.Store(false)
	// One poll cycle plus scheduling slack.
	waitForState(t, e, state.Offline)
	require.ErrorIs(t, e.Snapshot().LastError, remote.ErrNetworkUnreachable)

	infoAtOffline := srv.infoCalls.Load()
	statusAtOffline := srv.statusCalls.Load()
	time.Sleep(4 * testReconnect)
	assert.Equal(t, infoAtOffline, srv.infoCalls.Load(), "/info must not be polled while offline")
	assert.Greater(t, srv.statusCalls.Load(), statusAtOffline, "reconnect probes should continue")

	srv.up.Store(true)
	waitForState(t, e, state.Online)
	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= infoAtOffline+3 }, waitFor, tick)
	assert.NoError(t, e.Snapshot().LastError)
	assert.Zero(t, e.Snapshot().ConsecutiveFailures)
}

func TestInfoInFlight_SkipsTicks(t *testing.T) {
	gate := make(chan struct{})
	srv, api := newFakeServer(t, func(f *fakeServer) { f.infoGate = gate })
	e := newTestEngine(t, api)
	startEngine(t, e)

	waitForState(t, e, state.Online)
	time.Sleep(5 * testPoll)
	assert.Equal(t, int32(1), srv.infoCalls.Load(), "ticks during an in-flight /info must be skipped")

	close(gate)
	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= 3 }, waitFor, tick)
	assert.Equal(t, state.Online, e.Snapshot().Connection)
}

func TestStop_NoFurtherRequests(t *testing.T) {
	srv, api := newFakeServer(t)
	e := newTestEngine(t, api)
	startEngine(t, e)
	waitForState(t, e, state.Online)

	e.SetVolume(80)
	e.Stop()

	status := srv.statusCalls.Load()
	info := srv.infoCalls.Load()
	writes := len(srv.volumes())
	time.Sleep(3 * testReconnect)

	assert.Equal(t, status, srv.statusCalls.Load())
	assert.Equal(t, info, srv.infoCalls.Load())
	assert.Len(t, srv.volumes(), writes)

	// Stop is idempotent and methods after Stop are no-ops.
	e.Stop()
	e.RetryNow()
	e.SetBrightness(0.1)
	_, err := e.PerformAction(context.Background(), remote.ActionSleep)
	require.ErrorIs(t, err, ErrStopped)
}

func TestIntentsBeforeStartAreDropped(t *testing.T) {
	srv, api := newFakeServer(t, offline)
	e := newTestEngine(t, api)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 2*taskQueueSize; i++ {
			e.SetVolume(i % 100)
			e.RetryNow()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("calls before Start blocked")
	}

	startEngine(t, e)
	waitForState(t, e, state.Offline)
	time.Sleep(3 * testDebounce)
	assert.Empty(t, srv.volumes())
	assert.False(t, e.Snapshot().HasVolume)
}

func TestStop_BeforeStart(t *testing.T) {
	_, api := newFakeServer(t)
	e := newTestEngine(t, api)

	done := make(chan struct{})
	go func() {
		e.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Stop before Start should return immediately")
	}
}

func TestContextCancelStopsEngine(t *testing.T) {
	srv, api := newFakeServer(t)
	e := newTestEngine(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, e.Start(ctx))
	waitForState(t, e, state.Online)

	cancel()
	require.Eventually(t, func() bool {
		return e.Start(context.Background()) == ErrStopped
	}, waitFor, tick)

	calls := srv.infoCalls.Load()
	time.Sleep(5 * testPoll)
	assert.Equal(t, calls, srv.infoCalls.Load())
}

func TestRetryNow_ProbesImmediately(t *testing.T) {
	srv, api := newFakeServer(t, func(f *fakeServer) { f.up.Store(false) })
	e := newTestEngine(t, api, func(o *Options) { o.ReconnectInterval = time.Hour })
	startEngine(t, e)

	waitForState(t, e, state.Offline)
	assert.Equal(t, int32(1), srv.statusCalls.Load())

	srv.up.Store(true)
	e.RetryNow()
	waitForState(t, e, state.Online)
	assert.Equal(t, int32(2), srv.statusCalls.Load())
}

func TestSuspendResume_Online(t *testing.T) {
	srv, api := newFakeServer(t)
	e := newTestEngine(t, api)
	startEngine(t, e)
	waitForState(t, e, state.Online)
	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= 2 }, waitFor, tick)

	e.Suspend()
	require.Eventually(t, func() bool { return e.Snapshot().Suspended }, waitFor, tick)
	// Allow any request issued just before suspension to land.
	time.Sleep(2 * testPoll)
	calls := srv.infoCalls.Load()
	time.Sleep(5 * testPoll)
	assert.Equal(t, calls, srv.infoCalls.Load(), "no polling while suspended")
	assert.Equal(t, state.Online, e.Snapshot().Connection, "suspend keeps connection state")

	e.Resume()
	require.Eventually(t, func() bool { return srv.infoCalls.Load() >= calls+2 }, waitFor, tick)
	assert.False(t, e.Snapshot().Suspended)
}

func TestSuspendResume_Offline(t *testing.T) {
	srv, api := newFakeServer(t, func(f *fakeServer) { f.up.Store(false) })
	e := newTestEngine(t, api)
	startEngine(t, e)
	waitForState(t, e, state.Offline)

	e.Suspend()
	require.Eventually(t, func() bool { return e.Snapshot().Suspended }, waitFor, tick)
	time.Sleep(testReconnect)
	probes := srv.statusCalls.Load()
	time.Sleep(3 * testReconnect)
	assert.Equal(t, probes, srv.statusCalls.Load(), "no reconnect while suspended")

	srv.up.Store(true)
	e.Resume()
	waitForState(t, e, state.Online)
}
