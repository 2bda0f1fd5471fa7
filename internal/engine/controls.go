package engine

import (
	"context"
	"math"
)

const (
	VolumeStep     = 5
	BrightnessStep = 0.1

	MinVolume     = 0
	MaxVolume     = 100
	MinBrightness = 0.0
	MaxBrightness = 1.0
)

// control is the debounced write path for one adjustable setting. Volume
// and brightness share it; only the clamp and the client calls differ.
//
// value is optimistic while pending or writing, authoritative otherwise.
type control struct {
	e     *Engine
	name  string
	clamp func(float64) float64
	write func(ctx context.Context, v float64) error
	read  func(ctx context.Context) (float64, error)

	value    float64
	known    bool
	pending  bool // intent not yet sent
	writing  bool // a write is in flight
	queued   bool // debounce expired during a write
	fetching bool
	stale    bool   // a read is owed; retried on the next poll tick
	gen      uint64 // bumped per intent; stale reads compare against it

	debounce *timerSlot
}

func newVolumeControl(e *Engine) *control {
	c := &control{
		e:     e,
		name:  "volume",
		clamp: clampVolume,
		write: func(ctx context.Context, v float64) error {
			return e.client.SetVolume(ctx, int(math.Round(v)))
		},
		read: func(ctx context.Context) (float64, error) {
			v, err := e.client.FetchVolume(ctx)
			return float64(v), err
		},
	}
	c.debounce = newTimerSlot("volume", e.post, c.fire)
	return c
}

func newBrightnessControl(e *Engine) *control {
	c := &control{
		e:     e,
		name:  "brightness",
		clamp: clampBrightness,
		write: e.client.SetBrightness,
		read:  e.client.FetchBrightness,
	}
	c.debounce = newTimerSlot("brightness", e.post, c.fire)
	return c
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return MinVolume
	}
	return math.Round(math.Max(MinVolume, math.Min(MaxVolume, v)))
}

// clampBrightness also rounds to two decimals so repeated 0.1 steps do not
// accumulate float error.
func clampBrightness(v float64) float64 {
	if math.IsNaN(v) {
		return MinBrightness
	}
	v = math.Max(MinBrightness, math.Min(MaxBrightness, v))
	return math.Round(v*100) / 100
}

func (c *control) intValue() int {
	return int(math.Round(c.value))
}

func (c *control) busy() bool {
	return c.pending || c.writing
}

// SetVolume records a volume intent. The write is sent once no further
// intent arrives within the debounce window.
func (e *Engine) SetVolume(v int) {
	e.post(func() { e.volume.intent(float64(v)) })
}

// SetBrightness records a brightness intent (0.0-1.0).
func (e *Engine) SetBrightness(b float64) {
	e.post(func() { e.brightness.intent(b) })
}

func (c *control) intent(v float64) {
	c.value = c.clamp(v)
	c.known = true
	c.pending = true
	c.gen++
	if !c.e.suspended {
		c.debounce.arm(c.e.debounceWindow)
	}
	c.e.publish()
}

func (c *control) fire() {
	if !c.pending {
		return
	}
	if c.writing {
		c.queued = true
		return
	}
	c.send()
}

func (c *control) send() {
	value := c.value
	c.pending = false
	c.queued = false
	c.writing = true
	c.e.log.Debug().Str("control", c.name).Float64("value", value).Msg("writing control")
	c.e.spawn(func(ctx context.Context) func() {
		err := c.write(ctx, value)
		return func() { c.writeDone(value, err) }
	})
	c.e.publish()
}

func (c *control) writeDone(value float64, err error) {
	c.writing = false

	if err != nil {
		c.e.controlErr = err
		c.e.log.Warn().Err(err).Str("control", c.name).Float64("value", value).Msg("control write failed")
	} else {
		c.e.controlErr = nil
		if !c.pending {
			c.value = value
			c.known = true
			c.stale = false
		}
	}

	if c.queued {
		c.queued = false
		if !c.e.suspended {
			c.send()
		}
	}
	if err != nil {
		c.refresh()
	}
	c.e.publish()
}

// refresh fetches the authoritative value unless an intent is outstanding.
// A failed read leaves the control stale until a later read succeeds.
func (c *control) refresh() {
	if c.busy() || c.fetching {
		return
	}
	c.stale = true
	c.fetching = true
	gen := c.gen
	c.e.spawn(func(ctx context.Context) func() {
		v, err := c.read(ctx)
		return func() { c.readDone(gen, v, err) }
	})
}

func (c *control) readDone(gen uint64, v float64, err error) {
	c.fetching = false
	if err != nil {
		c.e.log.Debug().Err(err).Str("control", c.name).Msg("control fetch failed")
		return
	}
	if gen != c.gen || c.busy() {
		// A newer intent supersedes the read.
		c.stale = false
		return
	}
	c.value = c.clamp(v)
	c.known = true
	c.stale = false
	c.e.publish()
}
