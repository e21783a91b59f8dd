package playback

import (
	"github.com/playdeck/playdeck/engine"
	"github.com/sirupsen/logrus"
)

// Host receives the callbacks a mounting page cares about. Either field may be nil.
type Host struct {
	// OnTimeUpdate fires at engine cadence; expensive work must be throttled by the host.
	OnTimeUpdate func(current, duration float64)

	// OnEnded fires once per session, after the status becomes Ended.
	OnEnded func()
}

// Bridge translates engine events into controller transitions and host callbacks.
type Bridge struct {
	controller *Controller
	host       Host
	log        *logrus.Entry

	readied bool
	ended   bool

	// onFullscreen receives platform fullscreen changes.
	onFullscreen func(active bool)
}

// NewBridge creates a bridge feeding c.
func NewBridge(c *Controller, host Host, entry *logrus.Entry) *Bridge {
	return &Bridge{controller: c, host: host, log: entry}
}

// Attach subscribes the bridge to e. The returned detach removes the subscription.
// dispatch runs each delivery; pass nil to handle events on the engine's goroutine.
func (b *Bridge) Attach(e engine.Engine, dispatch func(func())) (detach func()) {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}

	return e.Subscribe(func(ev engine.Event) {
		dispatch(func() { b.Handle(ev) })
	})
}

// Handle applies a single engine event. Events are applied in the order received.
func (b *Bridge) Handle(ev engine.Event) {
	c := b.controller
	if c.errored() {
		return
	}

	b.log.Debugf("engine event %s", ev)

	switch ev.Kind {
	case engine.Ready:
		c.ready(ev.Duration)
		if !b.readied {
			b.readied = true
			c.autoplay()
		}
	case engine.Started:
		c.setStatus(Playing)
	case engine.Playing:
		c.playing()
	case engine.Paused:
		if c.state.Status != Ended {
			c.setStatus(Paused)
		}
	case engine.TimeUpdate:
		c.setDuration(ev.Duration)
		c.setTime(ev.Time)
		if b.host.OnTimeUpdate != nil {
			s := c.State()
			b.host.OnTimeUpdate(s.CurrentTime, s.Duration)
		}
	case engine.Waiting:
		c.buffering()
	case engine.Metadata:
		c.setDuration(ev.Duration)
	case engine.Ended:
		c.end()
		if !b.ended {
			b.ended = true
			if b.host.OnEnded != nil {
				b.host.OnEnded()
			}
		}
	case engine.Failed:
		_ = c.fail(ev.Err)
	case engine.FullscreenChanged:
		if b.onFullscreen != nil {
			b.onFullscreen(ev.Active)
		}
	}
}
