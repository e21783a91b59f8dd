package playback

import (
	"errors"
	"math"

	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/util"
	"github.com/sirupsen/logrus"
)

// Observer is notified after every state change with the previous and the new state.
type Observer func(prev, next PlaybackState)

// Controller is the single source of truth for playback state and the only
// component that commands the engine.
//
// It is not safe for concurrent use; engine events must be delivered on the
// goroutine that issues commands.
type Controller struct {
	engine engine.Engine
	log    *logrus.Entry

	source    string
	state     PlaybackState
	dismissed bool

	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	fn Observer
}

// NewController binds a controller to an engine. The state starts Idle.
func NewController(e engine.Engine, entry *logrus.Entry) *Controller {
	return &Controller{
		engine: e,
		log:    entry,
		state:  initialState(),
	}
}

// State returns a snapshot of the playback state.
func (c *Controller) State() PlaybackState {
	return c.state
}

// Observe registers fn and returns an idempotent cancel.
func (c *Controller) Observe(fn Observer) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observerEntry{id: id, fn: fn})

	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) update(mutate func(*PlaybackState)) {
	prev := c.state
	mutate(&c.state)
	if prev.same(c.state) {
		return
	}

	for _, o := range append([]observerEntry(nil), c.observers...) {
		o.fn(prev, c.state)
	}
}

// PromptVisible reports whether the unmute prompt should be shown: playing muted
// and not yet dismissed this session.
func (c *Controller) PromptVisible() bool {
	return c.state.Status == Playing && c.state.Muted && !c.dismissed
}

func (c *Controller) errored() bool {
	return c.state.Status == Errored
}

// Load resets the session to Loading and hands the source to the engine.
// Audio is forced off before anything else so that autoplay can only ever be silent.
func (c *Controller) Load(source string, meta engine.Meta) error {
	c.source = source
	c.dismissed = false
	c.update(func(s *PlaybackState) {
		*s = initialState()
		s.Status = Loading
		s.Muted = true
		s.Volume = 0
		s.Buffering = true
	})

	// A process that is not running yet starts muted at volume 0.
	if err := c.engine.SetMuted(true); err != nil && !errors.Is(err, engine.ErrNotRunning) {
		c.log.Warnf("mute before load: %v", err)
	}
	if err := c.engine.SetVolume(0); err != nil && !errors.Is(err, engine.ErrNotRunning) {
		c.log.Warnf("silence before load: %v", err)
	}

	if err := c.engine.Load(source, meta); err != nil {
		return c.fail(err)
	}

	c.log.Infof("loading %s", source)
	return nil
}

// Play starts playback on behalf of the user. A finished source restarts from the beginning.
// A refused request leaves the state unchanged.
func (c *Controller) Play() {
	if c.errored() || c.state.Status == Playing {
		return
	}

	if c.state.Status == Ended {
		c.Seek(0)
	}

	if err := c.engine.Play(true); err != nil {
		c.log.Warnf("play: %v", err)
	}
}

// autoplay issues the policy's automatic play request. Rejection is expected and final:
// the controller stays Paused until the user asks for playback.
func (c *Controller) autoplay() {
	if c.errored() {
		return
	}

	err := c.engine.Play(false)
	switch {
	case err == nil:
		c.log.Info("autoplay started muted")
	case errors.Is(err, engine.ErrPlayRejected):
		c.log.Infof("%v, waiting for user", ErrAutoplayBlocked)
	default:
		c.log.Warnf("autoplay: %v", err)
	}
}

// Pause stops playback. It is a no-op unless playing.
func (c *Controller) Pause() {
	if c.state.Status != Playing {
		return
	}

	if err := c.engine.Pause(); err != nil {
		c.log.Warnf("pause: %v", err)
	}
}

// TogglePlay pauses while playing and plays otherwise.
func (c *Controller) TogglePlay() {
	if c.state.Status == Playing {
		c.Pause()
		return
	}
	c.Play()
}

// Seek moves to t clamped to [0, duration], or [0, 0] while the duration is unknown.
// CurrentTime is updated before the engine confirms. Seeking back from the end
// leaves Ended for Paused, so a following Play resumes at the new position.
func (c *Controller) Seek(t float64) {
	if c.errored() {
		return
	}

	upper := 0.0
	if c.state.DurationKnown() {
		upper = c.state.Duration
	}
	target := util.Clamp(t, 0, upper)

	c.update(func(s *PlaybackState) {
		s.CurrentTime = target
		if s.Status == Ended && target < upper {
			s.Status = Paused
		}
	})

	if err := c.engine.Seek(target); err != nil {
		c.log.Warnf("seek to %.2f: %v", target, err)
	}
}

// SeekBy seeks relative to the current position.
func (c *Controller) SeekBy(delta float64) {
	c.Seek(c.state.CurrentTime + delta)
}

// SetVolume clamps v to [0,1]; a zero volume is muted, any other volume is not.
// It does not dismiss the unmute prompt.
func (c *Controller) SetVolume(v float64) {
	if c.errored() {
		return
	}

	v = util.Clamp(v, 0, 1)
	muted := v == 0
	c.update(func(s *PlaybackState) {
		s.Volume = v
		s.Muted = muted
	})

	if err := c.engine.SetVolume(v); err != nil {
		c.log.Warnf("volume %.2f: %v", v, err)
	}
	if err := c.engine.SetMuted(muted); err != nil {
		c.log.Warnf("mute %t: %v", muted, err)
	}
}

// ToggleMute switches between silence and DefaultVolume. It is the only action that
// dismisses the unmute prompt.
func (c *Controller) ToggleMute() {
	if c.errored() {
		return
	}

	c.dismissed = true

	muted, volume := true, 0.0
	if c.state.Muted {
		muted, volume = false, DefaultVolume
	}

	c.update(func(s *PlaybackState) {
		s.Muted = muted
		s.Volume = volume
	})

	if err := c.engine.SetMuted(muted); err != nil {
		c.log.Warnf("mute %t: %v", muted, err)
	}
	if err := c.engine.SetVolume(volume); err != nil {
		c.log.Warnf("volume %.2f: %v", volume, err)
	}
}

// Transitions driven by engine events.

func (c *Controller) ready(duration float64) {
	c.update(func(s *PlaybackState) {
		if s.Status == Loading {
			s.Status = Paused
		}
		s.Buffering = false
		if !s.DurationKnown() && !math.IsNaN(duration) && duration > 0 {
			s.Duration = duration
		}
	})
}

func (c *Controller) setStatus(status Status) {
	c.update(func(s *PlaybackState) {
		s.Status = status
		if status != Playing {
			s.Buffering = false
		}
	})
}

func (c *Controller) playing() {
	c.update(func(s *PlaybackState) {
		s.Status = Playing
		s.Buffering = false
	})
}

func (c *Controller) buffering() {
	c.update(func(s *PlaybackState) { s.Buffering = true })
}

func (c *Controller) setTime(t float64) {
	c.update(func(s *PlaybackState) {
		if s.DurationKnown() {
			s.CurrentTime = util.Clamp(t, 0, s.Duration)
		} else {
			s.CurrentTime = math.Max(0, t)
		}
	})
}

// setDuration fixes the duration the first time it becomes known.
func (c *Controller) setDuration(d float64) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return
	}
	c.update(func(s *PlaybackState) {
		if !s.DurationKnown() {
			s.Duration = d
		}
	})
}

func (c *Controller) end() {
	c.update(func(s *PlaybackState) {
		s.Status = Ended
		s.Buffering = false
		if s.DurationKnown() {
			s.CurrentTime = s.Duration
		}
	})
}

// fail moves to Errored. No engine command is issued afterwards.
func (c *Controller) fail(cause error) error {
	err := &MediaLoadError{Source: c.source, Err: cause}
	c.log.Errorf("%v", err)

	c.update(func(s *PlaybackState) {
		s.Status = Errored
		s.Buffering = false
		s.Err = err
	})
	return err
}
