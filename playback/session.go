package playback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/log"
	"github.com/sirupsen/logrus"
)

// Source identifies what a session plays. URL and MovieID form the session identity;
// Title and Poster only label the surface.
type Source struct {
	URL     string
	MovieID string
	Title   string
	Poster  string
}

// Same reports whether two sources belong to the same session.
func (s Source) Same(o Source) bool {
	return s.URL == o.URL && s.MovieID == o.MovieID
}

// Label is the best human-readable name for the source.
func (s Source) Label() string {
	switch {
	case s.Title != "":
		return s.Title
	case s.MovieID != "":
		return s.MovieID
	default:
		return s.URL
	}
}

type options struct {
	dispatch      func(func())
	hideDelay     time.Duration
	onUnsupported func()
}

// Option configures a Session.
type Option func(*options)

// WithDispatcher routes engine callbacks through dispatch, which must run the function
// on the goroutine that drives the session.
func WithDispatcher(dispatch func(func())) Option {
	return func(o *options) { o.dispatch = dispatch }
}

// WithHideDelay overrides the controls inactivity delay.
func WithHideDelay(d time.Duration) Option {
	return func(o *options) { o.hideDelay = d }
}

// WithFullscreenWarning sets the signal raised once when fullscreen is unavailable.
func WithFullscreenWarning(fn func()) Option {
	return func(o *options) { o.onUnsupported = fn }
}

// Session is one source's playback lifetime on an engine: from load to Close.
type Session struct {
	ID     string
	source Source
	log    *logrus.Entry

	controller *Controller
	bridge     *Bridge
	timer      *VisibilityTimer
	fullscreen *Fullscreen

	teardown []func()
	closed   bool
}

// NewSession attaches to e, subscribes to its events and loads src.
//
// A source the engine refuses to load still yields a session, in the Errored state.
// An error is returned only when the session cannot be attached at all.
func NewSession(e engine.Engine, src Source, host Host, opts ...Option) (*Session, error) {
	if strings.TrimSpace(src.URL) == "" {
		return nil, errors.New("session: empty source URL")
	}

	o := options{hideDelay: DefaultHideDelay}
	for _, opt := range opts {
		opt(&o)
	}

	release, err := e.Acquire()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	id := uuid.NewString()
	entry := log.WithFields(logrus.Fields{
		"session": id,
		"movie":   src.MovieID,
	})

	s := &Session{
		ID:         id,
		source:     src,
		log:        entry,
		controller: NewController(e, entry),
		timer:      NewVisibilityTimer(o.hideDelay),
		fullscreen: NewFullscreen(e.Fullscreen(), o.onUnsupported, entry),
	}
	s.bridge = NewBridge(s.controller, host, entry)
	s.bridge.onFullscreen = s.fullscreen.Sync

	stopObserving := s.controller.Observe(func(prev, next PlaybackState) {
		if prev.Status != next.Status {
			s.timer.StatusChanged(next.Status)
		}
	})

	dispatch := o.dispatch
	detach := s.bridge.Attach(e, func(f func()) {
		if dispatch == nil {
			s.guarded(f)
			return
		}
		dispatch(func() { s.guarded(f) })
	})

	s.teardown = []func(){
		s.timer.Cancel,
		detach,
		stopObserving,
		func() {
			if err := e.Stop(); err != nil {
				entry.Warnf("stop engine: %v", err)
			}
		},
		release,
	}

	if err := s.controller.Load(src.URL, engine.Meta{Title: src.Label()}); err != nil {
		entry.Warnf("session %s starts errored", id)
	}

	return s, nil
}

// guarded drops callbacks that arrive after Close.
func (s *Session) guarded(f func()) {
	if s.closed {
		return
	}
	f()
}

// Close tears the session down: cancels the timer, removes every engine listener,
// stops the engine and releases it. Calling Close again does nothing.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, f := range s.teardown {
		f()
	}
	s.teardown = nil
	s.log.Info("session closed")
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}

// Source returns what the session plays.
func (s *Session) Source() Source {
	return s.source
}

// State returns the playback state snapshot.
func (s *Session) State() PlaybackState {
	return s.controller.State()
}

// UI returns the derived presentation state.
func (s *Session) UI() UIState {
	return UIState{
		ControlsVisible:     s.timer.Visible(),
		UnmutePromptVisible: s.controller.PromptVisible(),
		FullscreenActive:    s.fullscreen.IsActive(),
	}
}

// Commands. Each is a no-op once the session is closed.

// Play starts playback as a user gesture.
func (s *Session) Play() {
	if !s.closed {
		s.controller.Play()
	}
}

// Pause stops playback.
func (s *Session) Pause() {
	if !s.closed {
		s.controller.Pause()
	}
}

// TogglePlay pauses while playing and plays otherwise.
func (s *Session) TogglePlay() {
	if !s.closed {
		s.controller.TogglePlay()
	}
}

// Seek moves to t seconds, clamped to the duration.
func (s *Session) Seek(t float64) {
	if !s.closed {
		s.controller.Seek(t)
	}
}

// SeekBy seeks relative to the current position.
func (s *Session) SeekBy(delta float64) {
	if !s.closed {
		s.controller.SeekBy(delta)
	}
}

// SetVolume sets the volume in [0,1]. It never dismisses the unmute prompt.
func (s *Session) SetVolume(v float64) {
	if !s.closed {
		s.controller.SetVolume(v)
	}
}

// ToggleMute flips mute and dismisses the unmute prompt for good.
func (s *Session) ToggleMute() {
	if !s.closed {
		s.controller.ToggleMute()
	}
}

// ToggleFullscreen reports whether the fullscreen state changed.
func (s *Session) ToggleFullscreen() bool {
	if s.closed {
		return false
	}
	return s.fullscreen.Toggle()
}

// Pointer input.

// PointerMoved shows the controls and restarts the hide countdown.
func (s *Session) PointerMoved() {
	if !s.closed {
		s.timer.PointerMoved()
	}
}

// PointerLeft hides the controls at once while playing.
func (s *Session) PointerLeft() {
	if !s.closed {
		s.timer.PointerLeft()
	}
}

// FireTimer delivers an elapsed countdown armed earlier.
func (s *Session) FireTimer(gen uint64) {
	if !s.closed {
		s.timer.Fire(gen)
	}
}

// PendingArm returns a countdown the host loop has yet to schedule.
func (s *Session) PendingArm() (Arm, bool) {
	if s.closed {
		return Arm{}, false
	}
	return s.timer.Pending()
}
