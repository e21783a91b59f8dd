// Package playback owns the lifecycle of a single streamed video: playback state,
// the autoplay policy, engine event translation, control visibility and fullscreen.
package playback

import (
	"errors"
	"fmt"
	"math"
)

// Status is the coarse playback lifecycle state.
type Status int

const (
	Idle Status = iota
	Loading
	Playing
	Paused
	Ended
	Errored
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DefaultVolume is the level restored when sound is switched back on.
const DefaultVolume = 1.0

// PlaybackState is the controller's view of the engine.
type PlaybackState struct {
	Status Status

	// CurrentTime is the position in seconds, kept within [0, Duration] once Duration is known.
	CurrentTime float64

	// Duration is NaN until metadata arrives.
	Duration float64

	// Volume is in [0,1]. Muted is true whenever Volume is 0.
	Volume float64
	Muted  bool

	// Buffering drives the loading indicator independently of Status.
	Buffering bool

	// Err is set only while Status is Errored.
	Err error
}

func initialState() PlaybackState {
	return PlaybackState{Status: Idle, Duration: math.NaN()}
}

// DurationKnown reports whether metadata has provided a finite duration.
func (s PlaybackState) DurationKnown() bool {
	return !math.IsNaN(s.Duration) && !math.IsInf(s.Duration, 0) && s.Duration > 0
}

// Progress returns CurrentTime as a fraction of Duration, or 0 when unknown.
func (s PlaybackState) Progress() float64 {
	if !s.DurationKnown() {
		return 0
	}
	return s.CurrentTime / s.Duration
}

// same compares states field by field, treating two NaN durations as equal.
func (s PlaybackState) same(o PlaybackState) bool {
	durations := s.Duration == o.Duration || (math.IsNaN(s.Duration) && math.IsNaN(o.Duration))
	return durations &&
		s.Status == o.Status &&
		s.CurrentTime == o.CurrentTime &&
		s.Volume == o.Volume &&
		s.Muted == o.Muted &&
		s.Buffering == o.Buffering &&
		s.Err == o.Err
}

// UIState is the presentation state derived for the control surface.
type UIState struct {
	ControlsVisible     bool
	UnmutePromptVisible bool
	FullscreenActive    bool
}

var (
	// ErrAutoplayBlocked is logged when the engine refuses an automatic play; it never reaches the host.
	ErrAutoplayBlocked = errors.New("autoplay blocked")

	// ErrFullscreenUnsupported is signalled when no fullscreen capability is usable.
	ErrFullscreenUnsupported = errors.New("fullscreen unsupported")

	// ErrMediaLoad matches every MediaLoadError.
	ErrMediaLoad = errors.New("media load error")

	// ErrSessionClosed is returned by operations on a torn-down session.
	ErrSessionClosed = errors.New("session closed")
)

// MediaLoadError reports that the engine could not fetch or decode a source.
// It is fatal to the session.
type MediaLoadError struct {
	Source string
	Err    error
}

func (e *MediaLoadError) Error() string {
	return fmt.Sprintf("cannot play %s: %v", e.Source, e.Err)
}

func (e *MediaLoadError) Unwrap() error {
	return e.Err
}

func (e *MediaLoadError) Is(target error) bool {
	return target == ErrMediaLoad
}
