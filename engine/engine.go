// Package engine abstracts the media engine a playback session drives.
//
// The primary implementation talks to mpv over its JSON-IPC socket; enginetest
// provides a scripted in-memory engine.
package engine

import "errors"

var (
	// ErrPlayRejected is returned by Play when the autoplay gate refuses a request.
	ErrPlayRejected = errors.New("play request rejected by autoplay policy")

	// ErrEngineBusy is returned by Acquire while another session holds the engine.
	ErrEngineBusy = errors.New("engine is attached to another session")

	// ErrNotRunning is returned for commands issued before the engine process exists.
	ErrNotRunning = errors.New("engine is not running")

	// ErrUnplayable wraps the reason the engine could not fetch or decode a source.
	ErrUnplayable = errors.New("source cannot be played")
)

// Meta carries labelling information passed to the engine with a source.
type Meta struct {
	Title string
}

// Engine is the media playback primitive a session drives.
type Engine interface {
	// Load replaces the current source. Playback does not start until Play.
	Load(source string, meta Meta) error

	// Play requests playback. gesture reports whether a user action triggered the request;
	// engines may reject non-gesture requests with ErrPlayRejected.
	Play(gesture bool) error

	Pause() error

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetVolume sets the output level in [0,1].
	SetVolume(v float64) error

	SetMuted(muted bool) error

	// Subscribe registers fn for every event emitted from now on, in emission order.
	// The returned cancel is idempotent.
	Subscribe(fn func(Event)) (cancel func())

	// Acquire grants exclusive attachment to a single session.
	Acquire() (release func(), err error)

	// Fullscreen describes the fullscreen capabilities the engine exposes.
	Fullscreen() Capabilities

	// Stop unloads the current source but keeps the engine alive for the next one.
	Stop() error

	Close() error
}

// Announcer is implemented by engines that can overlay short messages on the video.
type Announcer interface {
	ShowText(text string, millis int) error
}

// Waiter is implemented by engines backed by a process the user can close.
type Waiter interface {
	Wait() <-chan struct{}
}
