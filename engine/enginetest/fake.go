// Package enginetest provides a scripted in-memory engine for tests.
package enginetest

import (
	"fmt"
	"sync"

	"github.com/playdeck/playdeck/engine"
)

// Fake records every command and lets tests emit engine events.
// With AutoEmit set, Play and Pause emit Started and Paused like a real engine would.
type Fake struct {
	mu    sync.Mutex
	hub   engine.Hub
	lease engine.Lease

	// Policy gates non-gesture plays. Defaults to AutoplayMuted.
	Policy engine.AutoplayPolicy
	// PlayErr, when set, fails every Play call.
	PlayErr error
	LoadErr error
	// AudioErr, when set, fails SetVolume and SetMuted after recording them.
	AudioErr error

	AutoEmit bool

	Source   string
	Title    string
	Muted    bool
	Volume   float64
	Position float64
	Stopped  int
	Closed   bool

	Caps     engine.Capabilities
	commands []string
	shown    []string
}

func New() *Fake {
	return &Fake{Policy: engine.AutoplayMuted, AutoEmit: true}
}

func (f *Fake) record(format string, args ...any) {
	f.mu.Lock()
	f.commands = append(f.commands, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

// Commands returns the commands issued so far, e.g. "load a.mp4", "volume 0.00".
func (f *Fake) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

// Reset forgets recorded commands.
func (f *Fake) Reset() {
	f.mu.Lock()
	f.commands = nil
	f.mu.Unlock()
}

func (f *Fake) Load(source string, meta engine.Meta) error {
	f.record("load %s", source)
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.Source, f.Title = source, meta.Title
	return nil
}

func (f *Fake) Play(gesture bool) error {
	f.record("play gesture=%t", gesture)
	if f.PlayErr != nil {
		return f.PlayErr
	}
	if !f.Policy.Permits(gesture, f.Muted, f.Volume) {
		return engine.ErrPlayRejected
	}
	if f.AutoEmit {
		f.Emit(engine.Event{Kind: engine.Started})
	}
	return nil
}

func (f *Fake) Pause() error {
	f.record("pause")
	if f.AutoEmit {
		f.Emit(engine.Event{Kind: engine.Paused})
	}
	return nil
}

func (f *Fake) Seek(seconds float64) error {
	f.record("seek %.2f", seconds)
	f.Position = seconds
	return nil
}

func (f *Fake) SetVolume(v float64) error {
	f.record("volume %.2f", v)
	if f.AudioErr != nil {
		return f.AudioErr
	}
	f.Volume = v
	return nil
}

func (f *Fake) SetMuted(muted bool) error {
	f.record("mute %t", muted)
	if f.AudioErr != nil {
		return f.AudioErr
	}
	f.Muted = muted
	return nil
}

func (f *Fake) Subscribe(fn func(engine.Event)) (cancel func()) {
	return f.hub.Subscribe(fn)
}

func (f *Fake) Acquire() (release func(), err error) {
	return f.lease.Acquire()
}

// Attached reports whether a session holds the engine.
func (f *Fake) Attached() bool {
	return f.lease.Held()
}

func (f *Fake) Fullscreen() engine.Capabilities {
	return f.Caps
}

func (f *Fake) Stop() error {
	f.record("stop")
	f.Stopped++
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

func (f *Fake) ShowText(text string, _ int) error {
	f.mu.Lock()
	f.shown = append(f.shown, text)
	f.mu.Unlock()
	return nil
}

// Shown returns the OSD messages displayed so far.
func (f *Fake) Shown() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.shown...)
}

// Emit delivers e to every subscriber.
func (f *Fake) Emit(e engine.Event) {
	f.hub.Emit(e)
}

// Subscribers returns the number of registered listeners.
func (f *Fake) Subscribers() int {
	return f.hub.Len()
}

// Capability is a scripted fullscreen strategy.
type Capability struct {
	ID        string
	Available bool
	Err       error

	Entered, Exited int
}

func (c *Capability) Name() string    { return c.ID }
func (c *Capability) Supported() bool { return c.Available }

func (c *Capability) Enter() error {
	if c.Err != nil {
		return c.Err
	}
	c.Entered++
	return nil
}

func (c *Capability) Exit() error {
	if c.Err != nil {
		return c.Err
	}
	c.Exited++
	return nil
}
