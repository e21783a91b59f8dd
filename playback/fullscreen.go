package playback

import (
	"github.com/playdeck/playdeck/engine"
	"github.com/sirupsen/logrus"
)

// Fullscreen presents one enter/exit contract over an engine's fullscreen strategies.
//
// Strategies are probed per call in a fixed order: the standard capability, each vendor
// variant, then presentation mode. The tracked state is updated optimistically and
// corrected by Sync when the platform reports a change.
type Fullscreen struct {
	caps engine.Capabilities
	log  *logrus.Entry

	active bool
	via    engine.Capability
	warned bool

	onUnsupported func()
}

// NewFullscreen creates an adapter. onUnsupported, if non-nil, is called the first time
// no capability can be used.
func NewFullscreen(caps engine.Capabilities, onUnsupported func(), entry *logrus.Entry) *Fullscreen {
	return &Fullscreen{caps: caps, onUnsupported: onUnsupported, log: entry}
}

// IsActive returns the tracked fullscreen state.
func (f *Fullscreen) IsActive() bool {
	return f.active
}

func (f *Fullscreen) table() []engine.Capability {
	table := make([]engine.Capability, 0, len(f.caps.Vendor)+2)
	if f.caps.Standard != nil {
		table = append(table, f.caps.Standard)
	}
	for _, c := range f.caps.Vendor {
		if c != nil {
			table = append(table, c)
		}
	}
	if f.caps.Presentation != nil {
		table = append(table, f.caps.Presentation)
	}
	return table
}

// Toggle exits when fullscreen is active platform-wide and enters otherwise.
func (f *Fullscreen) Toggle() bool {
	active := f.active
	if f.caps.Active != nil {
		active = f.caps.Active() || f.active
	}

	if active {
		return f.Exit()
	}
	return f.Enter()
}

// Enter uses the first supported capability that succeeds. It reports whether fullscreen was entered.
func (f *Fullscreen) Enter() bool {
	for _, c := range f.table() {
		if !c.Supported() {
			continue
		}
		if err := c.Enter(); err != nil {
			f.log.Warnf("fullscreen via %s: %v", c.Name(), err)
			continue
		}

		f.active = true
		f.via = c
		f.log.Debugf("fullscreen entered via %s", c.Name())
		return true
	}

	f.unsupported()
	return false
}

// Exit leaves fullscreen, preferring the capability that entered it.
func (f *Fullscreen) Exit() bool {
	table := f.table()
	if f.via != nil {
		table = append([]engine.Capability{f.via}, table...)
	}

	for _, c := range table {
		if !c.Supported() {
			continue
		}
		if err := c.Exit(); err != nil {
			f.log.Warnf("leave fullscreen via %s: %v", c.Name(), err)
			continue
		}

		f.active = false
		f.via = nil
		return true
	}

	f.unsupported()
	return false
}

// Sync records a platform-reported fullscreen change.
func (f *Fullscreen) Sync(active bool) {
	f.active = active
	if !active {
		f.via = nil
	}
}

func (f *Fullscreen) unsupported() {
	if f.warned {
		return
	}
	f.warned = true

	f.log.Warn(ErrFullscreenUnsupported)
	if f.onUnsupported != nil {
		f.onUnsupported()
	}
}
