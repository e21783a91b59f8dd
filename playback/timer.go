package playback

import "time"

// DefaultHideDelay is the pointer inactivity after which controls hide during playback.
const DefaultHideDelay = 3000 * time.Millisecond

// Arm asks the host loop to call VisibilityTimer.Fire(Gen) after Delay.
type Arm struct {
	Gen   uint64
	Delay time.Duration
}

// VisibilityTimer decides whether the control overlay is shown.
//
// It owns a one-shot timer handle but does not schedule anything itself: arming
// produces an Arm for the host loop, and firing with a stale generation is ignored,
// so cancelling is always safe, including after the timer already fired.
type VisibilityTimer struct {
	delay   time.Duration
	status  Status
	visible bool

	gen     uint64
	armed   bool
	pending *Arm
}

// NewVisibilityTimer returns a timer in the Visible state.
func NewVisibilityTimer(delay time.Duration) *VisibilityTimer {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &VisibilityTimer{delay: delay, visible: true}
}

// Visible reports whether the controls are shown.
func (t *VisibilityTimer) Visible() bool {
	return t.visible || t.status != Playing
}

// Armed reports whether a hide is pending.
func (t *VisibilityTimer) Armed() bool {
	return t.armed
}

func (t *VisibilityTimer) arm() {
	t.gen++
	t.armed = true
	t.pending = &Arm{Gen: t.gen, Delay: t.delay}
}

// Cancel drops any pending hide. It is idempotent.
func (t *VisibilityTimer) Cancel() {
	t.gen++
	t.armed = false
	t.pending = nil
}

// Pending returns the most recent arm request not yet handed to the host loop.
func (t *VisibilityTimer) Pending() (Arm, bool) {
	if t.pending == nil {
		return Arm{}, false
	}
	a := *t.pending
	t.pending = nil
	return a, true
}

// PointerMoved shows the controls and restarts the countdown.
func (t *VisibilityTimer) PointerMoved() {
	t.visible = true
	t.arm()
}

// PointerLeft hides the controls at once while playing.
func (t *VisibilityTimer) PointerLeft() {
	if t.status != Playing {
		return
	}
	t.Cancel()
	t.visible = false
}

// Fire applies an elapsed countdown. It hides the controls only while playing.
func (t *VisibilityTimer) Fire(gen uint64) {
	if !t.armed || gen != t.gen {
		return
	}
	t.armed = false

	if t.status == Playing {
		t.visible = false
	}
}

// StatusChanged tracks the playback status. Leaving Playing shows the controls;
// pausing also cancels the countdown. Entering Playing with the controls shown
// starts a countdown so they hide without further input.
func (t *VisibilityTimer) StatusChanged(status Status) {
	prev := t.status
	t.status = status

	switch {
	case status == Paused:
		t.visible = true
		t.Cancel()
	case status != Playing:
		t.visible = true
	case prev != Playing && t.visible:
		t.arm()
	}
}
