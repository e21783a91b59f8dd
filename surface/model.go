package surface

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/util"
)

const (
	defaultSeekStep   = 5.0
	defaultVolumeStep = 0.05
	volumeResolution  = 0.01
	volumeBarWidth    = 20
	osdMillis         = 1500
)

type dispatchMsg struct{ fn func() }

type hideMsg struct{ gen uint64 }

type engineExitedMsg struct{}

// Model is the bubbletea model of a mounted player.
type Model struct {
	options Options
	session *playback.Session

	keymap *statefulKeymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *notifier

	// events carries engine callbacks to the update loop.
	events chan func()
	done   chan struct{}

	started          bool
	fullscreenBroken bool
	lastArm          uint64
	queued           []tea.Cmd
	fatal            error

	width, height int
}

// New creates an unmounted surface.
func New(options Options) *Model {
	if options.SeekStep <= 0 {
		options.SeekStep = defaultSeekStep
	}
	if options.VolumeStep <= 0 {
		options.VolumeStep = defaultVolumeStep
	}

	m := &Model{
		options:  options,
		keymap:   newStatefulKeymap(),
		helpC:    help.New(),
		notifier: &notifier{},
		events:   make(chan func(), 256),
		done:     make(chan struct{}),
	}

	m.spinnerC = spinner.New()
	m.spinnerC.Spinner = spinner.Dot
	m.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	m.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	if w, h, err := util.TerminalSize(); err == nil {
		m.resize(w, h)
	} else {
		m.resize(80, 24)
	}

	return m
}

// dispatch hands an engine callback to the update loop. It gives up once the surface is gone.
func (m *Model) dispatch(f func()) {
	select {
	case m.events <- f:
	case <-m.done:
	}
}

func (m *Model) waitForEngine() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.events:
			return dispatchMsg{fn: f}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) waitForEngineExit() tea.Cmd {
	waiter, ok := m.options.Engine.(engine.Waiter)
	if !ok {
		return nil
	}

	return func() tea.Msg {
		select {
		case <-waiter.Wait():
			return engineExitedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// mount starts a session for the configured source, replacing the current one.
func (m *Model) mount() error {
	if m.session != nil {
		m.session.Close()
	}

	host := m.options.Host
	onEnded := host.OnEnded
	host.OnEnded = func() {
		if onEnded != nil {
			onEnded()
		}
		m.queued = append(m.queued, m.notifier.set("Finished "+m.options.Source.Label()))
	}

	session, err := playback.NewSession(
		m.options.Engine,
		m.options.Source,
		host,
		playback.WithDispatcher(m.dispatch),
		playback.WithHideDelay(m.options.HideDelay),
		playback.WithFullscreenWarning(func() { m.fullscreenBroken = true }),
	)
	if err != nil {
		return err
	}

	m.session = session
	m.started = false
	m.syncKeymap()
	return nil
}

// unmount tears the session down and stops the engine goroutines feeding the surface.
func (m *Model) unmount() {
	if m.session != nil {
		m.session.Close()
	}

	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

func (m *Model) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	m.width = width - x
	m.height = height - y
	m.helpC.Width = m.width
	m.progressC.Width = util.Max(10, m.width-lipgloss.Width(" 00:00 / 00:00"))
}

func (m *Model) syncKeymap() {
	s := m.session.State()
	m.keymap.setState(s.Status, m.session.UI().UnmutePromptVisible)
	if s.Status == playback.Playing {
		m.started = true
	}
}

// osd mirrors text on the engine display when enabled.
func (m *Model) osd(format string, args ...any) {
	if !m.options.OSD {
		return
	}

	announcer, ok := m.options.Engine.(engine.Announcer)
	if !ok {
		return
	}

	if err := announcer.ShowText(fmt.Sprintf(format, args...), osdMillis); err != nil {
		log.Debugf("osd: %v", err)
	}
}

func (m *Model) seekTo(t float64) {
	m.session.Seek(t)
	s := m.session.State()
	m.osd("%s / %s", util.FormatTime(s.CurrentTime), util.FormatTime(s.Duration))
}

func (m *Model) setVolume(v float64) {
	v = math.Round(v/volumeResolution) * volumeResolution
	m.session.SetVolume(v)
	m.osd("Volume %d%%", int(math.Round(m.session.State().Volume*100)))
}

func (m *Model) toggleMute() {
	m.session.ToggleMute()
	if s := m.session.State(); s.Muted {
		m.osd("Muted")
	} else {
		m.osd("Volume %d%%", int(math.Round(s.Volume*100)))
	}
}

// sliderMax is the upper bound of the seek bar: the duration, or 100 while it is unknown.
func sliderMax(s playback.PlaybackState) float64 {
	if s.DurationKnown() {
		return s.Duration
	}
	return 100
}

func (m *Model) schedule() tea.Cmd {
	arm, ok := m.session.PendingArm()
	if !ok {
		return nil
	}

	m.lastArm = arm.Gen
	return tea.Tick(arm.Delay, func(time.Time) tea.Msg {
		return hideMsg{gen: arm.Gen}
	})
}
