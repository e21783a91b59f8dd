package surface

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/util"
)

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinnerC.Tick, m.waitForEngine(), m.waitForEngineExit())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)

	if cmd := m.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case dispatchMsg:
		msg.fn()
		cmds = append(cmds, m.waitForEngine())
	case hideMsg:
		m.session.FireTimer(msg.gen)
	case engineExitedMsg:
		log.Info("engine exited")
		return m, m.quit()
	case tea.FocusMsg:
		m.session.PointerMoved()
	case tea.BlurMsg:
		m.session.PointerLeft()
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.forceQuit), key.Matches(msg, m.keymap.quit):
			return m, m.quit()
		}

		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinnerC, cmd = m.spinnerC.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncKeymap()

	cmds = append(cmds, m.queued...)
	m.queued = nil
	cmds = append(cmds, m.schedule())

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.unmount()
	return tea.Quit
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session.State()

	if s.Status == playback.Errored {
		if key.Matches(msg, m.keymap.retry) {
			if err := m.mount(); err != nil {
				m.fatal = err
				return m.quit()
			}
		}
		return nil
	}

	m.session.PointerMoved()

	switch {
	case key.Matches(msg, m.keymap.playPause):
		m.session.TogglePlay()
	case key.Matches(msg, m.keymap.seekBack):
		m.seekTo(s.CurrentTime - m.options.SeekStep)
	case key.Matches(msg, m.keymap.seekForward):
		m.seekTo(s.CurrentTime + m.options.SeekStep)
	case key.Matches(msg, m.keymap.seekPercent):
		n, _ := strconv.Atoi(msg.String())
		if s.DurationKnown() {
			m.seekTo(s.Duration * float64(n) / 10)
		}
	case key.Matches(msg, m.keymap.volumeUp):
		m.setVolume(s.Volume + m.options.VolumeStep)
	case key.Matches(msg, m.keymap.volumeDown):
		m.setVolume(s.Volume - m.options.VolumeStep)
	case key.Matches(msg, m.keymap.mute):
		m.toggleMute()
	case key.Matches(msg, m.keymap.enableSound):
		if m.session.UI().UnmutePromptVisible {
			m.toggleMute()
		}
	case key.Matches(msg, m.keymap.fullscreen):
		m.session.ToggleFullscreen()
	case key.Matches(msg, m.keymap.showHelp):
		m.helpC.ShowAll = !m.helpC.ShowAll
	}

	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.session.PointerMoved()

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	s := m.session.State()
	if s.Status == playback.Errored || s.Status == playback.Loading {
		return
	}

	ui := m.session.UI()
	if !ui.ControlsVisible {
		m.session.TogglePlay()
		return
	}

	x := msg.X - paddingLeft
	row := msg.Y - paddingTop

	switch {
	case row == seekRow && x >= 0 && x < m.progressC.Width:
		fraction := float64(x) / float64(util.Max(1, m.progressC.Width-1))
		m.seekTo(fraction * sliderMax(s))
	case row == volumeRow && x >= volumeBarOffset && x < volumeBarOffset+volumeBarWidth:
		fraction := float64(x-volumeBarOffset) / float64(volumeBarWidth-1)
		m.setVolume(fraction)
	case ui.UnmutePromptVisible && row >= promptRow && row < promptRow+promptHeight:
		m.toggleMute()
	default:
		m.session.TogglePlay()
	}
}
