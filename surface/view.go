package surface

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/style"
	"github.com/playdeck/playdeck/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(paddingTop, paddingLeft)

// Layout of the controls, in rows below the top padding.
const (
	paddingTop  = 1
	paddingLeft = 2

	seekRow      = 4
	volumeRow    = 5
	promptRow    = 7
	promptHeight = 3

	volumeBarOffset = 0
)

var volumeBar = progress.New(
	progress.WithSolidFill(string(style.Lavender)),
	progress.WithoutPercentage(),
	progress.WithWidth(volumeBarWidth),
)

func (m *Model) View() string {
	if m.session == nil {
		return ""
	}

	s := m.session.State()
	ui := m.session.UI()

	var output string
	switch {
	case s.Status == playback.Errored:
		output = m.viewError(s)
	case !ui.ControlsVisible:
		output = m.viewHidden()
	default:
		output = m.viewControls(s, ui)
	}

	return m.notifier.View(output)
}

func (m *Model) viewTitle(ui playback.UIState) string {
	screen := icon.Get(icon.Windowed)
	if ui.FullscreenActive {
		screen = icon.Get(icon.Fullscreen)
	}
	if m.fullscreenBroken {
		screen = style.Faint(screen)
	}

	return style.Title(m.options.Source.Label()) + "  " + screen
}

func (m *Model) viewStatus(s playback.PlaybackState) string {
	switch {
	case s.Status == playback.Loading:
		return m.spinnerC.View() + " Loading"
	case s.Buffering:
		return m.spinnerC.View() + " Buffering"
	}

	switch s.Status {
	case playback.Playing:
		return style.Fg(style.SuccessColor)(icon.Get(icon.Play)) + " Playing"
	case playback.Paused:
		return icon.Get(icon.Pause) + " Paused"
	case playback.Ended:
		return icon.Get(icon.Ended) + " Ended"
	default:
		return util.Capitalize(s.Status.String())
	}
}

func (m *Model) viewSeek(s playback.PlaybackState) string {
	return fmt.Sprintf(
		"%s %s / %s",
		m.progressC.ViewAs(s.Progress()),
		util.FormatTime(s.CurrentTime),
		util.FormatTime(s.Duration),
	)
}

func viewVolume(s playback.PlaybackState) string {
	symbol := icon.Get(icon.Volume)
	if s.Muted {
		symbol = icon.Get(icon.Muted)
	}

	return fmt.Sprintf("%s %3d%% %s", volumeBar.ViewAs(s.Volume), int(math.Round(s.Volume*100)), symbol)
}

func viewPrompt() string {
	return style.Box(style.Orange).Render(
		icon.Get(icon.Muted) + " Playing muted. Press " + style.Bold("u") + " or click here to enable sound",
	)
}

func (m *Model) viewControls(s playback.PlaybackState, ui playback.UIState) string {
	poster := ""
	if !m.started && m.options.Source.Poster != "" {
		poster = style.Faint("poster " + m.options.Source.Poster)
	}

	lines := []string{
		m.viewTitle(ui),
		"",
		m.viewStatus(s),
		poster,
		m.viewSeek(s),
		viewVolume(s),
	}

	if ui.UnmutePromptVisible {
		lines = append(lines, "", viewPrompt())
	}

	return m.renderLines(true, lines)
}

func (m *Model) viewHidden() string {
	return m.renderLines(false, []string{
		m.viewTitle(m.session.UI()),
		"",
		style.Faint("move the mouse or press any key to show controls"),
	})
}

func (m *Model) viewError(s playback.PlaybackState) string {
	errorMsg := wrap.String(style.Fg(style.ErrorColor)(s.Err.Error()), m.width)

	return m.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " This video cannot be played",
		"",
		errorMsg,
	})
}

func (m *Model) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	if addHelp {
		if h := lipgloss.Height(l); m.height > h {
			l += strings.Repeat("\n", m.height-h)
		}
		l += m.helpC.View(m.keymap)
	}

	return paddingStyle.Render(l)
}
