package surface

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/style"
)

// statefulKeymap exposes the bindings that make sense for the current playback state.
type statefulKeymap struct {
	status playback.Status
	prompt bool

	quit, forceQuit,
	playPause,
	seekBack, seekForward, seekPercent,
	volumeUp, volumeDown,
	mute, enableSound,
	fullscreen,
	retry,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(status playback.Status, prompt bool) {
	k.status = status
	k.prompt = prompt
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "space", "k"),
			key.WithHelp("space", "play/pause"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "forward"),
		),
		seekPercent: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "+", "="),
			key.WithHelp("↑", "louder"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "-"),
			key.WithHelp("↓", "quieter"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		enableSound: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp(style.Fg(style.Orange)("u"), style.Fg(style.Orange)("enable sound")),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.status {
	case playback.Errored:
		return h(k.retry, k.quit), h(k.retry, k.quit, k.forceQuit)
	case playback.Idle, playback.Loading:
		return h(k.quit), h(k.quit, k.forceQuit)
	}

	if k.prompt {
		return h(k.enableSound, k.playPause, k.showHelp, k.quit),
			h(k.enableSound, k.playPause, k.seekBack, k.seekForward, k.seekPercent, k.volumeUp, k.volumeDown, k.mute, k.fullscreen, k.quit)
	}

	return h(k.playPause, k.mute, k.fullscreen, k.showHelp, k.quit),
		h(k.playPause, k.seekBack, k.seekForward, k.seekPercent, k.volumeUp, k.volumeDown, k.mute, k.fullscreen, k.quit)
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
