// Package surface renders the player controls in the terminal and feeds user input
// to a playback session.
package surface

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/playback"
)

// Options configures a surface.
type Options struct {
	Engine engine.Engine
	Source playback.Source
	Host   playback.Host

	// HideDelay is the controls inactivity delay. Zero means playback.DefaultHideDelay.
	HideDelay time.Duration

	// SeekStep is the keyboard seek step in seconds.
	SeekStep float64

	// VolumeStep is the keyboard volume step in [0,1].
	VolumeStep float64

	// OSD mirrors control changes on the engine's own display when it supports it.
	OSD bool
}

// Run mounts the source and blocks until the user quits or the engine exits.
// The session is always torn down before Run returns.
func Run(options Options) error {
	model := New(options)
	if err := model.mount(); err != nil {
		return err
	}
	defer model.unmount()

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	if _, err := program.Run(); err != nil {
		return err
	}
	return model.fatal
}
