// Package icon renders UI symbols in the variant chosen by icons.variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/playdeck/playdeck/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every supported variant name.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Warn
	Play
	Pause
	Ended
	Muted
	Volume
	Fullscreen
	Windowed
	History
)

var icons = map[Icon]*iconDef{
	Fail:       {emoji: "💀", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "🟥"},
	Success:    {emoji: "🎉", nerd: "", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Progress:   {emoji: "👾", nerd: "", plain: "~", kaomoji: "(・_・)", squares: "🟦"},
	Warn:       {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(°ロ°)", squares: "🟨"},
	Play:       {emoji: "▶️", nerd: "", plain: ">", kaomoji: "ᕕ( ᐛ )ᕗ", squares: "▶"},
	Pause:      {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(－_－)", squares: "⏸"},
	Ended:      {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(￣ー￣)", squares: "⏹"},
	Muted:      {emoji: "🔇", nerd: "", plain: "mute", kaomoji: "(x_x)", squares: "▫"},
	Volume:     {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "(♪)", squares: "▪"},
	Fullscreen: {emoji: "⛶", nerd: "", plain: "[ ]", kaomoji: "[ ]", squares: "⬛"},
	Windowed:   {emoji: "🗗", nerd: "", plain: "[-]", kaomoji: "[-]", squares: "⬜"},
	History:    {emoji: "📜", nerd: "", plain: "#", kaomoji: "(￣▽￣)ノ", squares: "🟪"},
}

// Get returns the rendered string for i in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
