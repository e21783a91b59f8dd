package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/playdeck/playdeck/icon"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/style"
	"github.com/spf13/viper"
)

// CheckDependencies exits when the configured media engine is not on PATH.
func CheckDependencies() {
	binary := viper.GetString(key.PlayerBinary)
	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependency(binary)
		os.Exit(1)
	}
}

func installHint(binary string) string {
	if binary != "mpv" {
		return ""
	}

	switch runtime.GOOS {
	case "darwin":
		return "brew install mpv"
	case "linux":
		return "sudo apt install mpv"
	case "windows":
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependency(binary string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Media engine not found", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("%q is not in your PATH. Set %s to another mpv compatible binary or install it.", binary, key.PlayerBinary))

	lines := []string{title, "", body}
	if hint := installHint(binary); hint != "" {
		lines = append(lines, "", "Try:", "  "+style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}
