// Package open hands URLs and files to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/playdeck/playdeck/constant"
)

var goos = runtime.GOOS

// Command builds the handler invocation for target on the current platform.
func Command(target string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
	case constant.Darwin:
		return exec.Command("open", target), nil
	case constant.Linux:
		return exec.Command("xdg-open", target), nil
	case constant.Android:
		return exec.Command("termux-open", target), nil
	default:
		return nil, fmt.Errorf("opening %q is not supported on %s", target, goos)
	}
}

// Start opens target without waiting for the handler to exit.
func Start(target string) error {
	cmd, err := Command(target)
	if err != nil {
		return err
	}
	return cmd.Start()
}
