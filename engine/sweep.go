package engine

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/log"
)

// StaleSocketAge is how old a socket must be before SweepSockets removes it.
const StaleSocketAge = 24 * time.Hour

// SweepSockets removes IPC sockets in dir left behind by engines that died
// without cleaning up. Sockets younger than olderThan may still be in use.
func SweepSockets(dir string, olderThan time.Duration) (removed int) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return 0
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "mpv-") || !strings.HasSuffix(name, ".sock") {
			continue
		}
		if time.Since(entry.ModTime()) <= olderThan {
			continue
		}

		if err := filesystem.API().Remove(filepath.Join(dir, name)); err != nil {
			log.Warnf("remove stale socket %s: %v", name, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Debugf("removed %d stale engine sockets", removed)
	}
	return removed
}
