package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSweepSockets(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Given a socket directory", t, func() {
		dir := filepath.Join("/tmp", "playdeck-sweep")
		fs := filesystem.API()
		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)
		Reset(func() { _ = fs.RemoveAll(dir) })

		touch := func(name string, age time.Duration) {
			path := filepath.Join(dir, name)
			So(fs.WriteFile(path, nil, 0o600), ShouldBeNil)
			at := time.Now().Add(-age)
			So(fs.Chtimes(path, at, at), ShouldBeNil)
		}

		touch("mpv-old00000.sock", 48*time.Hour)
		touch("mpv-fresh000.sock", time.Minute)
		touch("notes.txt", 48*time.Hour)

		Convey("Only old engine sockets are removed", func() {
			So(SweepSockets(dir, StaleSocketAge), ShouldEqual, 1)

			old, _ := fs.Exists(filepath.Join(dir, "mpv-old00000.sock"))
			fresh, _ := fs.Exists(filepath.Join(dir, "mpv-fresh000.sock"))
			other, _ := fs.Exists(filepath.Join(dir, "notes.txt"))
			So(old, ShouldBeFalse)
			So(fresh, ShouldBeTrue)
			So(other, ShouldBeTrue)
		})

		Convey("A missing directory is not an error", func() {
			So(SweepSockets(filepath.Join(dir, "missing"), StaleSocketAge), ShouldEqual, 0)
		})
	})
}
