package where

import (
	"path/filepath"
	"testing"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/playdeck")
			So(Config(), ShouldEqual, "/custom/playdeck")
			So(lo.Must(filesystem.API().IsDir("/custom/playdeck")), ShouldBeTrue)
		})

		Convey("Logs() lives under Config()", func() {
			path := Logs()
			So(filepath.Dir(path), ShouldEqual, Config())
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("History() is a file path, not a directory", func() {
			So(filepath.Ext(History()), ShouldEqual, ".json")
		})

		Convey("Sockets()", func() {
			So(lo.Must(filesystem.API().IsDir(Sockets())), ShouldBeTrue)
		})
	})
}
