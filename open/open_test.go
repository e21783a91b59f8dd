package open

import (
	"testing"

	"github.com/playdeck/playdeck/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a platform", t, func() {
		original := goos
		Reset(func() { goos = original })

		Convey("Linux uses xdg-open", func() {
			goos = constant.Linux
			cmd, err := Command("https://example.com/poster.jpg")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", "https://example.com/poster.jpg"})
		})

		Convey("macOS uses open", func() {
			goos = constant.Darwin
			cmd, err := Command("a.jpg")
			So(err, ShouldBeNil)
			So(cmd.Args[0], ShouldEqual, "open")
		})

		Convey("Unknown platforms are rejected", func() {
			goos = "plan9"
			_, err := Command("a.jpg")
			So(err, ShouldNotBeNil)
			So(Start("a.jpg"), ShouldNotBeNil)
		})
	})
}
