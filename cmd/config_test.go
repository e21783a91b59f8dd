package cmd

import (
	"testing"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestParseValue(t *testing.T) {
	Convey("Given raw values from the command line", t, func() {
		Convey("Integer keys are parsed", func() {
			v, err := parseValue(key.PlayerSeekStep, "10")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 10)

			_, err = parseValue(key.PlayerSeekStep, "ten")
			So(err, ShouldNotBeNil)
		})

		Convey("Boolean keys are parsed", func() {
			v, err := parseValue(key.PlayerShowOSD, "false")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			_, err = parseValue(key.HistorySave, "maybe")
			So(err, ShouldNotBeNil)
		})

		Convey("String keys are kept as is", func() {
			v, err := parseValue(key.PlayerAutoplay, "block")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "block")
		})
	})
}

func TestUnknownKey(t *testing.T) {
	Convey("A misspelled key suggests the closest one", t, func() {
		So(errUnknownKey("player.autoplya").Error(), ShouldContainSubstring, key.PlayerAutoplay)
	})
}

func TestLocations(t *testing.T) {
	Convey("Given the location table", t, func() {
		Convey("Flags are unique", func() {
			flags := lo.Map(locations, func(l location, _ int) string { return l.flag })
			So(lo.Uniq(flags), ShouldHaveLength, len(flags))
		})

		Convey("The config is never cleared", func() {
			So(lo.ContainsBy(clearLocations, func(l location) bool { return l.flag == "config" }), ShouldBeFalse)
		})

		Convey("Every location is reachable through where", func() {
			So(whereLocations, ShouldHaveLength, len(locations))
		})
	})
}

func TestClearHistory(t *testing.T) {
	Convey("Given a recorded movie", t, func() {
		So(history.Save(history.Entry{ID: "42", Title: "The Long Take", Percentage: 30}), ShouldBeNil)

		target, ok := lo.Find(clearLocations, func(l location) bool { return l.flag == "history" })
		So(ok, ShouldBeTrue)

		Convey("Clearing history empties the registry and keeps it readable", func() {
			So(clearLocation(target), ShouldBeNil)

			entries, err := history.List()
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})
	})
}
