package history

import (
	"testing"
	"time"

	"github.com/playdeck/playdeck/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		now = func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}
		Reset(func() { now = time.Now })

		movie := Entry{
			ID:         "42",
			Title:      "The Long Take",
			Source:     "https://cdn.example/42.m3u8",
			Position:   60,
			Duration:   600,
			Percentage: 10,
		}

		Convey("When saving an entry", func() {
			So(Save(movie), ShouldBeNil)

			Convey("Then it is stored under the movie id", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldContainKey, "movie:42")
				So(saved["movie:42"].Title, ShouldEqual, movie.Title)
				So(saved["movie:42"].UpdatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And progress never goes backwards", func() {
				earlier := movie
				earlier.Position, earlier.Percentage = 5, 1
				So(Save(earlier), ShouldBeNil)

				saved, _ := Get()
				So(saved["movie:42"].Percentage, ShouldEqual, 10.0)
				So(saved["movie:42"].Position, ShouldEqual, 5.0)
			})

			Convey("And completion sticks", func() {
				done := movie
				done.Completed, done.Percentage = true, 100
				So(Save(done), ShouldBeNil)

				again := movie
				again.Percentage = 3
				So(Save(again), ShouldBeNil)

				saved, _ := Get()
				So(saved["movie:42"].Completed, ShouldBeTrue)
				So(saved["movie:42"].Percentage, ShouldEqual, 100.0)
			})

			Convey("And it can be removed", func() {
				So(Remove(&movie), ShouldBeNil)
				saved, _ := Get()
				So(saved, ShouldBeEmpty)
			})
		})

		Convey("Direct sources are keyed by their location", func() {
			direct := Entry{Source: "/media/clip.mp4", Percentage: 250}
			So(direct.Key(), ShouldEqual, "source:/media/clip.mp4")
			So(Save(direct), ShouldBeNil)

			saved, _ := Get()
			So(saved["source:/media/clip.mp4"].Percentage, ShouldEqual, 100.0)
		})

		Convey("Listing returns the most recent first", func() {
			other := Entry{ID: "7", Title: "Night Shift", Source: "https://cdn.example/7.m3u8"}
			So(Save(movie), ShouldBeNil)
			So(Save(other), ShouldBeNil)

			entries, err := List()
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].ID, ShouldEqual, "7")
			So(entries[1].ID, ShouldEqual, "42")

			Convey("And filtering matches titles fuzzily", func() {
				found := Filter(entries, "lngtake")
				So(found, ShouldHaveLength, 1)
				So(found[0].ID, ShouldEqual, "42")

				So(Filter(entries, "  "), ShouldHaveLength, 2)
				So(Filter(entries, "zzz"), ShouldBeEmpty)
			})
		})
	})
}

func TestEntryString(t *testing.T) {
	Convey("Entries describe their progress", t, func() {
		e := Entry{Title: "Clip", Position: 65, Duration: 130, Percentage: 50}
		So(e.String(), ShouldEqual, "Clip : 1:05 / 2:10 (50%)")

		e.Completed = true
		So(e.String(), ShouldEqual, "Clip : finished")
	})
}
