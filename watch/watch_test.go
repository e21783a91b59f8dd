package watch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playdeck/playdeck/auth"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/stream"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	Convey("A direct target plays as is", t, func() {
		src, err := Resolve(ctx, Options{Target: " /media/clip.mp4 ", Title: "Clip"})
		So(err, ShouldBeNil)
		So(src, ShouldResemble, playback.Source{URL: "/media/clip.mp4", Title: "Clip"})
	})

	Convey("Nothing to play is an error", t, func() {
		_, err := Resolve(ctx, Options{})
		So(err, ShouldNotBeNil)
	})

	Convey("Given a streaming API", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"` + r.PathValue("id") + `","title":"Night Shift"}`))
		})
		mux.HandleFunc("/movies/{id}/watch", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer t0k3n" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(`{"streamingUrl":"https://cdn.example/ns.m3u8"}`))
		})
		server := httptest.NewServer(mux)
		Reset(server.Close)

		viper.Set(key.APIBaseURL, server.URL)
		Reset(func() { viper.Set(key.APIBaseURL, "") })

		Convey("A movie id resolves with the stored token", func() {
			So(auth.SetToken("t0k3n"), ShouldBeNil)

			src, err := Resolve(ctx, Options{MovieID: "ns-1", Poster: "p.jpg"})
			So(err, ShouldBeNil)
			So(src.URL, ShouldEqual, "https://cdn.example/ns.m3u8")
			So(src.Title, ShouldEqual, "Night Shift")
			So(src.Poster, ShouldEqual, "p.jpg")
			So(src.MovieID, ShouldEqual, "ns-1")
		})

		Convey("Without entitlement nothing is mounted", func() {
			So(auth.DeleteToken(), ShouldBeNil)

			_, err := Resolve(ctx, Options{MovieID: "ns-2"})
			So(errors.Is(err, stream.ErrUnauthorized), ShouldBeTrue)
		})
	})
}

func TestRecorder(t *testing.T) {
	Convey("Given a recorder", t, func() {
		var saved []history.Entry
		rec := newRecorder(playback.Source{URL: "m.mp4", MovieID: "42", Title: "Movie"}, time.Hour, 90, true)
		rec.save = func(e history.Entry) error {
			saved = append(saved, e)
			return nil
		}
		host := rec.host()

		Convey("The first time update is written, the following ones are throttled", func() {
			host.OnTimeUpdate(1, 100)
			host.OnTimeUpdate(2, 100)
			host.OnTimeUpdate(3, 100)
			So(saved, ShouldHaveLength, 1)
			So(saved[0].Position, ShouldEqual, 1.0)

			Convey("and the last position is flushed on exit", func() {
				rec.flush()
				So(saved, ShouldHaveLength, 2)
				So(saved[1].Position, ShouldEqual, 3.0)
				So(saved[1].Percentage, ShouldEqual, 3.0)

				rec.flush()
				So(saved, ShouldHaveLength, 2)
			})
		})

		Convey("Passing the completion threshold marks the entry completed", func() {
			host.OnTimeUpdate(95, 100)
			So(saved[0].Completed, ShouldBeTrue)
		})

		Convey("The end writes a completed entry at once", func() {
			host.OnTimeUpdate(10, 100)
			host.OnEnded()
			So(saved, ShouldHaveLength, 2)
			So(saved[1].Completed, ShouldBeTrue)
			So(saved[1].Percentage, ShouldEqual, 100.0)
			So(saved[1].Position, ShouldEqual, 100.0)
		})

		Convey("Nothing is written when history is off", func() {
			rec.enabled = false
			host.OnTimeUpdate(1, 100)
			host.OnEnded()
			rec.flush()
			So(saved, ShouldBeEmpty)
		})
	})

	Convey("Recorded progress reaches the history", t, func() {
		So(history.Clear(), ShouldBeNil)
		rec := newRecorder(playback.Source{URL: "m.mp4", MovieID: "77", Title: "Saved"}, time.Hour, 90, true)
		rec.host().OnTimeUpdate(30, 60)

		entries, err := history.Get()
		So(err, ShouldBeNil)
		So(entries, ShouldContainKey, "movie:77")
		So(entries["movie:77"].Percentage, ShouldEqual, 50.0)
	})
}
