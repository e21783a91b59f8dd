package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/network"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type api struct {
	server *httptest.Server
	hits   atomic.Int32
	auth   atomic.Value
}

func newAPI() *api {
	a := &api{}
	mux := http.NewServeMux()
	mux.HandleFunc("/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
		a.hits.Add(1)
		a.auth.Store(r.Header.Get("Authorization"))
		switch id := r.PathValue("id"); id {
		case "missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Film introuvable"}`))
		default:
			_, _ = w.Write([]byte(`{"id":"` + id + `","title":"Movie ` + id + `","poster":"https://img.example/` + id + `.jpg"}`))
		}
	})
	mux.HandleFunc("/movies/{id}/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Session expirée"}`))
			return
		}
		_, _ = w.Write([]byte(`{"streamingUrl":"https://cdn.example/` + r.PathValue("id") + `/master.m3u8"}`))
	})
	a.server = httptest.NewServer(mux)
	return a
}

func resolver(base, token string) *Resolver {
	return &Resolver{
		BaseURL: base,
		Client:  network.NewClient(0),
		Token: func() (string, error) {
			if token == "" {
				return "", errors.New("no token")
			}
			return token, nil
		},
	}
}

func TestResolver(t *testing.T) {
	Convey("Given a streaming API", t, func() {
		a := newAPI()
		Reset(a.server.Close)
		ctx := context.Background()

		Convey("A movie with a valid token resolves to its streaming URL", func() {
			src, err := resolver(a.server.URL, "good").Resolve(ctx, "m1")
			So(err, ShouldBeNil)
			So(src.URL, ShouldEqual, "https://cdn.example/m1/master.m3u8")
			So(src.MovieID, ShouldEqual, "m1")
			So(src.Title, ShouldEqual, "Movie m1")
			So(src.Poster, ShouldEqual, "https://img.example/m1.jpg")
			So(a.auth.Load(), ShouldEqual, "Bearer good")
		})

		Convey("A refused token is an entitlement error", func() {
			_, err := resolver(a.server.URL, "bad").Resolve(ctx, "m2")
			So(errors.Is(err, ErrUnauthorized), ShouldBeTrue)

			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Message, ShouldEqual, "Session expirée")
		})

		Convey("No token at all never reaches the API", func() {
			_, err := resolver(a.server.URL, "").StreamingURL(ctx, "m3")
			So(errors.Is(err, ErrUnauthorized), ShouldBeTrue)
		})

		Convey("Catalogue entries are cached", func() {
			r := resolver(a.server.URL, "")
			first, err := r.Movie(ctx, "m4")
			So(err, ShouldBeNil)
			So(a.auth.Load(), ShouldEqual, "")

			second, err := r.Movie(ctx, "m4")
			So(err, ShouldBeNil)
			So(second.Title, ShouldEqual, first.Title)
			So(a.hits.Load(), ShouldEqual, int32(1))
		})

		Convey("Catalogue failures carry the API message", func() {
			_, err := resolver(a.server.URL, "good").Movie(ctx, "missing")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "Film introuvable")
			So(errors.Is(err, ErrUnauthorized), ShouldBeFalse)
		})

		Convey("A failed catalogue lookup still plays", func() {
			src, err := resolver(a.server.URL, "good").Resolve(ctx, "missing")
			So(err, ShouldBeNil)
			So(src.URL, ShouldEqual, "https://cdn.example/missing/master.m3u8")
			So(src.Title, ShouldBeEmpty)
		})
	})

	Convey("Without a base URL nothing can be resolved", t, func() {
		_, err := resolver("", "good").Resolve(context.Background(), "m1")
		So(err, ShouldEqual, ErrNoBaseURL)
	})
}
