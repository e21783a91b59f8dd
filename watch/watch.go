// Package watch is the player's host: it resolves what to play, records progress and runs the surface.
package watch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playdeck/playdeck/engine"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/playback"
	"github.com/playdeck/playdeck/stream"
	"github.com/playdeck/playdeck/surface"
	"github.com/playdeck/playdeck/where"
	"github.com/spf13/viper"
)

// Options selects the source. Either Target or MovieID must be set.
type Options struct {
	// Target is a URL or local path played as is.
	Target string

	// MovieID is resolved through the streaming API.
	MovieID string

	// Title and Poster override what the API reports.
	Title  string
	Poster string
}

// Resolve returns the source to play. Movie ids need a valid API token; an entitlement
// failure is reported here, before anything is mounted.
func Resolve(ctx context.Context, options Options) (playback.Source, error) {
	var src playback.Source

	switch {
	case options.MovieID != "":
		resolver := stream.NewResolver(viper.GetString(key.APIBaseURL))
		resolver.RequireToken = viper.GetBool(key.APIRequireToken)

		resolved, err := resolver.Resolve(ctx, options.MovieID)
		if err != nil {
			return src, err
		}
		src = resolved
	case strings.TrimSpace(options.Target) != "":
		src.URL = strings.TrimSpace(options.Target)
	default:
		return src, errors.New("nothing to play: pass a URL, a path or --movie")
	}

	if options.Title != "" {
		src.Title = options.Title
	}
	if options.Poster != "" {
		src.Poster = options.Poster
	}

	return src, nil
}

// Run resolves the source and plays it until the user quits.
func Run(ctx context.Context, options Options) error {
	src, err := Resolve(ctx, options)
	if err != nil {
		return err
	}

	policy, err := engine.ParseAutoplayPolicy(viper.GetString(key.PlayerAutoplay))
	if err != nil {
		return err
	}

	engine.SweepSockets(where.Sockets(), engine.StaleSocketAge)

	mpv := engine.NewMPV(engine.Options{
		Binary:    viper.GetString(key.PlayerBinary),
		Autoplay:  policy,
		SocketDir: where.Sockets(),
	})
	defer func() {
		if err := mpv.Close(); err != nil {
			log.Warnf("close engine: %v", err)
		}
	}()

	rec := newRecorder(
		src,
		time.Duration(viper.GetInt(key.HistorySaveInterval))*time.Second,
		float64(viper.GetInt(key.HistoryCompletionPercentage)),
		viper.GetBool(key.HistorySave),
	)
	defer rec.flush()

	log.Infof("watching %s", src.Label())

	err = surface.Run(surface.Options{
		Engine:     mpv,
		Source:     src,
		Host:       rec.host(),
		HideDelay:  time.Duration(viper.GetInt(key.PlayerControlsHideDelay)) * time.Millisecond,
		SeekStep:   viper.GetFloat64(key.PlayerSeekStep),
		VolumeStep: viper.GetFloat64(key.PlayerVolumeStep) / 100,
		OSD:        viper.GetBool(key.PlayerShowOSD),
	})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	return nil
}
