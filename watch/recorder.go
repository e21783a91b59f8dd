package watch

import (
	"time"

	"github.com/playdeck/playdeck/history"
	"github.com/playdeck/playdeck/log"
	"github.com/playdeck/playdeck/playback"
	"golang.org/x/time/rate"
)

// recorder turns playback callbacks into history entries. Time updates arrive at
// engine cadence, so writes are throttled; the last position is always flushed on exit.
type recorder struct {
	entry      history.Entry
	limiter    *rate.Limiter
	completion float64
	enabled    bool
	dirty      bool

	save func(history.Entry) error
}

func newRecorder(src playback.Source, interval time.Duration, completion float64, enabled bool) *recorder {
	return &recorder{
		entry: history.Entry{
			ID:     src.MovieID,
			Title:  src.Label(),
			Source: src.URL,
			Poster: src.Poster,
		},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		completion: completion,
		enabled:    enabled,
		save:       history.Save,
	}
}

func (r *recorder) host() playback.Host {
	return playback.Host{
		OnTimeUpdate: r.onTimeUpdate,
		OnEnded:      r.onEnded,
	}
}

func (r *recorder) onTimeUpdate(current, duration float64) {
	r.entry.Position = current
	if duration > 0 {
		r.entry.Duration = duration
		r.entry.Percentage = current * 100 / duration
		if r.entry.Percentage >= r.completion {
			r.entry.Completed = true
		}
	}
	r.dirty = true

	if r.limiter.Allow() {
		r.flush()
	}
}

func (r *recorder) onEnded() {
	r.entry.Completed = true
	r.entry.Percentage = 100
	if r.entry.Duration > 0 {
		r.entry.Position = r.entry.Duration
	}
	r.dirty = true
	r.flush()
}

func (r *recorder) flush() {
	if !r.enabled || !r.dirty {
		return
	}

	if err := r.save(r.entry); err != nil {
		log.Warnf("save history: %v", err)
		return
	}
	r.dirty = false
}
