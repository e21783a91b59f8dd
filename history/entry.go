package history

import (
	"fmt"
	"time"

	"github.com/playdeck/playdeck/util"
)

// Entry is the recorded progress of one source.
type Entry struct {
	ID     string `json:"id" jsonschema:"description=Movie ID on the streaming API. Empty for direct sources."`
	Title  string `json:"title" jsonschema:"description=Title shown while playing."`
	Source string `json:"source" jsonschema:"description=URL or path that was played."`
	Poster string `json:"poster,omitempty" jsonschema:"description=Poster image URL."`

	Position   float64 `json:"position" jsonschema:"description=Last playback position in seconds."`
	Duration   float64 `json:"duration" jsonschema:"description=Duration in seconds. Zero when it was never known."`
	Percentage float64 `json:"percentage" jsonschema:"description=Highest watched percentage, from 0 to 100."`
	Completed  bool    `json:"completed" jsonschema:"description=Whether the movie was watched to the end."`

	UpdatedAt time.Time `json:"updated_at" jsonschema:"description=Time of the last update."`
}

// Key identifies the entry: the movie id when known, the source otherwise.
func (e *Entry) Key() string {
	if e.ID != "" {
		return "movie:" + e.ID
	}
	return "source:" + e.Source
}

func (e *Entry) label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Source
}

func (e *Entry) String() string {
	if e.Completed {
		return fmt.Sprintf("%s : finished", e.label())
	}
	return fmt.Sprintf("%s : %s / %s (%.0f%%)", e.label(), util.FormatTime(e.Position), util.FormatTime(e.Duration), e.Percentage)
}
