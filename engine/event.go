package engine

import (
	"fmt"
	"math"
)

// Kind enumerates engine lifecycle notifications.
type Kind int

const (
	// Ready means enough of the source is available to start playback.
	Ready Kind = iota + 1
	// Started means playback was requested and is no longer paused.
	Started
	// Playing means frames are advancing after any buffering.
	Playing
	Paused
	TimeUpdate
	// Waiting means playback stalled on buffering or seeking.
	Waiting
	Metadata
	Ended
	// Failed means the source could not be fetched or decoded. Err is set.
	Failed
	// FullscreenChanged reports the platform fullscreen flag in Active.
	FullscreenChanged
)

var kindNames = map[Kind]string{
	Ready:             "ready",
	Started:           "play",
	Playing:           "playing",
	Paused:            "pause",
	TimeUpdate:        "timeupdate",
	Waiting:           "waiting",
	Metadata:          "loadedmetadata",
	Ended:             "ended",
	Failed:            "error",
	FullscreenChanged: "fullscreenchange",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single engine notification.
type Event struct {
	Kind Kind

	// Time is the playback position in seconds for TimeUpdate.
	Time float64

	// Duration is the media length in seconds for Ready and Metadata; NaN while unknown.
	Duration float64

	Active bool
	Err    error
}

func (e Event) String() string {
	switch e.Kind {
	case TimeUpdate:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Time)
	case Ready, Metadata:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Duration)
	case FullscreenChanged:
		return fmt.Sprintf("%s(%t)", e.Kind, e.Active)
	case Failed:
		return fmt.Sprintf("%s(%v)", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

// UnknownDuration is the Duration of events emitted before metadata is available.
var UnknownDuration = math.NaN()
