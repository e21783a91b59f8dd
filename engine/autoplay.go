package engine

import "fmt"

// AutoplayPolicy decides which non-gesture play requests an engine honours.
type AutoplayPolicy string

const (
	// AutoplayMuted allows automatic playback only while silent.
	AutoplayMuted AutoplayPolicy = "muted"
	// AutoplayBlock rejects every automatic play request.
	AutoplayBlock AutoplayPolicy = "block"
	AutoplayAllow AutoplayPolicy = "allow"
)

// ParseAutoplayPolicy validates a configured policy name.
func ParseAutoplayPolicy(s string) (AutoplayPolicy, error) {
	switch p := AutoplayPolicy(s); p {
	case AutoplayMuted, AutoplayBlock, AutoplayAllow:
		return p, nil
	default:
		return "", fmt.Errorf("unknown autoplay policy %q", s)
	}
}

// Permits reports whether a play request may proceed given the engine's audio state.
func (p AutoplayPolicy) Permits(gesture, muted bool, volume float64) bool {
	if gesture {
		return true
	}

	switch p {
	case AutoplayAllow:
		return true
	case AutoplayBlock:
		return false
	default:
		return muted || volume == 0
	}
}
