package engine

// Capability is one way of entering and leaving fullscreen.
type Capability interface {
	Name() string
	// Supported probes whether the capability is usable right now.
	Supported() bool
	Enter() error
	Exit() error
}

// Capabilities lists an engine's fullscreen strategies by tier.
// Any field may be empty.
type Capabilities struct {
	Standard     Capability
	Vendor       []Capability
	Presentation Capability

	// Active reports the platform-wide fullscreen flag.
	Active func() bool
}
