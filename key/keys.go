// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the engine process and the control surface behaviour.
const (
	PlayerBinary            = "player.binary"
	PlayerAutoplay          = "player.autoplay"
	PlayerControlsHideDelay = "player.controls_hide_delay"
	PlayerSeekStep          = "player.seek_step"
	PlayerVolumeStep        = "player.volume_step"
	PlayerShowOSD           = "player.show_osd"
)

// History Tracking - these keys configure how watch progress is recorded.
const (
	HistorySave                 = "history.save"
	HistorySaveInterval         = "history.save_interval"
	HistoryCompletionPercentage = "history.completion_percentage"
)

// Streaming API - these keys govern source resolution for movie identifiers.
const (
	APIBaseURL      = "api.base_url"
	APIRequireToken = "api.require_token"
)

// Iconography
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment
const (
	CliColored = "cli.colored"
)
