package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Playdeck + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// AutoplayPolicies lists the accepted values of key.PlayerAutoplay.
var AutoplayPolicies = []string{"muted", "block", "allow"}

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("Duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.PlayerBinary, "mpv", "Media engine executable.\nMust speak the mpv JSON-IPC protocol")
	register(key.PlayerAutoplay, "muted", "Autoplay gate applied by the engine to non user-initiated play requests.\nAvailable options are: muted, block, allow")
	register(key.PlayerControlsHideDelay, 3000, "Milliseconds of pointer inactivity before the controls hide during playback")
	register(key.PlayerSeekStep, 5, "Seconds to seek per arrow key press")
	register(key.PlayerVolumeStep, 5, "Volume percent to change per arrow key press")
	register(key.PlayerShowOSD, true, "Mirror control changes to the engine on-screen display")
	register(key.HistorySave, true, "Record watch progress")
	register(key.HistorySaveInterval, 10, "Minimum seconds between progress writes during playback")
	register(key.HistoryCompletionPercentage, 90, "Percentage at which a movie counts as watched (1-100)")
	register(key.APIBaseURL, "", "Base URL of the streaming API used to resolve movie identifiers")
	register(key.APIRequireToken, true, "Refuse to resolve movies without a stored API token.\nType \"playdeck login\" to store one")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(style.Purple),
	"blue":     style.Fg(style.Blue),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
