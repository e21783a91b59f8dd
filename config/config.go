// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playdeck/playdeck/constant"
	"github.com/playdeck/playdeck/filesystem"
	"github.com/playdeck/playdeck/key"
	"github.com/playdeck/playdeck/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state: defaults, environment bindings and the config file.
func Setup() error {
	viper.SetConfigName(constant.Playdeck)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Playdeck)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	return Validate()
}

// Validate rejects values that would leave the player in an unusable state.
func Validate() error {
	if policy := viper.GetString(key.PlayerAutoplay); !lo.Contains(AutoplayPolicies, policy) {
		return fmt.Errorf("%s: unknown autoplay policy %q, expected one of %s", key.PlayerAutoplay, policy, strings.Join(AutoplayPolicies, ", "))
	}

	if delay := viper.GetInt(key.PlayerControlsHideDelay); delay <= 0 {
		return fmt.Errorf("%s: must be positive, got %d", key.PlayerControlsHideDelay, delay)
	}

	if pct := viper.GetInt(key.HistoryCompletionPercentage); pct < 1 || pct > 100 {
		return fmt.Errorf("%s: must be within 1-100, got %d", key.HistoryCompletionPercentage, pct)
	}

	return nil
}
