// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"strings"

	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/filesystem"
	"github.com/anisan-cli/reel/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads the optional config file.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
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
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}
