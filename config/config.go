/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tomoncle/chamados/database"
)

const envPrefix = "CHAMADOS"

type Settings struct {
	AppName  string          `mapstructure:"app_name" validate:"required"`
	Debug    bool            `mapstructure:"debug"`
	Log      LogSettings     `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
}

type LogSettings struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// env names kept from the deployment's .env files
var envAliases = map[string]string{
	"app_name":                          "APP_NAME",
	"debug":                             "DEBUG",
	"log.level":                         "LOG_LEVEL",
	"log.format":                        "LOG_FORMAT",
	"database.connection.url":           "DATABASE_URL",
	"database.connection.type":          "DB_TYPE",
	"database.connection.driver":        "DB_DRIVER",
	"database.init.environment":         "APP_ENV",
	"database.migrate.foreign_key_file": "DB_FOREIGN_KEY_FILE",
}

// flag name -> settings key, bound when Load receives a flag set
var flagKeys = map[string]string{
	"database-url": "database.connection.url",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"query-log":    "database.connection.enable_query_log",
	"env":          "database.init.environment",
}

func Default() *Settings {
	return &Settings{
		AppName:  "Portal de Chamados",
		Log:      LogSettings{Level: "info", Format: "text"},
		Database: *database.DefaultConfig(),
	}
}

// Load reads settings from, lowest priority first: defaults, the first
// chamados.yaml found in paths (or ., ./configs, /etc/chamados), a .env file
// in the working directory, the environment and the flags set on flags,
// which may be nil. Variables are read both with the CHAMADOS_ prefix
// (CHAMADOS_DATABASE_CONNECTION_URL) and under their plain names
// (DATABASE_URL).
func Load(flags *pflag.FlagSet, paths ...string) (*Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("chamados")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs", "/etc/chamados"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.NewReplacer(".", "_").Replace(key)), env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	settings := Default()
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}
	if settings.Debug {
		settings.Database.ConnectionConfig.EnableQueryLog = true
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	return nil
}

// ConfigLoader returns the database configuration InitDB expects.
func (s *Settings) ConfigLoader() *database.Config {
	return &s.Database
}
