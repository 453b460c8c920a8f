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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsYAML = `
app_name: Chamados HML
log:
  level: debug
database:
  connection:
    type: postgres
    host: db.local
    port: 5432
    dbname: chamados
    slow_query_time: 500ms
  init:
    environment: hml
`

func TestLoadDefaults(t *testing.T) {
	settings, err := Load(nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Portal de Chamados", settings.AppName)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, "sqlite", settings.Database.ConnectionConfig.Type)
	assert.Equal(t, "dev", settings.Database.DataInitConfig.Environment)
	assert.True(t, settings.Database.DataMigrateConfig.EnableForeignKey)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chamados.yaml"), []byte(settingsYAML), 0644))
	t.Setenv("DB_DRIVER", "pgx")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "text", "")
	flags.String("env", "dev", "")
	require.NoError(t, flags.Parse([]string{"--log-format=json"}))

	settings, err := Load(flags, dir)
	require.NoError(t, err)
	assert.Equal(t, "Chamados HML", settings.AppName)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)

	conn := settings.Database.ConnectionConfig
	assert.Equal(t, "postgres", conn.Type)
	assert.Equal(t, "pgx", conn.Driver)
	assert.Equal(t, "db.local", conn.Host)
	assert.Equal(t, 500*time.Millisecond, conn.SlowQueryTime)
	assert.Equal(t, 100, conn.MaxOpenConns)
	assert.Equal(t, "hml", settings.Database.DataInitConfig.Environment)
}

func TestLoadEnvironmentNames(t *testing.T) {
	t.Setenv("CHAMADOS_DATABASE_CONNECTION_URL", "sqlite://")
	t.Setenv("DEBUG", "true")

	settings, err := Load(nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sqlite://", settings.Database.ConnectionConfig.URL)
	assert.True(t, settings.Debug)
	assert.True(t, settings.Database.ConnectionConfig.EnableQueryLog)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load(nil, t.TempDir())
	assert.Error(t, err)

	settings := Default()
	settings.AppName = ""
	assert.Error(t, settings.Validate())
}

func TestConfigLoaderSharesDatabaseSettings(t *testing.T) {
	settings := Default()
	settings.ConfigLoader().ConnectionConfig.URL = "sqlite:///./portal.db"
	assert.Equal(t, "sqlite:///./portal.db", settings.Database.ConnectionConfig.URL)
}
