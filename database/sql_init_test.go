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

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQL(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestSplitSQLStatements(t *testing.T) {
	statements := splitSQLStatements(`
-- comment line
CREATE TABLE seed_notes (
    id INTEGER PRIMARY KEY,
    body TEXT
);

INSERT INTO seed_notes (body) VALUES ('a');
INSERT INTO seed_notes (body) VALUES ('b')
`)
	require.Len(t, statements, 3)
	assert.Equal(t, "CREATE TABLE seed_notes ( id INTEGER PRIMARY KEY, body TEXT );", statements[0])
	assert.Equal(t, "INSERT INTO seed_notes (body) VALUES ('b')", statements[2])
}

func TestParseFileOrder(t *testing.T) {
	assert.Equal(t, 1, parseFileOrder("001_default_forms.sql"))
	assert.Equal(t, 20, parseFileOrder("20_teams.sql"))
	assert.Equal(t, 999, parseFileOrder("teams.sql"))
}

func TestGetSQLFilesOrdersCommonFirst(t *testing.T) {
	root := t.TempDir()
	writeSQL(t, filepath.Join(root, "common", "002_b.sql"), "SELECT 1;")
	writeSQL(t, filepath.Join(root, "common", "001_a.sql"), "SELECT 1;")
	writeSQL(t, filepath.Join(root, "common", "README.md"), "ignored")
	writeSQL(t, filepath.Join(root, "environments", "hml", "001_c.sql"), "SELECT 1;")
	writeSQL(t, filepath.Join(root, "environments", "prod", "001_d.sql"), "SELECT 1;")

	s := NewSQLInitManager(nil, "hml")
	s.SetSQLRootPath(root)
	files, err := s.GetSQLFiles()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"001_a.sql", "002_b.sql", "001_c.sql"}, names)
}

func TestInitDataRendersEnvironment(t *testing.T) {
	root := t.TempDir()
	writeSQL(t, filepath.Join(root, "common", "001_schema.sql"), `
CREATE TABLE seed_notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);
`)
	writeSQL(t, filepath.Join(root, "environments", "hml", "001_notes.sql"), `
INSERT INTO seed_notes (body) VALUES ('{{ .ENVIRONMENT }}');
INSERT INTO seed_notes (body) VALUES ('{{ .CHAMADOS_SEED_OWNER }}');
`)
	t.Setenv("CHAMADOS_SEED_OWNER", "matheus")

	db := openTestDB(t)
	mm := NewMigrationManager(db, nil, DataMigrateConfig{})
	mm.SetDataInit(DataInitConfig{Filepath: root, Environment: "hml"})
	require.NoError(t, mm.InitData(context.Background()))

	var bodies []string
	require.NoError(t, db.NewSelect().TableExpr("seed_notes").Column("body").Order("id ASC").Scan(context.Background(), &bodies))
	assert.Equal(t, []string{"hml", "matheus"}, bodies)
}

func TestInitDataRollsBackFailedFile(t *testing.T) {
	root := t.TempDir()
	writeSQL(t, filepath.Join(root, "common", "001_schema.sql"), "CREATE TABLE seed_notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);")
	writeSQL(t, filepath.Join(root, "common", "002_notes.sql"), `
INSERT INTO seed_notes (body) VALUES ('ok');
INSERT INTO seed_notes (body) VALUES (NULL);
`)

	db := openTestDB(t)
	mm := NewMigrationManager(db, nil, DataMigrateConfig{})
	mm.SetDataInit(DataInitConfig{Filepath: root, Environment: "dev"})
	err := mm.InitData(context.Background())
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))

	n, err := db.NewSelect().TableExpr("seed_notes").Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBundledSeedFilesParse(t *testing.T) {
	s := NewSQLInitManager(nil, "dev")
	s.SetSQLRootPath(filepath.Join("..", "configs", "sql"))
	files, err := s.GetSQLFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		rendered, err := s.replaceEnvVariables(string(content))
		require.NoError(t, err, f.Path)
		assert.NotEmpty(t, splitSQLStatements(rendered), f.Path)
	}
}
