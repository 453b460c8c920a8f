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
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/entity"
)

func portalRegistry() ModelRegistry {
	registry := NewModelRegistry()
	for model, priority := range entity.Models() {
		registry.Register(NewModelAdapter(model, priority))
	}
	return registry
}

func newPortalMigrations(db *bun.DB) *MigrationManager {
	mm := NewMigrationManager(db, nil, DataMigrateConfig{EnableForeignKey: true, EnableIndexes: true})
	mm.SetRegistry(portalRegistry())
	return mm
}

func TestRegistryOrdersByPriority(t *testing.T) {
	models := portalRegistry().Models()
	require.Len(t, models, len(entity.Models()))
	for i := 1; i < len(models); i++ {
		assert.LessOrEqual(t, models[i-1].Priority(), models[i].Priority())
	}
	assert.IsType(t, (*entity.Team)(nil), models[0].Instance())
}

func TestRunMigrationsCreatesPortalSchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mm := newPortalMigrations(db)

	require.NoError(t, mm.RunMigrations(ctx))
	// a second run only finds applied versions
	require.NoError(t, mm.RunMigrations(ctx))

	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002", "003"}, lo.Map(applied, func(m Migration, _ int) string { return m.Version }))

	for _, model := range instancesOf(portalRegistry()) {
		_, err := db.NewSelect().Model(model).Count(ctx)
		assert.NoError(t, err, modelName(model))
	}
	for _, table := range []string{"teams", "users", "tickets", "project_approvals", "user_ticket_follows"} {
		_, err := db.NewSelect().TableExpr(table).ColumnExpr("id").Limit(1).Exec(ctx)
		assert.NoError(t, err, table)
	}

	var indexes int
	err = db.NewSelect().
		TableExpr("sqlite_master").
		ColumnExpr("count(*)").
		Where("type = 'index' AND name IN (?)", bun.In([]string{"idx_users_user_team_id", "idx_tickets_active"})).
		Scan(ctx, &indexes)
	require.NoError(t, err)
	assert.Equal(t, 2, indexes)
}

func TestMigrationsWithoutOptionalSteps(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	mm := NewMigrationManager(db, nil, DataMigrateConfig{})
	mm.SetRegistry(portalRegistry())

	require.NoError(t, mm.RunMigrations(ctx))
	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "create_tables", applied[0].Name)
}
