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

package entity

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/tomoncle/chamados/types"
)

var testTables = sqlitedialect.New().Tables()

func tableOf[T any]() *schema.Table {
	return testTables.Get(reflect.TypeOf((*T)(nil)).Elem())
}

func TestToMapProjectsPlainValues(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	approved := 120000.0
	priority := PriorityUrgent
	project := &Project{
		Record: Record{
			ID:        7,
			CreatedAt: created,
			UpdatedAt: created,
			Active:    types.StatusActive,
		},
		ProjectName:            "Otimizacao Rotas",
		ProjectTags:            ProjectTagAssigned,
		ProjectPriority:        &priority,
		ProjectStatus:          WorkStatusActive,
		ProjectStartDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ProjectExpectedEndDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		ProjectApprovedBudget:  &approved,
		ProjectScope:           types.JsonObject{"goal": "reduzir custo"},
		ProjectRisks:           types.JsonArray{{"risk": "clima"}},
	}

	row := ToMap(tableOf[Project](), project)
	assert.Equal(t, int64(7), row["id"])
	assert.Equal(t, "ativo", row["active"])
	assert.Equal(t, "atribuido", row["project_tags"])
	assert.Equal(t, "urgente", row["project_priority"])
	assert.Equal(t, "2024-01-15", row["project_start_date"])
	assert.Equal(t, "2024-06-30", row["project_expected_end_date"])
	assert.Equal(t, created.Format(time.RFC3339Nano), row["created_at"])
	assert.Equal(t, 120000.0, row["project_approved_budget"])
	assert.Equal(t, map[string]interface{}{"goal": "reduzir custo"}, row["project_scope"])
	assert.Equal(t, []interface{}{map[string]interface{}{"risk": "clima"}}, row["project_risks"])

	assert.Contains(t, row, "deleted_at")
	assert.Nil(t, row["deleted_at"])
	assert.Nil(t, row["project_real_end_date"])
	assert.Nil(t, row["project_milestones"])
}

func TestToMapHidesPasswordAndRelations(t *testing.T) {
	user := &User{
		UserEmail:    "ana.silva@raizen.com",
		UserPassword: "$2a$10$hash",
		UserRole:     RoleRequester,
		Team:         &Team{TeamName: "Planejamento Agricola"},
	}
	row := ToMap(tableOf[User](), user)
	assert.Equal(t, "ana.silva@raizen.com", row["user_email"])
	assert.Equal(t, "solicitante", row["user_role"])
	assert.NotContains(t, row, "user_password")
	assert.NotContains(t, row, "team_name")
	assert.NotContains(t, row, "Team")

	assert.Empty(t, ToMap(tableOf[User](), (*User)(nil)))
	assert.Empty(t, ToMap(tableOf[Team](), user))
}

func TestToMaps(t *testing.T) {
	rows := ToMaps(tableOf[Team](), []*Team{
		{TeamName: "Performance Agricola", TeamArea: AreaEAB},
		{TeamName: "Planejamento Agricola", TeamArea: AreaProjects},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "eab", rows[0]["team_area"])
	assert.Equal(t, "Planejamento Agricola", rows[1]["team_name"])
}
