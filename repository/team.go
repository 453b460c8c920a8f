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

package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

type TeamRepository struct {
	Repository[entity.Team]
}

func NewTeamRepository(db *bun.DB) *TeamRepository {
	return &TeamRepository{NewRepository[entity.Team](db)}
}

// Create stores an active team with the default operational status.
func (r *TeamRepository) Create(ctx context.Context, name string, area entity.TeamArea) (int64, error) {
	return r.Insert(ctx, &entity.Team{
		TeamName:   name,
		TeamArea:   area,
		TeamStatus: entity.TeamStatusActive,
	})
}

func (r *TeamRepository) SelectByArea(ctx context.Context, area entity.TeamArea) ([]*entity.Team, error) {
	return r.List(ctx, types.NewQueryFilter("team_area = ?", area), false)
}

func (r *TeamRepository) SelectByName(ctx context.Context, name string) (*entity.Team, error) {
	return r.SelectOne(ctx, types.NewQueryFilter("team_name = ?", name))
}

// SetManager assigns the team manager; a nil managerID clears it.
func (r *TeamRepository) SetManager(ctx context.Context, teamID int64, managerID *int64, by *int64) (bool, error) {
	return r.Update(ctx, teamID, by, types.Fields{"team_manager_id": managerID})
}

func (r *TeamRepository) UpdateStatus(ctx context.Context, teamID int64, status entity.TeamStatus, by *int64) (bool, error) {
	return r.Update(ctx, teamID, by, types.Fields{"team_status": status})
}
