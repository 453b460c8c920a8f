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
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

type Team struct {
	bun.BaseModel `bun:"table:teams,alias:tm"`
	Record

	TeamName        string     `bun:"team_name,notnull,unique" json:"team_name"`
	TeamDescription *string    `bun:"team_description,type:text" json:"team_description"`
	TeamArea        TeamArea   `bun:"team_area,notnull" json:"team_area"`
	TeamStatus      TeamStatus `bun:"team_status,notnull,default:'ativo'" json:"team_status"`
	TeamManagerID   *int64     `bun:"team_manager_id" json:"team_manager_id"`
	TeamLocation    *string    `bun:"team_location" json:"team_location"`
	TeamCostCenter  *string    `bun:"team_cost_center" json:"team_cost_center"`
}

func (t *Team) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.TeamName, validation.Required),
		validation.Field(&t.TeamArea, validation.Required, validation.By(validEnum)),
		validation.Field(&t.TeamStatus, validation.By(validEnum)),
	)
}
