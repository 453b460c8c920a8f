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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/types"
)

type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`
	Record

	ProjectName                 string           `bun:"project_name,notnull,unique" json:"project_name"`
	ProjectDirectory            string           `bun:"project_directory,notnull,unique" json:"project_directory"`
	ProjectDescription          string           `bun:"project_description,notnull,type:text" json:"project_description"`
	ProjectCategory             *string          `bun:"project_category" json:"project_category"`
	ProjectMethodology          *string          `bun:"project_methodology" json:"project_methodology"`
	ProjectTags                 ProjectTag       `bun:"project_tags,notnull" json:"project_tags"`
	ProjectPriority             *ProjectPriority `bun:"project_priority" json:"project_priority"`
	ProjectRiskLevel            *RiskLevel       `bun:"project_risk_level" json:"project_risk_level"`
	ProjectTeamResponsibleID    int64            `bun:"project_team_responsible_id,notnull" json:"project_team_responsible_id"`
	ProjectManagerID            int64            `bun:"project_manager_id,notnull" json:"project_manager_id"`
	ProjectStatus               WorkStatus       `bun:"project_status,notnull" json:"project_status"`
	ProjectStatusChangedAt      *time.Time       `bun:"project_status_changed_at" json:"project_status_changed_at"`
	ProjectStatusChangedByID    *int64           `bun:"project_status_changed_by_id" json:"project_status_changed_by_id"`
	ProjectStartDate            time.Time        `bun:"project_start_date,notnull,type:date" json:"project_start_date"`
	ProjectExpectedEndDate      time.Time        `bun:"project_expected_end_date,notnull,type:date" json:"project_expected_end_date"`
	ProjectApprovedAt           *time.Time       `bun:"project_approved_at,type:date" json:"project_approved_at"`
	ProjectRealEndDate          *time.Time       `bun:"project_real_end_date,type:date" json:"project_real_end_date"`
	ProjectPlannedBudget        float64          `bun:"project_planned_budget,notnull" json:"project_planned_budget"`
	ProjectApprovedBudget       *float64         `bun:"project_approved_budget" json:"project_approved_budget"`
	ProjectSpentBudget          *float64         `bun:"project_spent_budget" json:"project_spent_budget"`
	ProjectFinalBudget          *float64         `bun:"project_final_budget" json:"project_final_budget"`
	ProjectCompletionPercentage float64          `bun:"project_completion_percentage,notnull,default:0" json:"project_completion_percentage"`
	ProjectApproversCount       int              `bun:"project_approvers_count,notnull,default:0" json:"project_approvers_count"`
	ProjectPublic               bool             `bun:"project_public,notnull,default:true" json:"project_public"`

	// Documentation blocks, each a JSON document.
	ProjectScope            types.JsonObject `bun:"project_scope,type:text" json:"project_scope"`
	ProjectExpectedBenefits types.JsonObject `bun:"project_expected_benefits,type:text" json:"project_expected_benefits"`
	ProjectRisks            types.JsonArray  `bun:"project_risks,type:text" json:"project_risks"`
	ProjectAssumptions      types.JsonArray  `bun:"project_assumptions,type:text" json:"project_assumptions"`
	ProjectConstraints      types.JsonArray  `bun:"project_constraints,type:text" json:"project_constraints"`
	ProjectMilestones       types.JsonArray  `bun:"project_milestones,type:text" json:"project_milestones"`
	ProjectTasks            types.JsonArray  `bun:"project_tasks,type:text" json:"project_tasks"`
}

func (p *Project) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ProjectName, validation.Required),
		validation.Field(&p.ProjectDirectory, validation.Required),
		validation.Field(&p.ProjectDescription, validation.Required),
		validation.Field(&p.ProjectTags, validation.Required, validation.By(validEnum)),
		validation.Field(&p.ProjectPriority, validation.By(validEnum)),
		validation.Field(&p.ProjectRiskLevel, validation.By(validEnum)),
		validation.Field(&p.ProjectTeamResponsibleID, validation.Required),
		validation.Field(&p.ProjectManagerID, validation.Required),
		validation.Field(&p.ProjectStatus, validation.Required, validation.By(validEnum)),
		validation.Field(&p.ProjectStartDate, validation.Required),
		validation.Field(&p.ProjectExpectedEndDate, validation.Required, validation.Min(p.ProjectStartDate)),
		validation.Field(&p.ProjectPlannedBudget, validation.Min(0.0)),
		validation.Field(&p.ProjectCompletionPercentage, validation.Min(0.0), validation.Max(100.0)),
	)
}
