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
	"time"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

// MemberRole selects one of the project membership associations.
type MemberRole string

const (
	MemberAnalyst     MemberRole = "analyst"
	MemberSponsor     MemberRole = "sponsor"
	MemberOwner       MemberRole = "owner"
	MemberClient      MemberRole = "client"
	MemberAllowedUser MemberRole = "allowed_user"
)

var ErrUnknownRole = errors.New("unknown member role")

// ProjectDraft holds the fields a new project cannot be stored without,
// plus the optional classification.
type ProjectDraft struct {
	Name            string
	Directory       string
	Description     string
	Tags            entity.ProjectTag
	TeamID          int64
	ManagerID       int64
	Status          entity.WorkStatus
	StartDate       time.Time
	ExpectedEndDate time.Time
	PlannedBudget   float64

	Priority    *entity.ProjectPriority
	RiskLevel   *entity.RiskLevel
	Category    *string
	Methodology *string
	Private     bool
	CreatedBy   *int64
}

type ProjectRepository struct {
	Repository[entity.Project]

	members   map[MemberRole]Linker
	approvals *LinkRepository[entity.ProjectApproval, *entity.ProjectApproval]
	followers *LinkRepository[entity.UserProjectFollow, *entity.UserProjectFollow]
}

func NewProjectRepository(db *bun.DB) *ProjectRepository {
	return &ProjectRepository{
		Repository: NewRepository[entity.Project](db),
		members: map[MemberRole]Linker{
			MemberAnalyst:     NewLinkRepository[entity.ProjectAnalyst](db),
			MemberSponsor:     NewLinkRepository[entity.ProjectSponsor](db),
			MemberOwner:       NewLinkRepository[entity.ProjectOwner](db),
			MemberClient:      NewLinkRepository[entity.ProjectClient](db),
			MemberAllowedUser: NewLinkRepository[entity.ProjectAllowedUser](db),
		},
		approvals: NewLinkRepository[entity.ProjectApproval](db),
		followers: NewLinkRepository[entity.UserProjectFollow](db),
	}
}

// today is the current local date at midnight UTC, the form date columns
// round-trip in.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *ProjectRepository) Create(ctx context.Context, d ProjectDraft) (int64, error) {
	project := &entity.Project{
		ProjectName:              d.Name,
		ProjectDirectory:         d.Directory,
		ProjectDescription:       d.Description,
		ProjectCategory:          d.Category,
		ProjectMethodology:       d.Methodology,
		ProjectTags:              d.Tags,
		ProjectPriority:          d.Priority,
		ProjectRiskLevel:         d.RiskLevel,
		ProjectTeamResponsibleID: d.TeamID,
		ProjectManagerID:         d.ManagerID,
		ProjectStatus:            d.Status,
		ProjectStartDate:         d.StartDate,
		ProjectExpectedEndDate:   d.ExpectedEndDate,
		ProjectPlannedBudget:     d.PlannedBudget,
		ProjectPublic:            !d.Private,
	}
	project.CreatedBy = d.CreatedBy
	return r.Insert(ctx, project)
}

func (r *ProjectRepository) SelectByTeam(ctx context.Context, teamID int64) ([]*entity.Project, error) {
	return r.List(ctx, types.NewQueryFilter("project_team_responsible_id = ?", teamID), false)
}

func (r *ProjectRepository) SelectByManager(ctx context.Context, managerID int64) ([]*entity.Project, error) {
	return r.List(ctx, types.NewQueryFilter("project_manager_id = ?", managerID), false)
}

func (r *ProjectRepository) SelectByStatus(ctx context.Context, status entity.WorkStatus) ([]*entity.Project, error) {
	return r.List(ctx, types.NewQueryFilter("project_status = ?", status), false)
}

// UpdateStatus writes the status together with when and by whom it changed.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status entity.WorkStatus, changedBy *int64) (bool, error) {
	return r.Update(ctx, id, changedBy, projectStatusFields(status, changedBy, time.Now()))
}

func projectStatusFields(status entity.WorkStatus, changedBy *int64, at time.Time) types.Fields {
	return types.Fields{
		"project_status":               status,
		"project_status_changed_at":    at,
		"project_status_changed_by_id": changedBy,
	}
}

func (r *ProjectRepository) Approve(ctx context.Context, id int64, approvedBudget float64, by *int64) (bool, error) {
	return r.Update(ctx, id, by, types.Fields{
		"project_approved_at":     today(),
		"project_approved_budget": approvedBudget,
	})
}

// Complete closes the project: encerrado, real end date today, fully
// complete, in one write.
func (r *ProjectRepository) Complete(ctx context.Context, id int64, finalBudget float64, by *int64) (bool, error) {
	fields := projectStatusFields(entity.WorkStatusClosed, by, time.Now())
	fields["project_real_end_date"] = today()
	fields["project_final_budget"] = finalBudget
	fields["project_completion_percentage"] = 100.0
	return r.Update(ctx, id, by, fields)
}

// UpdateProgress sets the completion percentage, 0 to 100, and optionally
// the budget spent so far.
func (r *ProjectRepository) UpdateProgress(ctx context.Context, id int64, percentage float64, spent *float64, by *int64) (bool, error) {
	if percentage < 0 || percentage > 100 {
		return false, errors.Mark(errors.Newf("completion percentage %v out of range", percentage), ErrValidation)
	}
	fields := types.Fields{"project_completion_percentage": percentage}
	if spent != nil {
		fields["project_spent_budget"] = *spent
	}
	return r.Update(ctx, id, by, fields)
}

func (r *ProjectRepository) member(role MemberRole) (Linker, error) {
	l, ok := r.members[role]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRole, "%q", role)
	}
	return l, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, role MemberRole, projectID, userID int64, by *int64) (int64, error) {
	l, err := r.member(role)
	if err != nil {
		return 0, err
	}
	return l.Link(ctx, projectID, userID, by)
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, role MemberRole, projectID, userID int64, by *int64) (bool, error) {
	l, err := r.member(role)
	if err != nil {
		return false, err
	}
	return l.Unlink(ctx, projectID, userID, by)
}

func (r *ProjectRepository) MemberIDs(ctx context.Context, role MemberRole, projectID int64) ([]int64, error) {
	l, err := r.member(role)
	if err != nil {
		return nil, err
	}
	return l.RightIDs(ctx, projectID)
}

func (r *ProjectRepository) FollowerIDs(ctx context.Context, projectID int64) ([]int64, error) {
	return r.followers.LeftIDs(ctx, projectID)
}

// RequestApproval adds approverID to the project's approvers at the given
// order, resetting any earlier decision, and refreshes the approvers count.
func (r *ProjectRepository) RequestApproval(ctx context.Context, projectID, approverID int64, order int, by *int64) (int64, error) {
	var id int64
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		var err error
		if id, err = r.approvals.Link(ctx, projectID, approverID, by); err != nil {
			return err
		}
		_, err = r.approvals.Update(ctx, id, by, types.Fields{
			"approval_order": order,
			"status":         entity.ApprovalPending,
			"approved_at":    nil,
			"comments":       nil,
		})
		if err != nil {
			return err
		}
		return r.refreshApproversCount(ctx, s.DB(), projectID, by)
	})
	if err != nil {
		return 0, database.Classify("request approval", err)
	}
	return id, nil
}

// DecideApproval records the approver's decision. False when the approver
// was never asked or the request was withdrawn.
func (r *ProjectRepository) DecideApproval(ctx context.Context, projectID, approverID int64,
	status entity.ApprovalStatus, comments *string) (bool, error) {
	var decided bool
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, _ *database.Session) error {
		approval, err := r.approvals.Find(ctx, projectID, approverID)
		if err != nil || approval == nil || !approval.IsActive() {
			return err
		}
		var approvedAt *time.Time
		if status == entity.ApprovalApproved {
			now := time.Now()
			approvedAt = &now
		}
		decided, err = r.approvals.Update(ctx, approval.ID, &approverID, types.Fields{
			"status":      status,
			"approved_at": approvedAt,
			"comments":    comments,
		})
		return err
	})
	if err != nil {
		return false, database.Classify("decide approval", err)
	}
	return decided, nil
}

func (r *ProjectRepository) WithdrawApproval(ctx context.Context, projectID, approverID int64, by *int64) (bool, error) {
	var withdrawn bool
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		var err error
		if withdrawn, err = r.approvals.Unlink(ctx, projectID, approverID, by); err != nil || !withdrawn {
			return err
		}
		return r.refreshApproversCount(ctx, s.DB(), projectID, by)
	})
	if err != nil {
		return false, database.Classify("withdraw approval", err)
	}
	return withdrawn, nil
}

// Approvals lists the active approval requests in approval order.
func (r *ProjectRepository) Approvals(ctx context.Context, projectID int64) ([]*entity.ProjectApproval, error) {
	return r.approvals.List(ctx, types.NewQueryFilter("project_id = ?", projectID), false, "approval_order ASC", "id ASC")
}

func (r *ProjectRepository) refreshApproversCount(ctx context.Context, db bun.IDB, projectID int64, by *int64) error {
	count, err := db.NewSelect().Model((*entity.ProjectApproval)(nil)).
		Where("project_id = ?", projectID).
		Where("active != ?", types.StatusInactive).
		Count(ctx)
	if err != nil {
		return err
	}
	_, err = r.Update(ctx, projectID, by, types.Fields{"project_approvers_count": count})
	return err
}
