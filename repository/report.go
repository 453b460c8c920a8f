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

	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

// ReportDraft holds the fields a new report cannot be stored without.
type ReportDraft struct {
	Name        string
	Link        string
	Description string
	Frequency   entity.ReportFrequency
	TeamID      int64
	OwnerID     int64
	Status      entity.ReportStatus
	Tags        *entity.ReportTag
	Public      bool
	CreatedBy   *int64
}

type ReportRepository struct {
	Repository[entity.Report]

	allowedUsers *LinkRepository[entity.ReportAllowedUser, *entity.ReportAllowedUser]
	followers    *LinkRepository[entity.UserReportFollow, *entity.UserReportFollow]
}

func NewReportRepository(db *bun.DB) *ReportRepository {
	return &ReportRepository{
		Repository:   NewRepository[entity.Report](db),
		allowedUsers: NewLinkRepository[entity.ReportAllowedUser](db),
		followers:    NewLinkRepository[entity.UserReportFollow](db),
	}
}

func (r *ReportRepository) Create(ctx context.Context, d ReportDraft) (int64, error) {
	report := &entity.Report{
		ReportName:              d.Name,
		ReportLink:              d.Link,
		ReportDescription:       d.Description,
		ReportFrequency:         d.Frequency,
		ReportTags:              d.Tags,
		ReportTeamResponsibleID: d.TeamID,
		ReportOwnerID:           d.OwnerID,
		ReportStatus:            d.Status,
		ReportPublic:            d.Public,
	}
	report.CreatedBy = d.CreatedBy
	return r.Insert(ctx, report)
}

func (r *ReportRepository) SelectByTeam(ctx context.Context, teamID int64) ([]*entity.Report, error) {
	return r.List(ctx, types.NewQueryFilter("report_team_responsible_id = ?", teamID), false)
}

func (r *ReportRepository) SelectByOwner(ctx context.Context, ownerID int64) ([]*entity.Report, error) {
	return r.List(ctx, types.NewQueryFilter("report_owner_id = ?", ownerID), false)
}

func (r *ReportRepository) SelectByStatus(ctx context.Context, status entity.ReportStatus) ([]*entity.Report, error) {
	return r.List(ctx, types.NewQueryFilter("report_status = ?", status), false)
}

// UpdateStatus writes the status together with when and by whom it changed.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status entity.ReportStatus, changedBy *int64) (bool, error) {
	return r.Update(ctx, id, changedBy, types.Fields{
		"report_status":               status,
		"report_status_changed_at":    time.Now(),
		"report_status_changed_by_id": changedBy,
	})
}

func (r *ReportRepository) AllowUser(ctx context.Context, reportID, userID int64, by *int64) (int64, error) {
	return r.allowedUsers.Link(ctx, reportID, userID, by)
}

func (r *ReportRepository) DisallowUser(ctx context.Context, reportID, userID int64, by *int64) (bool, error) {
	return r.allowedUsers.Unlink(ctx, reportID, userID, by)
}

func (r *ReportRepository) AllowedUserIDs(ctx context.Context, reportID int64) ([]int64, error) {
	return r.allowedUsers.RightIDs(ctx, reportID)
}

func (r *ReportRepository) FollowerIDs(ctx context.Context, reportID int64) ([]int64, error) {
	return r.followers.LeftIDs(ctx, reportID)
}
