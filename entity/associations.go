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

	"github.com/uptrace/bun"
)

// Link is an association record joining two entities by id. LinkColumns
// names the two foreign key columns, left first.
type Link interface {
	Recorder
	LinkColumns() (left, right string)
	Bind(left, right int64)
}

// LinkPointer constrains generic code to *T where T is an association.
type LinkPointer[T any] interface {
	*T
	Link
}

// ProjectApproval is one approver's decision on a project. ApprovalOrder
// ranks the approvers of the same project.
type ProjectApproval struct {
	bun.BaseModel `bun:"table:project_approvals,alias:pap"`
	Record

	ProjectID     int64          `bun:"project_id,notnull,unique:project_approval" json:"project_id"`
	ApproverID    int64          `bun:"approver_id,notnull,unique:project_approval" json:"approver_id"`
	ApprovalOrder int            `bun:"approval_order,notnull" json:"approval_order"`
	Status        ApprovalStatus `bun:"status,notnull,default:'pendente'" json:"status"`
	ApprovedAt    *time.Time     `bun:"approved_at" json:"approved_at"`
	Comments      *string        `bun:"comments,type:text" json:"comments"`
}

func (*ProjectApproval) LinkColumns() (string, string) { return "project_id", "approver_id" }

func (a *ProjectApproval) Bind(projectID, approverID int64) {
	a.ProjectID, a.ApproverID = projectID, approverID
	if a.Status == "" {
		a.Status = ApprovalPending
	}
}

type ProjectAnalyst struct {
	bun.BaseModel `bun:"table:project_analysts,alias:pan"`
	Record

	ProjectID  int64     `bun:"project_id,notnull,unique:project_analyst" json:"project_id"`
	UserID     int64     `bun:"user_id,notnull,unique:project_analyst" json:"user_id"`
	AssignedAt time.Time `bun:"assigned_at,nullzero,notnull,default:current_timestamp" json:"assigned_at"`
}

func (*ProjectAnalyst) LinkColumns() (string, string) { return "project_id", "user_id" }
func (l *ProjectAnalyst) Bind(left, right int64)      { l.ProjectID, l.UserID = left, right }

type ProjectSponsor struct {
	bun.BaseModel `bun:"table:project_sponsors,alias:psp"`
	Record

	ProjectID int64 `bun:"project_id,notnull,unique:project_sponsor" json:"project_id"`
	UserID    int64 `bun:"user_id,notnull,unique:project_sponsor" json:"user_id"`
}

func (*ProjectSponsor) LinkColumns() (string, string) { return "project_id", "user_id" }
func (l *ProjectSponsor) Bind(left, right int64)      { l.ProjectID, l.UserID = left, right }

type ProjectOwner struct {
	bun.BaseModel `bun:"table:project_owners,alias:pow"`
	Record

	ProjectID int64 `bun:"project_id,notnull,unique:project_owner" json:"project_id"`
	UserID    int64 `bun:"user_id,notnull,unique:project_owner" json:"user_id"`
}

func (*ProjectOwner) LinkColumns() (string, string) { return "project_id", "user_id" }
func (l *ProjectOwner) Bind(left, right int64)      { l.ProjectID, l.UserID = left, right }

type ProjectClient struct {
	bun.BaseModel `bun:"table:project_clients,alias:pcl"`
	Record

	ProjectID int64 `bun:"project_id,notnull,unique:project_client" json:"project_id"`
	UserID    int64 `bun:"user_id,notnull,unique:project_client" json:"user_id"`
}

func (*ProjectClient) LinkColumns() (string, string) { return "project_id", "user_id" }
func (l *ProjectClient) Bind(left, right int64)      { l.ProjectID, l.UserID = left, right }

// ProjectAllowedUser grants a user access to a private project.
type ProjectAllowedUser struct {
	bun.BaseModel `bun:"table:project_allowed_users,alias:pau"`
	Record

	ProjectID int64 `bun:"project_id,notnull,unique:project_allowed_user" json:"project_id"`
	UserID    int64 `bun:"user_id,notnull,unique:project_allowed_user" json:"user_id"`
}

func (*ProjectAllowedUser) LinkColumns() (string, string) { return "project_id", "user_id" }
func (l *ProjectAllowedUser) Bind(left, right int64)      { l.ProjectID, l.UserID = left, right }

type TicketAttendant struct {
	bun.BaseModel `bun:"table:ticket_attendants,alias:tat"`
	Record

	TicketID   int64     `bun:"ticket_id,notnull,unique:ticket_attendant" json:"ticket_id"`
	UserID     int64     `bun:"user_id,notnull,unique:ticket_attendant" json:"user_id"`
	AssignedAt time.Time `bun:"assigned_at,nullzero,notnull,default:current_timestamp" json:"assigned_at"`
}

func (*TicketAttendant) LinkColumns() (string, string) { return "ticket_id", "user_id" }
func (l *TicketAttendant) Bind(left, right int64)      { l.TicketID, l.UserID = left, right }

type TicketTeam struct {
	bun.BaseModel `bun:"table:ticket_teams,alias:ttm"`
	Record

	TicketID   int64     `bun:"ticket_id,notnull,unique:ticket_team" json:"ticket_id"`
	TeamID     int64     `bun:"team_id,notnull,unique:ticket_team" json:"team_id"`
	AssignedAt time.Time `bun:"assigned_at,nullzero,notnull,default:current_timestamp" json:"assigned_at"`
}

func (*TicketTeam) LinkColumns() (string, string) { return "ticket_id", "team_id" }
func (l *TicketTeam) Bind(left, right int64)      { l.TicketID, l.TeamID = left, right }

type ReportAllowedUser struct {
	bun.BaseModel `bun:"table:report_allowed_users,alias:rau"`
	Record

	ReportID int64 `bun:"report_id,notnull,unique:report_allowed_user" json:"report_id"`
	UserID   int64 `bun:"user_id,notnull,unique:report_allowed_user" json:"user_id"`
}

func (*ReportAllowedUser) LinkColumns() (string, string) { return "report_id", "user_id" }
func (l *ReportAllowedUser) Bind(left, right int64)      { l.ReportID, l.UserID = left, right }

type UserReportFollow struct {
	bun.BaseModel `bun:"table:user_report_follows,alias:urf"`
	Record

	UserID     int64     `bun:"user_id,notnull,unique:user_report_follow" json:"user_id"`
	ReportID   int64     `bun:"report_id,notnull,unique:user_report_follow" json:"report_id"`
	FollowedAt time.Time `bun:"followed_at,nullzero,notnull,default:current_timestamp" json:"followed_at"`
}

func (*UserReportFollow) LinkColumns() (string, string) { return "user_id", "report_id" }
func (l *UserReportFollow) Bind(left, right int64)      { l.UserID, l.ReportID = left, right }

type UserProjectFollow struct {
	bun.BaseModel `bun:"table:user_project_follows,alias:upf"`
	Record

	UserID     int64     `bun:"user_id,notnull,unique:user_project_follow" json:"user_id"`
	ProjectID  int64     `bun:"project_id,notnull,unique:user_project_follow" json:"project_id"`
	FollowedAt time.Time `bun:"followed_at,nullzero,notnull,default:current_timestamp" json:"followed_at"`
}

func (*UserProjectFollow) LinkColumns() (string, string) { return "user_id", "project_id" }
func (l *UserProjectFollow) Bind(left, right int64)      { l.UserID, l.ProjectID = left, right }

type UserTicketFollow struct {
	bun.BaseModel `bun:"table:user_ticket_follows,alias:utf"`
	Record

	UserID     int64     `bun:"user_id,notnull,unique:user_ticket_follow" json:"user_id"`
	TicketID   int64     `bun:"ticket_id,notnull,unique:user_ticket_follow" json:"ticket_id"`
	FollowedAt time.Time `bun:"followed_at,nullzero,notnull,default:current_timestamp" json:"followed_at"`
}

func (*UserTicketFollow) LinkColumns() (string, string) { return "user_id", "ticket_id" }
func (l *UserTicketFollow) Bind(left, right int64)      { l.UserID, l.TicketID = left, right }
