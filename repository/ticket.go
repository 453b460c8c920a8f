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

	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

// TicketDraft holds the fields a new ticket cannot be stored without.
type TicketDraft struct {
	Title       string
	Description string
	Class       entity.TicketClass
	Type        entity.TicketType
	ClientID    int64
	FormID      int64
	Status      entity.WorkStatus
	CreatedBy   *int64
}

type TicketRepository struct {
	Repository[entity.Ticket]

	attendants *LinkRepository[entity.TicketAttendant, *entity.TicketAttendant]
	teams      *LinkRepository[entity.TicketTeam, *entity.TicketTeam]
	followers  *LinkRepository[entity.UserTicketFollow, *entity.UserTicketFollow]
}

func NewTicketRepository(db *bun.DB) *TicketRepository {
	return &TicketRepository{
		Repository: NewRepository[entity.Ticket](db),
		attendants: NewLinkRepository[entity.TicketAttendant](db),
		teams:      NewLinkRepository[entity.TicketTeam](db),
		followers:  NewLinkRepository[entity.UserTicketFollow](db),
	}
}

func (r *TicketRepository) Create(ctx context.Context, d TicketDraft) (int64, error) {
	ticket := &entity.Ticket{
		TicketTitle:       d.Title,
		TicketDescription: d.Description,
		TicketClass:       d.Class,
		TicketType:        d.Type,
		TicketClientID:    d.ClientID,
		TicketFormID:      d.FormID,
		TicketStatus:      d.Status,
	}
	ticket.CreatedBy = d.CreatedBy
	return r.Insert(ctx, ticket)
}

func (r *TicketRepository) SelectByClient(ctx context.Context, clientID int64) ([]*entity.Ticket, error) {
	return r.List(ctx, types.NewQueryFilter("ticket_client_id = ?", clientID), false)
}

func (r *TicketRepository) SelectByProject(ctx context.Context, projectID int64) ([]*entity.Ticket, error) {
	return r.List(ctx, types.NewQueryFilter("ticket_project_id = ?", projectID), false)
}

func (r *TicketRepository) SelectByReport(ctx context.Context, reportID int64) ([]*entity.Ticket, error) {
	return r.List(ctx, types.NewQueryFilter("ticket_report_id = ?", reportID), false)
}

func (r *TicketRepository) SelectByStatus(ctx context.Context, status entity.WorkStatus) ([]*entity.Ticket, error) {
	return r.List(ctx, types.NewQueryFilter("ticket_status = ?", status), false)
}

// UpdateStatus writes the status together with when and by whom it changed.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status entity.WorkStatus, changedBy *int64) (bool, error) {
	return r.Update(ctx, id, changedBy, statusFields(status, changedBy, time.Now()))
}

func statusFields(status entity.WorkStatus, changedBy *int64, at time.Time) types.Fields {
	return types.Fields{
		"ticket_status":               status,
		"ticket_status_changed_at":    at,
		"ticket_status_changed_by_id": changedBy,
	}
}

// Close moves the ticket to encerrado and stamps who closed it, in one write.
func (r *TicketRepository) Close(ctx context.Context, id int64, closedBy int64, notes *string) (bool, error) {
	now := time.Now()
	fields := statusFields(entity.WorkStatusClosed, &closedBy, now)
	fields["ticket_closed_at"] = now
	fields["ticket_closed_by_id"] = closedBy
	fields["ticket_resolution_notes"] = notes
	return r.Update(ctx, id, &closedBy, fields)
}

// AssignToProject makes the ticket a project ticket, detaching any report.
func (r *TicketRepository) AssignToProject(ctx context.Context, id, projectID int64, by *int64) (bool, error) {
	return r.Update(ctx, id, by, types.Fields{
		"ticket_project_id": projectID,
		"ticket_report_id":  nil,
		"ticket_class":      entity.ClassProject,
	})
}

// AssignToReport makes the ticket a report ticket, detaching any project.
func (r *TicketRepository) AssignToReport(ctx context.Context, id, reportID int64, by *int64) (bool, error) {
	return r.Update(ctx, id, by, types.Fields{
		"ticket_report_id":  reportID,
		"ticket_project_id": nil,
		"ticket_class":      entity.ClassReport,
	})
}

func (r *TicketRepository) Rate(ctx context.Context, id int64, rating int, by *int64) (bool, error) {
	if rating < 1 || rating > 10 {
		return false, errors.Mark(errors.Newf("satisfaction rating %d out of range 1..10", rating), ErrValidation)
	}
	return r.Update(ctx, id, by, types.Fields{"ticket_satisfaction_rating": rating})
}

func (r *TicketRepository) MarkMailSent(ctx context.Context, id int64) (bool, error) {
	return r.Update(ctx, id, nil, types.Fields{"ticket_mail_sent_at": time.Now()})
}

func (r *TicketRepository) AssignAttendant(ctx context.Context, ticketID, userID int64, by *int64) (int64, error) {
	return r.attendants.Link(ctx, ticketID, userID, by)
}

func (r *TicketRepository) UnassignAttendant(ctx context.Context, ticketID, userID int64, by *int64) (bool, error) {
	return r.attendants.Unlink(ctx, ticketID, userID, by)
}

func (r *TicketRepository) AttendantIDs(ctx context.Context, ticketID int64) ([]int64, error) {
	return r.attendants.RightIDs(ctx, ticketID)
}

func (r *TicketRepository) AssignTeam(ctx context.Context, ticketID, teamID int64, by *int64) (int64, error) {
	return r.teams.Link(ctx, ticketID, teamID, by)
}

func (r *TicketRepository) UnassignTeam(ctx context.Context, ticketID, teamID int64, by *int64) (bool, error) {
	return r.teams.Unlink(ctx, ticketID, teamID, by)
}

func (r *TicketRepository) TeamIDs(ctx context.Context, ticketID int64) ([]int64, error) {
	return r.teams.RightIDs(ctx, ticketID)
}

func (r *TicketRepository) FollowerIDs(ctx context.Context, ticketID int64) ([]int64, error) {
	return r.followers.LeftIDs(ctx, ticketID)
}
