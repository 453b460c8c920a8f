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

// Ticket belongs to a project or to a report, never both.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`
	Record

	TicketTitle              string           `bun:"ticket_title,notnull" json:"ticket_title"`
	TicketDescription        string           `bun:"ticket_description,notnull,type:text" json:"ticket_description"`
	TicketClass              TicketClass      `bun:"ticket_class,notnull" json:"ticket_class"`
	TicketType               TicketType       `bun:"ticket_type,notnull" json:"ticket_type"`
	TicketPriority           *ProjectPriority `bun:"ticket_priority" json:"ticket_priority"`
	TicketImpact             *ImpactLevel     `bun:"ticket_impact" json:"ticket_impact"`
	TicketClientID           int64            `bun:"ticket_client_id,notnull" json:"ticket_client_id"`
	TicketFormID             int64            `bun:"ticket_form_id,notnull" json:"ticket_form_id"`
	TicketProjectID          *int64           `bun:"ticket_project_id" json:"ticket_project_id"`
	TicketReportID           *int64           `bun:"ticket_report_id" json:"ticket_report_id"`
	TicketStatus             WorkStatus       `bun:"ticket_status,notnull" json:"ticket_status"`
	TicketStatusChangedAt    *time.Time       `bun:"ticket_status_changed_at" json:"ticket_status_changed_at"`
	TicketStatusChangedByID  *int64           `bun:"ticket_status_changed_by_id" json:"ticket_status_changed_by_id"`
	TicketDeadline           *time.Time       `bun:"ticket_deadline" json:"ticket_deadline"`
	TicketClosedAt           *time.Time       `bun:"ticket_closed_at" json:"ticket_closed_at"`
	TicketClosedByID         *int64           `bun:"ticket_closed_by_id" json:"ticket_closed_by_id"`
	TicketMailSentAt         *time.Time       `bun:"ticket_mail_sent_at" json:"ticket_mail_sent_at"`
	TicketEstimatedHours     *float64         `bun:"ticket_estimated_hours" json:"ticket_estimated_hours"`
	TicketActualHours        *float64         `bun:"ticket_actual_hours" json:"ticket_actual_hours"`
	TicketSatisfactionRating *int             `bun:"ticket_satisfaction_rating" json:"ticket_satisfaction_rating"`
	TicketAttachments        types.JsonArray  `bun:"ticket_attachments,type:text" json:"ticket_attachments"`
	TicketResolutionNotes    *string          `bun:"ticket_resolution_notes,type:text" json:"ticket_resolution_notes"`

	Chat *Chat `bun:"rel:has-one,join:id=chat_ticket_id" json:"-"`
}

func (t *Ticket) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.TicketTitle, validation.Required),
		validation.Field(&t.TicketDescription, validation.Required),
		validation.Field(&t.TicketClass, validation.Required, validation.By(validEnum)),
		validation.Field(&t.TicketType, validation.Required, validation.By(validEnum)),
		validation.Field(&t.TicketPriority, validation.By(validEnum)),
		validation.Field(&t.TicketImpact, validation.By(validEnum)),
		validation.Field(&t.TicketClientID, validation.Required),
		validation.Field(&t.TicketFormID, validation.Required),
		validation.Field(&t.TicketStatus, validation.Required, validation.By(validEnum)),
		validation.Field(&t.TicketSatisfactionRating, validation.Min(1), validation.Max(10)),
		validation.Field(&t.TicketReportID, validation.When(t.TicketProjectID != nil, validation.Nil.Error("ticket cannot belong to a project and a report"))),
	)
}
