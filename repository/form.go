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

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

type FormRepository struct {
	Repository[entity.Form]
}

func NewFormRepository(db *bun.DB) *FormRepository {
	return &FormRepository{NewRepository[entity.Form](db)}
}

func (r *FormRepository) Create(ctx context.Context, name string, class entity.TicketClass,
	ticketType entity.TicketType, fields types.JsonObject) (int64, error) {
	return r.Insert(ctx, &entity.Form{
		FormName:        name,
		FormTicketClass: class,
		FormType:        ticketType,
		FormFields:      fields,
		FormVersion:     1,
	})
}

func (r *FormRepository) SelectByTicketClass(ctx context.Context, class entity.TicketClass) ([]*entity.Form, error) {
	return r.List(ctx, types.NewQueryFilter("form_ticket_class = ?", class), false)
}

// SelectDefault returns the default form for a class and type, or nil.
func (r *FormRepository) SelectDefault(ctx context.Context, class entity.TicketClass, ticketType entity.TicketType) (*entity.Form, error) {
	return r.SelectOne(ctx, types.NewQueryFilter(
		"form_ticket_class = ? AND form_type = ? AND form_is_default = ?", class, ticketType, true))
}

// UpdateFields replaces the field definitions and bumps form_version.
func (r *FormRepository) UpdateFields(ctx context.Context, id int64, fields types.JsonObject, by *int64) (bool, error) {
	return r.Update(ctx, id, by, types.Fields{
		"form_fields":  fields,
		"form_version": bun.Safe("form_version + 1"),
	})
}

// SetDefault makes the form the only default of its class and type.
func (r *FormRepository) SetDefault(ctx context.Context, id int64, by *int64) (bool, error) {
	var updated bool
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		form, err := r.SelectByID(ctx, id, false)
		if err != nil || form == nil {
			return err
		}
		_, err = s.DB().NewUpdate().Model((*entity.Form)(nil)).
			Set("form_is_default = ?", false).
			Set("updated_at = ?", time.Now()).
			Where("form_ticket_class = ?", form.FormTicketClass).
			Where("form_type = ?", form.FormType).
			Where("form_is_default = ?", true).
			Where("id != ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		updated, err = r.Update(ctx, id, by, types.Fields{"form_is_default": true})
		return err
	})
	if err != nil {
		return false, database.Classify("set default form", err)
	}
	return updated, nil
}
