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
	"strings"

	"github.com/cockroachdb/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomoncle/chamados/types"
)

// validEnum is an ozzo rule for any enum field, pointer or value. Empty
// values pass; pair it with validation.Required where the column is mandatory.
func validEnum(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	e, ok := v.(types.BaseEnum)
	if !ok || e.String() == "" {
		return nil
	}
	if !e.IsValid() {
		return errors.Newf("invalid value %q", e.String())
	}
	return nil
}

// together rejects fields that set column without every companion.
func together(fields types.Fields, column string, companions ...string) error {
	if _, ok := fields[column]; !ok {
		return nil
	}
	missing := lo.Filter(companions, func(c string, _ int) bool {
		_, ok := fields[c]
		return !ok
	})
	if len(missing) > 0 {
		return errors.Newf("%s must be updated together with %s", column, strings.Join(missing, ", "))
	}
	return nil
}

// exclusive rejects fields that set column to a value without clearing
// other in the same update.
func exclusive(fields types.Fields, column, other string) error {
	v, ok := fields[column]
	if !ok || isNil(v) {
		return nil
	}
	if o, ok := fields[other]; !ok || !isNil(o) {
		return errors.Newf("%s requires %s to be cleared in the same update", column, other)
	}
	return nil
}

func isNil(v interface{}) bool {
	_, null := validation.Indirect(v)
	return null
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Ticket) CheckUpdate(fields types.Fields) error {
	return firstError(
		together(fields, "ticket_status", "ticket_status_changed_at", "ticket_status_changed_by_id"),
		exclusive(fields, "ticket_project_id", "ticket_report_id"),
		exclusive(fields, "ticket_report_id", "ticket_project_id"),
	)
}

func (p *Project) CheckUpdate(fields types.Fields) error {
	return together(fields, "project_status", "project_status_changed_at", "project_status_changed_by_id")
}

func (r *Report) CheckUpdate(fields types.Fields) error {
	return together(fields, "report_status", "report_status_changed_at", "report_status_changed_by_id")
}

// CheckUpdate only lets a bcrypt hash into user_password; plain passwords go
// through the repository's UpdatePassword.
func (u *User) CheckUpdate(fields types.Fields) error {
	v, ok := fields["user_password"]
	if !ok {
		return nil
	}
	hash, _ := v.(string)
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return errors.New("user_password takes a bcrypt hash, use UpdatePassword")
	}
	return nil
}
