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

	"github.com/tomoncle/chamados/types"
)

// Form is the template used to open tickets of one class and type.
// FormVersion grows by one on every change of FormFields.
type Form struct {
	bun.BaseModel `bun:"table:forms,alias:f"`
	Record

	FormName        string           `bun:"form_name,notnull" json:"form_name"`
	FormDescription *string          `bun:"form_description,type:text" json:"form_description"`
	FormTicketClass TicketClass      `bun:"form_ticket_class,notnull" json:"form_ticket_class"`
	FormType        TicketType       `bun:"form_type,notnull" json:"form_type"`
	FormFields      types.JsonObject `bun:"form_fields,notnull,type:text" json:"form_fields"`
	FormIsDefault   bool             `bun:"form_is_default,notnull,default:false" json:"form_is_default"`
	FormVersion     int              `bun:"form_version,notnull,default:1" json:"form_version"`
}

func (f *Form) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.FormName, validation.Required),
		validation.Field(&f.FormTicketClass, validation.Required, validation.By(validEnum)),
		validation.Field(&f.FormType, validation.Required, validation.By(validEnum)),
		validation.Field(&f.FormFields, validation.NotNil),
		validation.Field(&f.FormVersion, validation.Min(1)),
	)
}
