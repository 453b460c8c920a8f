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
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/types"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	Record

	UserCorporativeID           int64            `bun:"user_corporative_id,notnull,unique" json:"user_corporative_id"`
	UserFullName                string           `bun:"user_full_name,notnull" json:"user_full_name"`
	UserEmail                   string           `bun:"user_email,notnull,unique" json:"user_email"`
	UserPassword                string           `bun:"user_password,notnull" json:"-"`
	UserPhoto                   *string          `bun:"user_photo" json:"user_photo"`
	UserTeamID                  int64            `bun:"user_team_id,notnull" json:"user_team_id"`
	UserRole                    UserRole         `bun:"user_role,notnull" json:"user_role"`
	UserTipo                    UserTipo         `bun:"user_tipo,notnull" json:"user_tipo"`
	UserNotificationPreferences types.JsonObject `bun:"user_notification_preferences,type:text" json:"user_notification_preferences"`

	Team *Team `bun:"rel:belongs-to,join:user_team_id=id" json:"-"`
}

func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.UserCorporativeID, validation.Required),
		validation.Field(&u.UserFullName, validation.Required),
		validation.Field(&u.UserEmail, validation.Required, is.EmailFormat),
		validation.Field(&u.UserPassword, validation.Required),
		validation.Field(&u.UserTeamID, validation.Required),
		validation.Field(&u.UserRole, validation.Required, validation.By(validEnum)),
		validation.Field(&u.UserTipo, validation.Required, validation.By(validEnum)),
	)
}
