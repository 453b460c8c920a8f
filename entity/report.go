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
)

// Report is a published Power BI report.
type Report struct {
	bun.BaseModel `bun:"table:reports,alias:r"`
	Record

	ReportName              string          `bun:"report_name,notnull,unique" json:"report_name"`
	ReportLink              string          `bun:"report_link,notnull,unique" json:"report_link"`
	ReportDescription       string          `bun:"report_description,notnull,type:text" json:"report_description"`
	ReportFrequency         ReportFrequency `bun:"report_frequency,notnull" json:"report_frequency"`
	ReportTags              *ReportTag      `bun:"report_tags" json:"report_tags"`
	ReportTeamResponsibleID int64           `bun:"report_team_responsible_id,notnull" json:"report_team_responsible_id"`
	ReportOwnerID           int64           `bun:"report_owner_id,notnull" json:"report_owner_id"`
	ReportStatus            ReportStatus    `bun:"report_status,notnull" json:"report_status"`
	ReportStatusChangedAt   *time.Time      `bun:"report_status_changed_at" json:"report_status_changed_at"`
	ReportStatusChangedByID *int64          `bun:"report_status_changed_by_id" json:"report_status_changed_by_id"`
	ReportDataLastUpdate    *time.Time      `bun:"report_data_last_update" json:"report_data_last_update"`
	ReportPbixLastUpdate    *time.Time      `bun:"report_pbix_last_update" json:"report_pbix_last_update"`
	ReportPublic            bool            `bun:"report_public,notnull,default:true" json:"report_public"`
	ReportDatasetSource     *string         `bun:"report_dataset_source" json:"report_dataset_source"`
}

func (r *Report) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ReportName, validation.Required),
		validation.Field(&r.ReportLink, validation.Required),
		validation.Field(&r.ReportDescription, validation.Required),
		validation.Field(&r.ReportFrequency, validation.Required, validation.By(validEnum)),
		validation.Field(&r.ReportTags, validation.By(validEnum)),
		validation.Field(&r.ReportTeamResponsibleID, validation.Required),
		validation.Field(&r.ReportOwnerID, validation.Required),
		validation.Field(&r.ReportStatus, validation.Required, validation.By(validEnum)),
	)
}
