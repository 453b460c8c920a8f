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

	"github.com/tomoncle/chamados/types"
)

// Record is the identity, audit and lifecycle block embedded in every
// persisted entity and association.
//
// Active is StatusInactive exactly when DeletedAt is set. Only the soft
// delete and restore operations of the repository change either field.
type Record struct {
	ID        int64        `bun:"id,pk,autoincrement" json:"id"`
	CreatedAt time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time    `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time   `bun:"deleted_at" json:"deleted_at"`
	CreatedBy *int64       `bun:"created_by" json:"created_by"`
	UpdatedBy *int64       `bun:"updated_by" json:"updated_by"`
	DeletedBy *int64       `bun:"deleted_by" json:"deleted_by"`
	Active    types.Status `bun:"active,notnull,default:'ativo'" json:"active"`
}

// Recorder is implemented by every type that embeds Record.
type Recorder interface {
	GetRecord() *Record
}

// Pointer constrains generic code to *T where T embeds Record.
type Pointer[T any] interface {
	*T
	Recorder
}

// UpdateChecker is implemented by records whose columns must change
// together. CheckUpdate sees the fields of a partial update before any SQL
// runs.
type UpdateChecker interface {
	CheckUpdate(fields types.Fields) error
}

func (r *Record) GetRecord() *Record { return r }

// IsActive reports whether the record is visible to default reads.
func (r *Record) IsActive() bool { return r.Active != types.StatusInactive }

// LifecycleConsistent reports whether Active and DeletedAt agree.
func (r *Record) LifecycleConsistent() bool {
	return (r.Active == types.StatusInactive) == (r.DeletedAt != nil)
}

// Lifecycle column names shared by every table.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnDeletedAt = "deleted_at"
	ColumnCreatedBy = "created_by"
	ColumnUpdatedBy = "updated_by"
	ColumnDeletedBy = "deleted_by"
	ColumnActive    = "active"
)
