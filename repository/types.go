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

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/tomoncle/chamados/types"
)

// ReadRepository defines lifecycle-aware reads. Unless includeInactive is
// set, soft-deleted records are left out.
type ReadRepository[T any] interface {
	SelectAll(ctx context.Context, includeInactive bool) ([]*T, error)

	// SelectByID returns nil when the record is absent or filtered out.
	SelectByID(ctx context.Context, id int64, includeInactive bool) (*T, error)

	// Exists reports whether an active record with id is present.
	Exists(ctx context.Context, id int64) (bool, error)

	Count(ctx context.Context, includeInactive bool) (int, error)

	// List returns the records matching filter, ascending id unless orders
	// are given.
	List(ctx context.Context, filter *types.QueryFilter, includeInactive bool, orders ...string) ([]*T, error)

	// SelectOne returns the first active record matching filter, or nil.
	SelectOne(ctx context.Context, filter *types.QueryFilter) (*T, error)
}

// WriteRepository defines the lifecycle mutations. Every mutation is one
// conditional statement; false means no row was in the expected state.
type WriteRepository[T any] interface {
	// Insert stores a new active record and returns its id.
	Insert(ctx context.Context, entity *T) (int64, error)

	// Update applies fields to an active record and refreshes updated_at.
	Update(ctx context.Context, id int64, updatedBy *int64, fields types.Fields) (bool, error)

	SoftDelete(ctx context.Context, id int64, deletedBy *int64) (bool, error)

	Restore(ctx context.Context, id int64) (bool, error)

	// HardDelete physically removes the row whatever its lifecycle state.
	// Prefer SoftDelete.
	HardDelete(ctx context.Context, id int64) (bool, error)
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest, includeInactive bool) (*types.Pagination[T], error)
}

// Repository combines lifecycle reads, writes and pagination over one
// record type.
type Repository[T any] interface {
	ReadRepository[T]
	WriteRepository[T]
	PageQueryRepository[T]
	Dialect() schema.Dialect
	DB() *bun.DB

	// Table is bun's column metadata for T.
	Table() *schema.Table
}

// Linker manages one many-to-many association between a left and a right
// entity.
type Linker interface {
	// Link makes the pair active and returns the association id.
	Link(ctx context.Context, left, right int64, by *int64) (int64, error)

	// Unlink soft-deletes the pair; false if no active pair exists.
	Unlink(ctx context.Context, left, right int64, by *int64) (bool, error)

	RightIDs(ctx context.Context, left int64) ([]int64, error)

	LeftIDs(ctx context.Context, right int64) ([]int64, error)
}
