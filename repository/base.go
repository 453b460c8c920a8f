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
	"database/sql"
	"reflect"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

var protectedColumns = []string{
	entity.ColumnID,
	entity.ColumnCreatedAt,
	entity.ColumnCreatedBy,
	entity.ColumnUpdatedAt,
	entity.ColumnUpdatedBy,
	entity.ColumnDeletedAt,
	entity.ColumnDeletedBy,
	entity.ColumnActive,
}

type baseRepositoryImpl[T any, P entity.Pointer[T]] struct {
	db    *bun.DB
	table *schema.Table
}

// NewRepository returns the generic lifecycle repository for T backed by the
// provided Bun DB. Every call runs in its own session unless ctx already
// carries one.
func NewRepository[T any, P entity.Pointer[T]](db *bun.DB) Repository[T] {
	return &baseRepositoryImpl[T, P]{
		db:    db,
		table: db.Table(reflect.TypeOf((*T)(nil)).Elem()),
	}
}

func (r *baseRepositoryImpl[T, P]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T, P]) DB() *bun.DB { return r.db }

func (r *baseRepositoryImpl[T, P]) Table() *schema.Table { return r.table }

func (r *baseRepositoryImpl[T, P]) run(ctx context.Context, op string, fn func(ctx context.Context, db bun.IDB) error) error {
	err := database.RunInSession(ctx, r.db, func(ctx context.Context, s *database.Session) error {
		return fn(ctx, s.DB())
	})
	if err != nil {
		return database.Classify(r.table.Name+": "+op, err)
	}
	return nil
}

func activeOnly(q *bun.SelectQuery, includeInactive bool) *bun.SelectQuery {
	if includeInactive {
		return q
	}
	return q.Where("?TableAlias.active != ?", types.StatusInactive)
}

func (r *baseRepositoryImpl[T, P]) SelectAll(ctx context.Context, includeInactive bool) ([]*T, error) {
	return r.List(ctx, nil, includeInactive)
}

func (r *baseRepositoryImpl[T, P]) SelectByID(ctx context.Context, id int64, includeInactive bool) (*T, error) {
	return r.selectOne(ctx, "select by id", types.NewQueryFilter("?TableAlias.id = ?", id), includeInactive)
}

func (r *baseRepositoryImpl[T, P]) SelectOne(ctx context.Context, filter *types.QueryFilter) (*T, error) {
	return r.selectOne(ctx, "select one", filter, false)
}

func (r *baseRepositoryImpl[T, P]) selectOne(ctx context.Context, op string, filter *types.QueryFilter, includeInactive bool) (*T, error) {
	var found *T
	err := r.run(ctx, op, func(ctx context.Context, db bun.IDB) error {
		e := new(T)
		q := activeOnly(db.NewSelect().Model(e), includeInactive)
		if filter != nil {
			q = q.Where(filter.Schema, filter.Args...)
		}
		err := q.OrderExpr("?TableAlias.id ASC").Limit(1).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = e
		return nil
	})
	return found, err
}

func (r *baseRepositoryImpl[T, P]) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.run(ctx, "exists", func(ctx context.Context, db bun.IDB) error {
		var err error
		exists, err = activeOnly(db.NewSelect().Model((*T)(nil)), false).
			Where("?TableAlias.id = ?", id).
			Exists(ctx)
		return err
	})
	return exists, err
}

func (r *baseRepositoryImpl[T, P]) Count(ctx context.Context, includeInactive bool) (int, error) {
	var total int
	err := r.run(ctx, "count", func(ctx context.Context, db bun.IDB) error {
		var err error
		total, err = activeOnly(db.NewSelect().Model((*T)(nil)), includeInactive).Count(ctx)
		return err
	})
	return total, err
}

func (r *baseRepositoryImpl[T, P]) List(ctx context.Context, filter *types.QueryFilter, includeInactive bool, orders ...string) ([]*T, error) {
	entities := make([]*T, 0)
	err := r.run(ctx, "list", func(ctx context.Context, db bun.IDB) error {
		q := activeOnly(db.NewSelect().Model(&entities), includeInactive)
		if filter != nil {
			q = q.Where(filter.Schema, filter.Args...)
		}
		if len(orders) == 0 {
			q = q.OrderExpr("?TableAlias.id ASC")
		} else {
			q = q.Order(orders...)
		}
		return q.Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T, P]) Page(ctx context.Context, pageRequest *types.PageRequest, includeInactive bool) (*types.Pagination[T], error) {
	if pageRequest == nil {
		pageRequest = types.NewDefaultPageRequest(1, 10)
	}
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	err := r.run(ctx, "page", func(ctx context.Context, db bun.IDB) error {
		var entities []*T
		query := activeOnly(db.NewSelect().Model(&entities), includeInactive)
		if pageRequest.GetFilter() != nil {
			query = query.Where(pageRequest.GetFilter().Schema, pageRequest.GetFilter().Args...)
		}
		total, err := query.Count(ctx)
		if err != nil || total == 0 {
			return err
		}
		err = query.
			Offset(pageRequest.GetOffset()).
			Limit(pageRequest.GetPageSize()).
			Order(pageRequest.GetOrders()...).
			Scan(ctx)
		if err != nil {
			return err
		}
		pagination.Total = total
		pagination.Items = entities
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pagination, nil
}

func (r *baseRepositoryImpl[T, P]) Insert(ctx context.Context, e *T) (int64, error) {
	if e == nil {
		return 0, errors.Mark(errors.Newf("%s: insert nil record", r.table.Name), ErrValidation)
	}
	if v, ok := any(e).(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return 0, validationError(err, "%s: insert", r.table.Name)
		}
	}

	rec := P(e).GetRecord()
	now := time.Now()
	rec.ID = 0
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.UpdatedBy = rec.CreatedBy
	rec.Active = types.StatusActive
	rec.DeletedAt = nil
	rec.DeletedBy = nil

	err := r.run(ctx, "insert", func(ctx context.Context, db bun.IDB) error {
		_, err := db.NewInsert().Model(e).Exec(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// checkFields rejects protected, unknown and malformed enum columns, then
// lets the record refuse columns that must change together.
func (r *baseRepositoryImpl[T, P]) checkFields(fields types.Fields) error {
	for column, value := range fields {
		if lo.Contains(protectedColumns, column) {
			return errors.Wrapf(ErrProtectedField, "%s.%s", r.table.Name, column)
		}
		if _, ok := r.table.FieldMap[column]; !ok {
			return errors.Wrapf(ErrUnknownField, "%s.%s", r.table.Name, column)
		}
		if e, ok := value.(types.BaseEnum); ok && !e.IsValid() {
			return errors.Mark(errors.Newf("%s.%s: invalid value %q", r.table.Name, column, e.String()), ErrValidation)
		}
	}
	if c, ok := any(P(new(T))).(entity.UpdateChecker); ok {
		if err := c.CheckUpdate(fields); err != nil {
			return validationError(err, "%s: update", r.table.Name)
		}
	}
	return nil
}

func (r *baseRepositoryImpl[T, P]) Update(ctx context.Context, id int64, updatedBy *int64, fields types.Fields) (bool, error) {
	if err := r.checkFields(fields); err != nil {
		return false, err
	}
	columns := lo.Keys(fields)
	sort.Strings(columns)

	var updated bool
	err := r.run(ctx, "update", func(ctx context.Context, db bun.IDB) error {
		q := db.NewUpdate().Model((*T)(nil))
		for _, column := range columns {
			q = q.Set("? = ?", bun.Ident(column), fields[column])
		}
		q = q.Set("? = ?", bun.Ident(entity.ColumnUpdatedAt), time.Now())
		if updatedBy != nil {
			q = q.Set("? = ?", bun.Ident(entity.ColumnUpdatedBy), *updatedBy)
		}
		res, err := q.
			Where("id = ?", id).
			Where("active != ?", types.StatusInactive).
			Exec(ctx)
		if err != nil {
			return err
		}
		updated, err = affected(res)
		return err
	})
	return updated, err
}

func (r *baseRepositoryImpl[T, P]) SoftDelete(ctx context.Context, id int64, deletedBy *int64) (bool, error) {
	var deleted bool
	err := r.run(ctx, "soft delete", func(ctx context.Context, db bun.IDB) error {
		now := time.Now()
		res, err := db.NewUpdate().Model((*T)(nil)).
			Set("active = ?", types.StatusInactive).
			Set("deleted_at = ?", now).
			Set("deleted_by = ?", deletedBy).
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Where("active != ?", types.StatusInactive).
			Exec(ctx)
		if err != nil {
			return err
		}
		deleted, err = affected(res)
		return err
	})
	if deleted {
		database.GetLogger().Debug("Record soft deleted", "table", r.table.Name, "id", id)
	}
	return deleted, err
}

func (r *baseRepositoryImpl[T, P]) Restore(ctx context.Context, id int64) (bool, error) {
	var restored bool
	err := r.run(ctx, "restore", func(ctx context.Context, db bun.IDB) error {
		res, err := db.NewUpdate().Model((*T)(nil)).
			Set("active = ?", types.StatusActive).
			Set("deleted_at = NULL").
			Set("deleted_by = NULL").
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Where("active = ?", types.StatusInactive).
			Exec(ctx)
		if err != nil {
			return err
		}
		restored, err = affected(res)
		return err
	})
	if restored {
		database.GetLogger().Debug("Record restored", "table", r.table.Name, "id", id)
	}
	return restored, err
}

func (r *baseRepositoryImpl[T, P]) HardDelete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.run(ctx, "hard delete", func(ctx context.Context, db bun.IDB) error {
		res, err := db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		deleted, err = affected(res)
		return err
	})
	if deleted {
		database.GetLogger().Warn("Record permanently deleted", "table", r.table.Name, "id", id)
	}
	return deleted, err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
