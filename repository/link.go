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

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

// LinkRepository is the lifecycle repository of one association table plus
// the pair operations of Linker. A pair is never duplicated: linking a
// soft-deleted pair restores it.
type LinkRepository[T any, P entity.LinkPointer[T]] struct {
	Repository[T]
	left, right string
}

func NewLinkRepository[T any, P entity.LinkPointer[T]](db *bun.DB) *LinkRepository[T, P] {
	left, right := P(new(T)).LinkColumns()
	return &LinkRepository[T, P]{
		Repository: NewRepository[T, P](db),
		left:       left,
		right:      right,
	}
}

// Find returns the pair whatever its lifecycle state, or nil.
func (r *LinkRepository[T, P]) Find(ctx context.Context, left, right int64) (*T, error) {
	var found *T
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		link := new(T)
		err := s.DB().NewSelect().Model(link).
			Where("? = ?", bun.Ident(r.left), left).
			Where("? = ?", bun.Ident(r.right), right).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = link
		return nil
	})
	if err != nil {
		return nil, database.Classify("find link", err)
	}
	return found, nil
}

func (r *LinkRepository[T, P]) Link(ctx context.Context, left, right int64, by *int64) (int64, error) {
	var id int64
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, _ *database.Session) error {
		existing, err := r.Find(ctx, left, right)
		if err != nil {
			return err
		}
		if existing != nil {
			rec := P(existing).GetRecord()
			id = rec.ID
			if rec.IsActive() {
				return nil
			}
			_, err = r.Restore(ctx, id)
			return err
		}
		link := new(T)
		P(link).Bind(left, right)
		P(link).GetRecord().CreatedBy = by
		id, err = r.Insert(ctx, link)
		return err
	})
	if err != nil {
		return 0, database.Classify("link", err)
	}
	return id, nil
}

func (r *LinkRepository[T, P]) Unlink(ctx context.Context, left, right int64, by *int64) (bool, error) {
	var unlinked bool
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, _ *database.Session) error {
		existing, err := r.Find(ctx, left, right)
		if err != nil || existing == nil {
			return err
		}
		unlinked, err = r.SoftDelete(ctx, P(existing).GetRecord().ID, by)
		return err
	})
	if err != nil {
		return false, database.Classify("unlink", err)
	}
	return unlinked, nil
}

func (r *LinkRepository[T, P]) RightIDs(ctx context.Context, left int64) ([]int64, error) {
	return r.ids(ctx, r.right, r.left, left)
}

func (r *LinkRepository[T, P]) LeftIDs(ctx context.Context, right int64) ([]int64, error) {
	return r.ids(ctx, r.left, r.right, right)
}

func (r *LinkRepository[T, P]) ids(ctx context.Context, column, byColumn string, value int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		return s.DB().NewSelect().Model((*T)(nil)).
			Column(column).
			Where("? = ?", bun.Ident(byColumn), value).
			Where("active != ?", types.StatusInactive).
			OrderExpr("id ASC").
			Scan(ctx, &ids)
	})
	if err != nil {
		return nil, database.Classify("list links", err)
	}
	return ids, nil
}
