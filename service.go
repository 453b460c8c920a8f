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

package chamados

import (
	"context"
	"sync"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/repository"
	"github.com/tomoncle/chamados/types"
)

// Row is the plain projection of a record handed to callers outside the
// persistence layer.
type Row = map[string]interface{}

type Service[T any] interface {
	// Get returns the projection of one record, nil when absent or soft-deleted
	// and includeInactive is false.
	Get(ctx context.Context, id int64, includeInactive bool) (Row, error)

	// All returns the projections of all records.
	All(ctx context.Context, includeInactive bool) ([]Row, error)

	// List returns the projections of the records matching filter.
	List(ctx context.Context, filter *types.QueryFilter, includeInactive bool) ([]Row, error)

	// Page returns a page of records.
	Page(ctx context.Context, page *types.PageRequest, includeInactive bool) (*types.Pagination[T], error)

	// Save inserts a new record and returns its id.
	Save(ctx context.Context, model *T) (int64, error)

	// Update applies a partial update to an active record.
	Update(ctx context.Context, id int64, updatedBy *int64, fields types.Fields) (bool, error)

	// Delete soft-deletes a record.
	Delete(ctx context.Context, id int64, deletedBy *int64) (bool, error)

	// Restore brings a soft-deleted record back.
	Restore(ctx context.Context, id int64) (bool, error)

	// Repository exposes the underlying lifecycle repository.
	Repository() repository.Repository[T]
}

type baseServiceImpl[T any, P entity.Pointer[T]] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a default Service implementation using the generic
// repository backed by the global database connection.
func NewService[T any, P entity.Pointer[T]]() Service[T] {
	return &baseServiceImpl[T, P]{}
}

func (s *baseServiceImpl[T, P]) Repository() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.NewRepository[T, P](database.GetDB()) })
	return s.repo
}

func (s *baseServiceImpl[T, P]) Get(ctx context.Context, id int64, includeInactive bool) (Row, error) {
	e, err := s.Repository().SelectByID(ctx, id, includeInactive)
	if err != nil || e == nil {
		return nil, err
	}
	return entity.ToMap(s.Repository().Table(), e), nil
}

func (s *baseServiceImpl[T, P]) All(ctx context.Context, includeInactive bool) ([]Row, error) {
	entities, err := s.Repository().SelectAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	return entity.ToMaps(s.Repository().Table(), entities), nil
}

func (s *baseServiceImpl[T, P]) List(ctx context.Context, filter *types.QueryFilter, includeInactive bool) ([]Row, error) {
	entities, err := s.Repository().List(ctx, filter, includeInactive)
	if err != nil {
		return nil, err
	}
	return entity.ToMaps(s.Repository().Table(), entities), nil
}

func (s *baseServiceImpl[T, P]) Page(ctx context.Context, page *types.PageRequest, includeInactive bool) (*types.Pagination[T], error) {
	return s.Repository().Page(ctx, page, includeInactive)
}

func (s *baseServiceImpl[T, P]) Save(ctx context.Context, model *T) (int64, error) {
	return s.Repository().Insert(ctx, model)
}

func (s *baseServiceImpl[T, P]) Update(ctx context.Context, id int64, updatedBy *int64, fields types.Fields) (bool, error) {
	return s.Repository().Update(ctx, id, updatedBy, fields)
}

func (s *baseServiceImpl[T, P]) Delete(ctx context.Context, id int64, deletedBy *int64) (bool, error) {
	return s.Repository().SoftDelete(ctx, id, deletedBy)
}

func (s *baseServiceImpl[T, P]) Restore(ctx context.Context, id int64) (bool, error) {
	return s.Repository().Restore(ctx, id)
}
