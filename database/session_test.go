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

package database

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type sessionNote struct {
	bun.BaseModel `bun:"table:session_notes"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Body string `bun:"body,notnull"`
}

func newNotesDB(t *testing.T) *bun.DB {
	db := openTestDB(t)
	_, err := db.NewCreateTable().Model((*sessionNote)(nil)).Exec(context.Background())
	require.NoError(t, err)
	return db
}

func countNotes(t *testing.T, db *bun.DB) int {
	n, err := db.NewSelect().Model((*sessionNote)(nil)).Count(context.Background())
	require.NoError(t, err)
	return n
}

func insertNote(ctx context.Context, s *Session, body string) error {
	_, err := s.DB().NewInsert().Model(&sessionNote{Body: body}).Exec(ctx)
	return err
}

func TestRunInSessionCommits(t *testing.T) {
	db := newNotesDB(t)
	ctx := context.Background()

	err := RunInSession(ctx, db, func(ctx context.Context, s *Session) error {
		if err := insertNote(ctx, s, "primeira"); err != nil {
			return err
		}
		return insertNote(ctx, s, "segunda")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countNotes(t, db))
}

func TestRunInSessionRollsBackOnError(t *testing.T) {
	db := newNotesDB(t)
	failure := errors.New("falhou")

	err := RunInSession(context.Background(), db, func(ctx context.Context, s *Session) error {
		require.NoError(t, insertNote(ctx, s, "descartada"))
		return failure
	})
	assert.Equal(t, failure, err)
	assert.Equal(t, 0, countNotes(t, db))
}

func TestRunInSessionRollsBackOnPanic(t *testing.T) {
	db := newNotesDB(t)

	assert.Panics(t, func() {
		_ = RunInSession(context.Background(), db, func(ctx context.Context, s *Session) error {
			require.NoError(t, insertNote(ctx, s, "descartada"))
			panic("boom")
		})
	})
	assert.Equal(t, 0, countNotes(t, db))
}

func TestNestedSessionJoinsOuter(t *testing.T) {
	db := newNotesDB(t)

	err := RunInSession(context.Background(), db, func(ctx context.Context, outer *Session) error {
		require.NoError(t, insertNote(ctx, outer, "externa"))
		return RunInSession(ctx, db, func(ctx context.Context, inner *Session) error {
			assert.Same(t, outer, inner)
			require.NoError(t, insertNote(ctx, inner, "interna"))
			return errors.New("desfaz tudo")
		})
	})
	assert.Error(t, err)
	assert.Equal(t, 0, countNotes(t, db))

	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)
}

func TestRunInSessionWithoutDB(t *testing.T) {
	err := RunInSession(context.Background(), nil, func(ctx context.Context, s *Session) error {
		t.Fatal("callback must not run")
		return nil
	})
	assert.Error(t, err)
}
