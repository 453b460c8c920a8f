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
	"database/sql"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code SQLError
	}{
		{"no rows", sql.ErrNoRows, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, DuplicateKeyErr},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, ForeignKeyViolationErr},
		{"postgres unique", &pq.Error{Code: "23505"}, DuplicateKeyErr},
		{"postgres not null", &pq.Error{Code: "23502"}, NotNullViolationErr},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.user_email (2067)"), DuplicateKeyErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: teams.team_name"), NotNullViolationErr},
		{"sqlite missing table", errors.New("no such table: tickets"), NoTableErr},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, code := IsSqlError(c.err)
			assert.True(t, ok)
			assert.Equal(t, c.code, code)
		})
	}

	ok, code := IsSqlError(errors.New("syntax error near SELECT"))
	assert.False(t, ok)
	assert.Equal(t, UnknownErr, code)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify("insert", nil))

	err := Classify("users: insert", errors.New("UNIQUE constraint failed: users.user_email"))
	assert.True(t, IsConstraintViolation(err))
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.False(t, errors.Is(err, ErrForeignKeyViolation))
	assert.False(t, IsConnectionFailure(err))
	assert.Contains(t, err.Error(), "constraint violation during users: insert (duplicate_key)")

	// already classified errors keep their original operation
	again := Classify("outer", err)
	assert.Equal(t, err, again)

	err = Classify("connect", errors.Wrap(sql.ErrConnDone, "ping"))
	assert.True(t, IsConnectionFailure(err))
	assert.False(t, IsConstraintViolation(err))

	err = Classify("select", errors.New("syntax error"))
	assert.False(t, IsConstraintViolation(err))
	assert.False(t, IsConnectionFailure(err))
	assert.Contains(t, err.Error(), "select: syntax error")
}
