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
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"
)

type sessionKey struct{}

// Session is a unit of work bound to one pooled connection and one
// transaction. It is valid only inside the RunInSession callback that
// received it.
type Session struct {
	tx bun.Tx
}

// DB returns the transaction every statement of the unit of work must use.
func (s *Session) DB() bun.IDB {
	return s.tx
}

// SessionFromContext returns the session opened by an enclosing RunInSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// RunInSession runs fn inside a transaction on a dedicated connection.
// The transaction commits when fn returns nil and rolls back when fn returns
// an error or panics; fn's error is returned unchanged. The connection goes
// back to the pool on every path. A ctx that already carries a session joins
// it, so nested calls share the outer unit of work.
func RunInSession(ctx context.Context, db *bun.DB, fn func(ctx context.Context, s *Session) error) error {
	if s, ok := SessionFromContext(ctx); ok {
		return fn(ctx, s)
	}
	if db == nil {
		return errors.New("database not initialized")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return Classify("acquire connection", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			GetLogger().Warn("Failed to release connection", "error", closeErr)
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return Classify("begin transaction", err)
	}
	var committed bool
	defer func() {
		if committed {
			return
		}
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			GetLogger().Error("Failed to rollback transaction", "error", rollbackErr)
		}
	}()

	session := &Session{tx: tx}
	if err := fn(context.WithValue(ctx, sessionKey{}, session), session); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return Classify("commit", err)
	}
	committed = true
	return nil
}
