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

	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/repository"
)

// Repositories bundles the repository of every portal entity over one
// connection pool.
type Repositories struct {
	db *bun.DB

	Teams    *repository.TeamRepository
	Users    *repository.UserRepository
	Reports  *repository.ReportRepository
	Projects *repository.ProjectRepository
	Tickets  *repository.TicketRepository
	Forms    *repository.FormRepository
	Chats    *repository.ChatRepository
	Messages *repository.MessageRepository
}

func NewRepositories(db *bun.DB) *Repositories {
	return &Repositories{
		db:       db,
		Teams:    repository.NewTeamRepository(db),
		Users:    repository.NewUserRepository(db),
		Reports:  repository.NewReportRepository(db),
		Projects: repository.NewProjectRepository(db),
		Tickets:  repository.NewTicketRepository(db),
		Forms:    repository.NewFormRepository(db),
		Chats:    repository.NewChatRepository(db),
		Messages: repository.NewMessageRepository(db),
	}
}

// DefaultRepositories binds the bundle to the connection opened by
// database.InitDB.
func DefaultRepositories() *Repositories {
	return NewRepositories(database.GetDB())
}

// InTransaction runs fn as one unit of work: every repository call made with
// the ctx it receives joins the same transaction, committed when fn returns
// nil and rolled back otherwise.
func (r *Repositories) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.RunInSession(ctx, r.db, func(ctx context.Context, _ *database.Session) error {
		return fn(ctx)
	})
}
