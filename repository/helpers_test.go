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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
)

// openTestDB migrates the portal schema into a throwaway SQLite file.
func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.SQLitePath = filepath.Join(t.TempDir(), "chamados.db")
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.ConnectionConfig.EnableReconnect = false
	manager := database.NewDatabaseManager(cfg)
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })

	registry := database.NewModelRegistry()
	for model, priority := range entity.Models() {
		registry.Register(database.NewModelAdapter(model, priority))
	}
	mm := database.NewMigrationManager(manager.GetDB(), nil, cfg.DataMigrateConfig)
	mm.SetRegistry(registry)
	require.NoError(t, mm.RunMigrations(ctx))
	return manager.GetDB()
}

// portal holds every repository over one database plus a small cast:
// one team with an attendant, a requester and a manager.
type portal struct {
	teams    *TeamRepository
	users    *UserRepository
	reports  *ReportRepository
	projects *ProjectRepository
	tickets  *TicketRepository
	forms    *FormRepository
	chats    *ChatRepository
	messages *MessageRepository

	teamID      int64
	attendantID int64
	requesterID int64
	managerID   int64
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	ctx := context.Background()
	db := openTestDB(t)
	p := &portal{
		teams:    NewTeamRepository(db),
		users:    NewUserRepository(db),
		reports:  NewReportRepository(db),
		projects: NewProjectRepository(db),
		tickets:  NewTicketRepository(db),
		forms:    NewFormRepository(db),
		chats:    NewChatRepository(db),
		messages: NewMessageRepository(db),
	}

	var err error
	p.teamID, err = p.teams.Create(ctx, "Performance Agricola", entity.AreaEAB)
	require.NoError(t, err)
	p.attendantID, err = p.users.Create(ctx, 416149, "Matheus Beck", "matheus@raizen.com", "senhaSegura123",
		p.teamID, entity.RoleAttendant, entity.TipoAttendant)
	require.NoError(t, err)
	p.requesterID, err = p.users.Create(ctx, 123456, "Ana Silva", "ana.silva@raizen.com", "senhaSegura123",
		p.teamID, entity.RoleRequester, entity.TipoRequester)
	require.NoError(t, err)
	p.managerID, err = p.users.Create(ctx, 789012, "Carlos Santos", "carlos.santos@raizen.com", "senhaSegura123",
		p.teamID, entity.RoleManager, entity.TipoRequester)
	require.NoError(t, err)
	return p
}

func (p *portal) newReport(t *testing.T, name string) int64 {
	t.Helper()
	id, err := p.reports.Create(context.Background(), ReportDraft{
		Name:        name,
		Link:        "https://powerbi.com/" + name,
		Description: "Relatorio " + name,
		Frequency:   entity.FrequencyDaily,
		TeamID:      p.teamID,
		OwnerID:     p.attendantID,
		Status:      entity.ReportStatusActive,
		Public:      true,
		CreatedBy:   &p.attendantID,
	})
	require.NoError(t, err)
	return id
}

func (p *portal) newProject(t *testing.T, name string) int64 {
	t.Helper()
	id, err := p.projects.Create(context.Background(), ProjectDraft{
		Name:            name,
		Directory:       "/projects/" + name,
		Description:     "Projeto " + name,
		Tags:            entity.ProjectTagAssigned,
		TeamID:          p.teamID,
		ManagerID:       p.managerID,
		Status:          entity.WorkStatusActive,
		StartDate:       date(2024, 1, 15),
		ExpectedEndDate: date(2024, 6, 30),
		PlannedBudget:   150000,
		CreatedBy:       &p.managerID,
	})
	require.NoError(t, err)
	return id
}

func (p *portal) newTicket(t *testing.T, title string) int64 {
	t.Helper()
	ctx := context.Background()
	formID, err := p.forms.Create(ctx, "Form "+title, entity.ClassReport, entity.TypeFix,
		map[string]interface{}{"fields": []interface{}{}})
	require.NoError(t, err)
	id, err := p.tickets.Create(ctx, TicketDraft{
		Title:       title,
		Description: "Valores divergentes",
		Class:       entity.ClassReport,
		Type:        entity.TypeFix,
		ClientID:    p.requesterID,
		FormID:      formID,
		Status:      entity.WorkStatusOpen,
		CreatedBy:   &p.requesterID,
	})
	require.NoError(t, err)
	return id
}
