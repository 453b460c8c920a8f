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
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInsertStampsLifecycle(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	team := &entity.Team{TeamName: "Planejamento Agricola", TeamArea: entity.AreaProjects}
	team.ID = 42
	team.Active = types.StatusInactive
	team.CreatedBy = &p.managerID

	id, err := p.teams.Insert(ctx, team)
	require.NoError(t, err)
	assert.NotEqual(t, int64(42), id)
	assert.Equal(t, id, team.ID)

	stored, err := p.teams.SelectByID(ctx, id, false)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, types.StatusActive, stored.Active)
	assert.Nil(t, stored.DeletedAt)
	assert.Nil(t, stored.DeletedBy)
	assert.Equal(t, p.managerID, *stored.CreatedBy)
	assert.Equal(t, p.managerID, *stored.UpdatedBy)
	assert.True(t, stored.CreatedAt.After(before))
	assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
	assert.True(t, stored.LifecycleConsistent())
}

func TestInsertValidates(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	_, err := p.teams.Insert(ctx, &entity.Team{TeamName: "Financeiro", TeamArea: "financeiro"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = p.teams.Insert(ctx, nil)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = p.users.Create(ctx, 1, "Sem Email", "", "senha", p.teamID, entity.RoleRequester, entity.TipoRequester)
	assert.True(t, errors.Is(err, ErrValidation))

	total, err := p.teams.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	deleted, err := p.users.SoftDelete(ctx, p.requesterID, &p.attendantID)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err := p.users.Exists(ctx, p.requesterID)
	require.NoError(t, err)
	assert.False(t, exists)

	hidden, err := p.users.SelectByID(ctx, p.requesterID, false)
	require.NoError(t, err)
	assert.Nil(t, hidden)

	user, err := p.users.SelectByID(ctx, p.requesterID, true)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, types.StatusInactive, user.Active)
	require.NotNil(t, user.DeletedAt)
	assert.Equal(t, p.attendantID, *user.DeletedBy)
	assert.True(t, user.LifecycleConsistent())

	again, err := p.users.SoftDelete(ctx, p.requesterID, &p.managerID)
	require.NoError(t, err)
	assert.False(t, again)
	unchanged, err := p.users.SelectByID(ctx, p.requesterID, true)
	require.NoError(t, err)
	assert.True(t, unchanged.DeletedAt.Equal(*user.DeletedAt))
	assert.Equal(t, p.attendantID, *unchanged.DeletedBy)
	assert.True(t, unchanged.UpdatedAt.Equal(user.UpdatedAt))

	updated, err := p.users.Update(ctx, p.requesterID, nil, types.Fields{"user_full_name": "Ana S."})
	require.NoError(t, err)
	assert.False(t, updated)

	restored, err := p.users.Restore(ctx, p.requesterID)
	require.NoError(t, err)
	assert.True(t, restored)

	user, err = p.users.SelectByID(ctx, p.requesterID, false)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, types.StatusActive, user.Active)
	assert.Nil(t, user.DeletedAt)
	assert.Nil(t, user.DeletedBy)
	assert.True(t, user.LifecycleConsistent())

	restored, err = p.users.Restore(ctx, p.requesterID)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestMissingRecords(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	user, err := p.users.SelectByID(ctx, 999999, true)
	require.NoError(t, err)
	assert.Nil(t, user)

	updated, err := p.users.Update(ctx, 999999, nil, types.Fields{"user_full_name": "Ninguem"})
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := p.users.SoftDelete(ctx, 999999, nil)
	require.NoError(t, err)
	assert.False(t, deleted)

	restored, err := p.users.Restore(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, restored)

	exists, err := p.users.Exists(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateRejectsProtectedAndUnknownFields(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	for _, column := range []string{"id", "active", "deleted_at", "created_by", "updated_at"} {
		_, err := p.teams.Update(ctx, p.teamID, nil, types.Fields{column: nil})
		assert.True(t, errors.Is(err, ErrProtectedField), column)
	}

	_, err := p.teams.Update(ctx, p.teamID, nil, types.Fields{"team_budget": 10})
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = p.teams.Update(ctx, p.teamID, nil, types.Fields{"team_status": entity.TeamStatus("extinta")})
	assert.True(t, errors.Is(err, ErrValidation))

	team, err := p.teams.SelectByID(ctx, p.teamID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.TeamStatusActive, team.TeamStatus)
}

func TestUpdateStampsActor(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	before, err := p.teams.SelectByID(ctx, p.teamID, false)
	require.NoError(t, err)

	updated, err := p.teams.SetManager(ctx, p.teamID, &p.managerID, &p.attendantID)
	require.NoError(t, err)
	assert.True(t, updated)

	team, err := p.teams.SelectByID(ctx, p.teamID, false)
	require.NoError(t, err)
	assert.Equal(t, p.managerID, *team.TeamManagerID)
	assert.Equal(t, p.attendantID, *team.UpdatedBy)
	assert.False(t, team.UpdatedAt.Before(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt.Unix(), team.CreatedAt.Unix())

	updated, err = p.teams.SetManager(ctx, p.teamID, nil, nil)
	require.NoError(t, err)
	assert.True(t, updated)
	team, err = p.teams.SelectByID(ctx, p.teamID, false)
	require.NoError(t, err)
	assert.Nil(t, team.TeamManagerID)
}

func TestDuplicateUniqueIsConstraintViolation(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	_, err := p.users.Create(ctx, 555555, "Outro Matheus", "matheus@raizen.com", "senha",
		p.teamID, entity.RoleRequester, entity.TipoRequester)
	require.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err))
	assert.True(t, errors.Is(err, database.ErrDuplicateKey))

	_, err = p.teams.Create(ctx, "Performance Agricola", entity.AreaCIA)
	assert.True(t, database.IsConstraintViolation(err))

	original, err := p.users.SelectByEmail(ctx, "matheus@raizen.com")
	require.NoError(t, err)
	require.NotNil(t, original)
	assert.Equal(t, p.attendantID, original.ID)
	assert.Equal(t, "Matheus Beck", original.UserFullName)
	assert.Equal(t, int64(416149), original.UserCorporativeID)
	total, err := p.users.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestUpdateKeepsColumnsTogether(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	ticketID := p.newTicket(t, "Divergencia CCT")
	reportID := p.newReport(t, "cct")
	projectID := p.newProject(t, "rotas")
	_, err := p.tickets.AssignToReport(ctx, ticketID, reportID, nil)
	require.NoError(t, err)

	_, err = p.tickets.Update(ctx, ticketID, nil, types.Fields{"ticket_status": entity.WorkStatusClosed})
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = p.projects.Update(ctx, projectID, nil, types.Fields{"project_status": entity.WorkStatusPaused})
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = p.reports.Update(ctx, reportID, nil, types.Fields{"report_status": entity.ReportStatusOutdated})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = p.tickets.Update(ctx, ticketID, nil, types.Fields{"ticket_project_id": projectID})
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = p.tickets.Update(ctx, ticketID, nil, types.Fields{"ticket_project_id": projectID, "ticket_report_id": reportID})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = p.users.Update(ctx, p.requesterID, nil, types.Fields{"user_password": "plain"})
	assert.True(t, errors.Is(err, ErrValidation))

	ticket, err := p.tickets.SelectByID(ctx, ticketID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkStatusOpen, ticket.TicketStatus)
	assert.Nil(t, ticket.TicketStatusChangedAt)
	assert.Equal(t, reportID, *ticket.TicketReportID)
	assert.Nil(t, ticket.TicketProjectID)
	user, err := p.users.Authenticate(ctx, "ana.silva@raizen.com", "senhaSegura123")
	require.NoError(t, err)
	assert.NotNil(t, user)

	ok, err := p.tickets.Update(ctx, ticketID, nil, types.Fields{
		"ticket_report_id":  nil,
		"ticket_project_id": projectID,
		"ticket_class":      entity.ClassProject,
	})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.tickets.Update(ctx, ticketID, nil, types.Fields{"ticket_project_id": nil})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListCountAndPage(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	for _, name := range []string{"CIA Norte", "CIA Sul", "CIA Leste"} {
		_, err := p.teams.Create(ctx, name, entity.AreaCIA)
		require.NoError(t, err)
	}
	cia, err := p.teams.SelectByArea(ctx, entity.AreaCIA)
	require.NoError(t, err)
	require.Len(t, cia, 3)
	assert.Less(t, cia[0].ID, cia[1].ID)

	_, err = p.teams.SoftDelete(ctx, cia[2].ID, nil)
	require.NoError(t, err)

	active, err := p.teams.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, active)
	all, err := p.teams.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 4, all)

	byName, err := p.teams.List(ctx, types.NewQueryFilter("team_area = ?", entity.AreaCIA), true, "team_name ASC")
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "CIA Leste", byName[0].TeamName)

	page, err := p.teams.Page(ctx, types.NewDefaultPageRequest(2, 2), true)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages())
	require.Len(t, page.Items, 2)
	assert.Equal(t, "CIA Sul", page.Items[0].TeamName)

	defaults, err := p.teams.Page(ctx, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 10, defaults.PageSize)
	assert.Equal(t, 3, defaults.Total)

	empty, err := p.teams.Page(ctx, types.NewPageRequest(1, 10, types.NewQueryFilter("team_area = ?", entity.AreaIndicators)), false)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.Empty(t, empty.Items)
}

func TestHardDelete(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	id, err := p.teams.Create(ctx, "Temporaria", entity.AreaIndicators)
	require.NoError(t, err)
	deleted, err := p.teams.HardDelete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := p.teams.SelectByID(ctx, id, true)
	require.NoError(t, err)
	assert.Nil(t, gone)

	deleted, err = p.teams.HardDelete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSessionSpansRepositories(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	err := database.RunInSession(ctx, p.teams.DB(), func(ctx context.Context, _ *database.Session) error {
		teamID, err := p.teams.Create(ctx, "Equipe Fantasma", entity.AreaCIA)
		if err != nil {
			return err
		}
		_, err = p.users.Create(ctx, 333333, "Usuario Fantasma", "fantasma@raizen.com", "senha",
			teamID, entity.RoleRequester, entity.TipoRequester)
		if err != nil {
			return err
		}
		// duplicate email aborts the whole unit
		_, err = p.users.Create(ctx, 444444, "Outro Fantasma", "fantasma@raizen.com", "senha",
			teamID, entity.RoleRequester, entity.TipoRequester)
		return err
	})
	require.Error(t, err)
	assert.True(t, database.IsConstraintViolation(err))

	team, err := p.teams.SelectByName(ctx, "Equipe Fantasma")
	require.NoError(t, err)
	assert.Nil(t, team)
	user, err := p.users.SelectByEmail(ctx, "fantasma@raizen.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}
