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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomoncle/chamados/entity"
)

func TestCreateUserHashesPassword(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	user, err := p.users.SelectByEmail(ctx, "matheus@raizen.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "senhaSegura123", user.UserPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte("senhaSegura123")))
	assert.Equal(t, entity.RoleAttendant, user.UserRole)
}

func TestAuthenticate(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	user, err := p.users.Authenticate(ctx, "ana.silva@raizen.com", "senhaSegura123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, p.requesterID, user.ID)

	user, err = p.users.Authenticate(ctx, "ana.silva@raizen.com", "errada")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = p.users.Authenticate(ctx, "ninguem@raizen.com", "senhaSegura123")
	require.NoError(t, err)
	assert.Nil(t, user)

	updated, err := p.users.UpdatePassword(ctx, p.requesterID, "novaSenha456", &p.requesterID)
	require.NoError(t, err)
	assert.True(t, updated)
	user, err = p.users.Authenticate(ctx, "ana.silva@raizen.com", "novaSenha456")
	require.NoError(t, err)
	assert.NotNil(t, user)

	_, err = p.users.SoftDelete(ctx, p.requesterID, nil)
	require.NoError(t, err)
	user, err = p.users.Authenticate(ctx, "ana.silva@raizen.com", "novaSenha456")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSelectUsersByTeamAndRole(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()

	members, err := p.users.SelectByTeam(ctx, p.teamID)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	managers, err := p.users.SelectByRole(ctx, entity.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Carlos Santos", managers[0].UserFullName)

	user, err := p.users.SelectWithTeam(ctx, p.managerID)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.Team)
	assert.Equal(t, "Performance Agricola", user.Team.TeamName)

	missing, err := p.users.SelectWithTeam(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFollowIsIdempotent(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	reportID := p.newReport(t, "cct")

	first, err := p.users.FollowReport(ctx, p.requesterID, reportID)
	require.NoError(t, err)
	second, err := p.users.FollowReport(ctx, p.requesterID, reportID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	followed, err := p.users.FollowedReportIDs(ctx, p.requesterID)
	require.NoError(t, err)
	assert.Equal(t, []int64{reportID}, followed)

	unfollowed, err := p.users.UnfollowReport(ctx, p.requesterID, reportID)
	require.NoError(t, err)
	assert.True(t, unfollowed)
	unfollowed, err = p.users.UnfollowReport(ctx, p.requesterID, reportID)
	require.NoError(t, err)
	assert.False(t, unfollowed)

	followers, err := p.reports.FollowerIDs(ctx, reportID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	// following again brings the same row back
	again, err := p.users.FollowReport(ctx, p.requesterID, reportID)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	followers, err = p.reports.FollowerIDs(ctx, reportID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p.requesterID}, followers)
}

func TestFollowProjectsAndTickets(t *testing.T) {
	p := newPortal(t)
	ctx := context.Background()
	projectID := p.newProject(t, "rotas")
	ticketID := p.newTicket(t, "Divergencia CCT")

	_, err := p.users.FollowProject(ctx, p.managerID, projectID)
	require.NoError(t, err)
	_, err = p.users.FollowTicket(ctx, p.managerID, ticketID)
	require.NoError(t, err)
	_, err = p.users.FollowTicket(ctx, p.attendantID, ticketID)
	require.NoError(t, err)

	projects, err := p.users.FollowedProjectIDs(ctx, p.managerID)
	require.NoError(t, err)
	assert.Equal(t, []int64{projectID}, projects)

	tickets, err := p.users.FollowedTicketIDs(ctx, p.managerID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ticketID}, tickets)

	followers, err := p.tickets.FollowerIDs(ctx, ticketID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{p.managerID, p.attendantID}, followers)

	followers, err = p.projects.FollowerIDs(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, []int64{p.managerID}, followers)

	ok, err := p.users.UnfollowProject(ctx, p.managerID, projectID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.users.UnfollowTicket(ctx, p.attendantID, ticketID)
	require.NoError(t, err)
	assert.True(t, ok)
}
