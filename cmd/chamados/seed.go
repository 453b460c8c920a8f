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

package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/tomoncle/chamados"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/repository"
	"github.com/tomoncle/chamados/types"
)

const demoPassword = "senhaSegura123"

// seed inserts the demo portal in one transaction and then runs a soft
// delete / restore round trip on a temporary user.
func seed(ctx context.Context, repos *chamados.Repositories) error {
	existing, err := repos.Teams.SelectByName(ctx, "Performance Agricola")
	if err != nil {
		return err
	}
	if existing != nil {
		log.Infof("Demo data already present (team id %d), skipping", existing.ID)
		return nil
	}

	err = repos.InTransaction(ctx, func(ctx context.Context) error {
		return seedPortal(ctx, repos)
	})
	if err != nil {
		return errors.Wrap(err, "seed portal")
	}
	return lifecycleRoundTrip(ctx, repos)
}

func seedPortal(ctx context.Context, repos *chamados.Repositories) error {
	performance, err := repos.Teams.Create(ctx, "Performance Agricola", entity.AreaEAB)
	if err != nil {
		return err
	}
	planning, err := repos.Teams.Create(ctx, "Planejamento Agricola", entity.AreaProjects)
	if err != nil {
		return err
	}

	matheus, err := repos.Users.Create(ctx, 416149, "Matheus Beck", "matheus@raizen.com", demoPassword,
		performance, entity.RoleAttendant, entity.TipoAttendant)
	if err != nil {
		return err
	}
	ana, err := repos.Users.Create(ctx, 123456, "Ana Silva", "ana.silva@raizen.com", demoPassword,
		planning, entity.RoleRequester, entity.TipoAttendant)
	if err != nil {
		return err
	}
	carlos, err := repos.Users.Create(ctx, 789012, "Carlos Santos", "carlos.santos@raizen.com", demoPassword,
		performance, entity.RoleManager, entity.TipoRequester)
	if err != nil {
		return err
	}
	if _, err := repos.Teams.SetManager(ctx, performance, &carlos, nil); err != nil {
		return err
	}
	if _, err := repos.Teams.SetManager(ctx, planning, &ana, nil); err != nil {
		return err
	}

	cct, production := entity.TagCCT, entity.TagProduction
	cctReport, err := repos.Reports.Create(ctx, repository.ReportDraft{
		Name:        "Projecao CCT",
		Link:        "https://powerbi.com/cct",
		Description: "Relatorio hora a hora de CCT",
		Frequency:   entity.FrequencyHourly,
		TeamID:      performance,
		OwnerID:     matheus,
		Status:      entity.ReportStatusActive,
		Tags:        &cct,
		Public:      true,
		CreatedBy:   &matheus,
	})
	if err != nil {
		return err
	}
	productivity, err := repos.Reports.Create(ctx, repository.ReportDraft{
		Name:        "Produtividade Agricola",
		Link:        "https://powerbi.com/produtividade",
		Description: "Dashboard de produtividade",
		Frequency:   entity.FrequencyDaily,
		TeamID:      performance,
		OwnerID:     carlos,
		Status:      entity.ReportStatusActive,
		Tags:        &production,
		CreatedBy:   &carlos,
	})
	if err != nil {
		return err
	}
	if _, err := repos.Reports.AllowUser(ctx, productivity, ana, &carlos); err != nil {
		return err
	}

	routes, err := repos.Projects.Create(ctx, repository.ProjectDraft{
		Name:            "Otimizacao Rotas",
		Directory:       "/projects/rotas",
		Description:     "Projeto de otimizacao",
		Tags:            entity.ProjectTagAssigned,
		TeamID:          performance,
		ManagerID:       carlos,
		Status:          entity.WorkStatusActive,
		StartDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		PlannedBudget:   150000,
		CreatedBy:       &carlos,
	})
	if err != nil {
		return err
	}
	if _, err := repos.Projects.AddMember(ctx, repository.MemberAnalyst, routes, matheus, &carlos); err != nil {
		return err
	}
	if _, err := repos.Projects.RequestApproval(ctx, routes, ana, 1, &carlos); err != nil {
		return err
	}

	form, err := repos.Forms.Create(ctx, "Form Correcao", entity.ClassReport, entity.TypeFix,
		types.JsonObject{"fields": []interface{}{}})
	if err != nil {
		return err
	}
	ticket, err := repos.Tickets.Create(ctx, repository.TicketDraft{
		Title:       "Divergencia CCT",
		Description: "Valores divergentes",
		Class:       entity.ClassReport,
		Type:        entity.TypeFix,
		ClientID:    carlos,
		FormID:      form,
		Status:      entity.WorkStatusOpen,
		CreatedBy:   &carlos,
	})
	if err != nil {
		return err
	}
	if _, err := repos.Tickets.AssignToReport(ctx, ticket, cctReport, &carlos); err != nil {
		return err
	}
	if _, err := repos.Tickets.AssignAttendant(ctx, ticket, matheus, &carlos); err != nil {
		return err
	}
	if _, err := repos.Users.FollowTicket(ctx, carlos, ticket); err != nil {
		return err
	}

	chat, err := repos.Chats.Create(ctx, ticket, &carlos)
	if err != nil {
		return err
	}
	if _, err := repos.Messages.Create(ctx, chat, carlos, "Primeira mensagem do ticket", entity.MessageText, false); err != nil {
		return err
	}
	if _, err := repos.Messages.Create(ctx, chat, matheus, "Resposta do atendente", entity.MessageText, false); err != nil {
		return err
	}
	log.Infof("Seeded teams %d and %d, project %d, ticket %d with chat %d", performance, planning, routes, ticket, chat)
	return nil
}

func lifecycleRoundTrip(ctx context.Context, repos *chamados.Repositories) error {
	team, err := repos.Teams.SelectByName(ctx, "Performance Agricola")
	if err != nil {
		return err
	}
	matheus, err := repos.Users.SelectByEmail(ctx, "matheus@raizen.com")
	if err != nil {
		return err
	}
	if team == nil || matheus == nil {
		return errors.New("demo team or user missing")
	}

	temp, err := repos.Users.Create(ctx, 999999, "Usuario Temporario", "temp@raizen.com", "senha123",
		team.ID, entity.RoleAttendant, entity.TipoAttendant)
	if err != nil {
		return err
	}
	if _, err := repos.Users.SoftDelete(ctx, temp, &matheus.ID); err != nil {
		return err
	}
	exists, err := repos.Users.Exists(ctx, temp)
	if err != nil {
		return err
	}
	deleted, err := repos.Users.SelectByID(ctx, temp, true)
	if err != nil {
		return err
	}
	if deleted != nil {
		log.Infof("Soft deleted user %d: exists=%v active=%s consistent=%v",
			temp, exists, deleted.Active, deleted.LifecycleConsistent())
	}

	if _, err := repos.Users.Restore(ctx, temp); err != nil {
		return err
	}
	exists, err = repos.Users.Exists(ctx, temp)
	if err != nil {
		return err
	}
	log.Infof("Restored user %d: exists=%v", temp, exists)
	return nil
}
