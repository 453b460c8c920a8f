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
	"golang.org/x/crypto/bcrypt"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

type UserRepository struct {
	Repository[entity.User]

	reportFollows  *LinkRepository[entity.UserReportFollow, *entity.UserReportFollow]
	projectFollows *LinkRepository[entity.UserProjectFollow, *entity.UserProjectFollow]
	ticketFollows  *LinkRepository[entity.UserTicketFollow, *entity.UserTicketFollow]
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{
		Repository:     NewRepository[entity.User](db),
		reportFollows:  NewLinkRepository[entity.UserReportFollow](db),
		projectFollows: NewLinkRepository[entity.UserProjectFollow](db),
		ticketFollows:  NewLinkRepository[entity.UserTicketFollow](db),
	}
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.Mark(errors.New("password is required"), ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "hash password"), ErrValidation)
	}
	return string(hash), nil
}

// Create stores an active user. The password is kept only as a bcrypt hash.
func (r *UserRepository) Create(ctx context.Context, corporativeID int64, fullName, email, password string,
	teamID int64, role entity.UserRole, tipo entity.UserTipo) (int64, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	return r.Insert(ctx, &entity.User{
		UserCorporativeID: corporativeID,
		UserFullName:      fullName,
		UserEmail:         email,
		UserPassword:      hash,
		UserTeamID:        teamID,
		UserRole:          role,
		UserTipo:          tipo,
	})
}

func (r *UserRepository) SelectByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.SelectOne(ctx, types.NewQueryFilter("user_email = ?", email))
}

func (r *UserRepository) SelectByTeam(ctx context.Context, teamID int64) ([]*entity.User, error) {
	return r.List(ctx, types.NewQueryFilter("user_team_id = ?", teamID), false)
}

func (r *UserRepository) SelectByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	return r.List(ctx, types.NewQueryFilter("user_role = ?", role), false)
}

// SelectWithTeam loads an active user together with its team.
func (r *UserRepository) SelectWithTeam(ctx context.Context, id int64) (*entity.User, error) {
	var user *entity.User
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		u := new(entity.User)
		err := s.DB().NewSelect().Model(u).
			Relation("Team").
			Where("?TableAlias.id = ?", id).
			Where("?TableAlias.active != ?", types.StatusInactive).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, database.Classify("select user with team", err)
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, password string, by *int64) (bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	return r.Update(ctx, id, by, types.Fields{"user_password": hash})
}

// Authenticate returns the active user owning email when password matches
// its hash, nil otherwise.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := r.SelectByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepository) FollowReport(ctx context.Context, userID, reportID int64) (int64, error) {
	return r.reportFollows.Link(ctx, userID, reportID, &userID)
}

func (r *UserRepository) UnfollowReport(ctx context.Context, userID, reportID int64) (bool, error) {
	return r.reportFollows.Unlink(ctx, userID, reportID, &userID)
}

func (r *UserRepository) FollowedReportIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.reportFollows.RightIDs(ctx, userID)
}

func (r *UserRepository) FollowProject(ctx context.Context, userID, projectID int64) (int64, error) {
	return r.projectFollows.Link(ctx, userID, projectID, &userID)
}

func (r *UserRepository) UnfollowProject(ctx context.Context, userID, projectID int64) (bool, error) {
	return r.projectFollows.Unlink(ctx, userID, projectID, &userID)
}

func (r *UserRepository) FollowedProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.projectFollows.RightIDs(ctx, userID)
}

func (r *UserRepository) FollowTicket(ctx context.Context, userID, ticketID int64) (int64, error) {
	return r.ticketFollows.Link(ctx, userID, ticketID, &userID)
}

func (r *UserRepository) UnfollowTicket(ctx context.Context, userID, ticketID int64) (bool, error) {
	return r.ticketFollows.Unlink(ctx, userID, ticketID, &userID)
}

func (r *UserRepository) FollowedTicketIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.ticketFollows.RightIDs(ctx, userID)
}
