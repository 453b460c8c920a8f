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
	"time"

	"github.com/cockroachdb/errors"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/database"
	"github.com/tomoncle/chamados/entity"
	"github.com/tomoncle/chamados/types"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository(db *bun.DB) *ChatRepository {
	return &ChatRepository{NewRepository[entity.Chat](db)}
}

// Create opens the chat of a ticket. A ticket has at most one chat, a
// second one fails with a constraint violation.
func (r *ChatRepository) Create(ctx context.Context, ticketID int64, by *int64) (int64, error) {
	chat := &entity.Chat{ChatTicketID: ticketID}
	chat.CreatedBy = by
	return r.Insert(ctx, chat)
}

func (r *ChatRepository) SelectByTicketID(ctx context.Context, ticketID int64) (*entity.Chat, error) {
	return r.SelectOne(ctx, types.NewQueryFilter("chat_ticket_id = ?", ticketID))
}

func (r *ChatRepository) UpdateTitle(ctx context.Context, id int64, title string, by *int64) (bool, error) {
	return r.Update(ctx, id, by, types.Fields{"chat_title": title})
}

// SelectWithMessages loads an active chat and its active messages, oldest
// first.
func (r *ChatRepository) SelectWithMessages(ctx context.Context, id int64) (*entity.Chat, error) {
	var chat *entity.Chat
	err := database.RunInSession(ctx, r.DB(), func(ctx context.Context, s *database.Session) error {
		c := new(entity.Chat)
		err := s.DB().NewSelect().Model(c).
			Relation("Messages", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.active != ?", types.StatusInactive).
					OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC")
			}).
			Where("?TableAlias.id = ?", id).
			Where("?TableAlias.active != ?", types.StatusInactive).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		chat = c
		return nil
	})
	if err != nil {
		return nil, database.Classify("select chat with messages", err)
	}
	return chat, nil
}

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository(db *bun.DB) *MessageRepository {
	return &MessageRepository{NewRepository[entity.Message](db)}
}

// Create posts a message; an empty messageType means a text message.
func (r *MessageRepository) Create(ctx context.Context, chatID, userID int64, content string,
	messageType entity.MessageType, internal bool) (int64, error) {
	if messageType == "" {
		messageType = entity.MessageText
	}
	message := &entity.Message{
		MessageChatID:     chatID,
		MessageUserID:     userID,
		MessageContent:    content,
		MessageType:       messageType,
		MessageIsInternal: internal,
	}
	message.CreatedBy = &userID
	return r.Insert(ctx, message)
}

var chronological = []string{"created_at ASC", "id ASC"}

// SelectByChatID returns the chat's messages oldest first, internal ones
// included.
func (r *MessageRepository) SelectByChatID(ctx context.Context, chatID int64) ([]*entity.Message, error) {
	return r.List(ctx, types.NewQueryFilter("message_chat_id = ?", chatID), false, chronological...)
}

// SelectPublicByChatID leaves out the internal messages the client must not see.
func (r *MessageRepository) SelectPublicByChatID(ctx context.Context, chatID int64) ([]*entity.Message, error) {
	return r.List(ctx, types.NewQueryFilter("message_chat_id = ? AND message_is_internal = ?", chatID, false),
		false, chronological...)
}

func (r *MessageRepository) SelectByUserID(ctx context.Context, userID int64) ([]*entity.Message, error) {
	return r.List(ctx, types.NewQueryFilter("message_user_id = ?", userID), false, chronological...)
}

// UpdateContent rewrites the message and stamps message_edited_at.
func (r *MessageRepository) UpdateContent(ctx context.Context, id int64, content string, by *int64) (bool, error) {
	if content == "" {
		return false, errors.Mark(errors.New("message content is required"), ErrValidation)
	}
	return r.Update(ctx, id, by, types.Fields{
		"message_content":   content,
		"message_edited_at": time.Now(),
	})
}
