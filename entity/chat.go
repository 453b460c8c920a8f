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

package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/tomoncle/chamados/types"
)

// Chat is the single conversation attached to a ticket.
type Chat struct {
	bun.BaseModel `bun:"table:chats,alias:c"`
	Record

	ChatTicketID int64   `bun:"chat_ticket_id,notnull,unique" json:"chat_ticket_id"`
	ChatTitle    *string `bun:"chat_title" json:"chat_title"`

	Messages []*Message `bun:"rel:has-many,join:id=message_chat_id" json:"-"`
}

func (c *Chat) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ChatTicketID, validation.Required),
	)
}

type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`
	Record

	MessageChatID      int64           `bun:"message_chat_id,notnull" json:"message_chat_id"`
	MessageUserID      int64           `bun:"message_user_id,notnull" json:"message_user_id"`
	MessageContent     string          `bun:"message_content,notnull,type:text" json:"message_content"`
	MessageType        MessageType     `bun:"message_type,notnull,default:'text'" json:"message_type"`
	MessageAttachments types.JsonArray `bun:"message_attachments,type:text" json:"message_attachments"`
	MessageIsInternal  bool            `bun:"message_is_internal,notnull,default:false" json:"message_is_internal"`
	MessageEditedAt    *time.Time      `bun:"message_edited_at" json:"message_edited_at"`
}

func (m *Message) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.MessageChatID, validation.Required),
		validation.Field(&m.MessageUserID, validation.Required),
		validation.Field(&m.MessageContent, validation.Required),
		validation.Field(&m.MessageType, validation.By(validEnum)),
	)
}
