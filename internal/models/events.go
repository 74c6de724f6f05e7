package models

import (
	"encoding/json"
)

// Inbound push-channel event names.
const (
	EventUpdateChatMessage  = "update_chat_message"
	EventMarkMessagesAsSeen = "mark_messages_as_seen"
	EventUpdateChat         = "update_chat"
)

// EventUpdateMessagesAsSeen is the one event the client emits: the seen
// receipt for the active chat.
const EventUpdateMessagesAsSeen = "update_messages_as_seen"

const (
	UpdateTypeCreate = "create"
	UpdateTypeDelete = "delete"
)

// Envelope is the socket wire frame, both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type MessageQuery struct {
	ChatID    int `json:"chat_id"`
	MessageID int `json:"message_id,omitempty"`
}

type UpdateMessageEvent struct {
	Type    string       `json:"type"`
	Message *Message     `json:"message,omitempty"`
	Query   MessageQuery `json:"query"`
}

// SeenQuery keeps the server's spelling of exclue_user_id.
type SeenQuery struct {
	ChatID        int `json:"chat_id"`
	ExcludeUserID int `json:"exclue_user_id"`
}

type MarkMessagesAsSeenEvent struct {
	Query SeenQuery `json:"query"`
}

type ChatQuery struct {
	ChatID int   `json:"chat_id,omitempty"`
	Users  []int `json:"users"`
}

type UpdateChatEvent struct {
	Type  string    `json:"type,omitempty"`
	Query ChatQuery `json:"query"`
}

// MessagesSeenNotice is the payload of the emitted seen receipt.
type MessagesSeenNotice struct {
	ChatID        int `json:"chat_id"`
	ExcludeUserID int `json:"exclude_user_id"`
}
