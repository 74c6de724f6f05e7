package services

import (
	"context"
	"encoding/json"
	"log"

	"PairTalk/client/internal/models"
)

// Run consumes the push channel until it closes or the context ends. Events
// are applied strictly in arrival order; this loop is the only path through
// which remote activity reaches the directory and timeline.
func (e *ChatEngine) Run(ctx context.Context, events <-chan models.Envelope) {
	for {
		select {
		case env, ok := <-events:
			if !ok {
				return
			}
			e.HandleEvent(ctx, env)
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one pushed event. Handlers are total and idempotent:
// duplicates and references to unknown chats or messages are safe no-ops, and
// a directory refresh is the only corrective action.
func (e *ChatEngine) HandleEvent(ctx context.Context, env models.Envelope) {
	switch env.Event {
	case models.EventUpdateChatMessage:
		var data models.UpdateMessageEvent
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Printf("Invalid %s payload: %v", env.Event, err)
			return
		}
		e.handleUpdateMessage(ctx, data)

	case models.EventMarkMessagesAsSeen:
		var data models.MarkMessagesAsSeenEvent
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Printf("Invalid %s payload: %v", env.Event, err)
			return
		}
		e.handleMessagesSeen(data)

	case models.EventUpdateChat:
		var data models.UpdateChatEvent
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Printf("Invalid %s payload: %v", env.Event, err)
			return
		}
		e.handleUpdateChat(ctx, data)

	default:
		log.Printf("Ignoring unknown event %q", env.Event)
	}
}

func (e *ChatEngine) handleUpdateMessage(ctx context.Context, data models.UpdateMessageEvent) {
	chatID := data.Query.ChatID
	active := e.directory.Active() == chatID
	self := e.identity.User()

	switch data.Type {
	case models.UpdateTypeCreate:
		if data.Message == nil {
			log.Printf("Create event for chat %d carries no message", chatID)
			return
		}

		inserted := false
		if active && e.timeline.Loaded() {
			inserted = e.timeline.Append(*data.Message)
		}

		if !e.directory.ApplyMessage(chatID, *data.Message, self.ID) {
			log.Printf("Message event for unknown chat %d, refreshing directory", chatID)
			if err := e.RefreshChats(ctx); err != nil {
				log.Printf("Directory refresh failed: %v", err)
			}
		}

		if inserted && data.Message.FromUser.ID != self.ID {
			e.acknowledgeSeen(chatID)
		}

	case models.UpdateTypeDelete:
		if active {
			e.timeline.Remove(data.Query.MessageID)
		}
		// The directory's last_message preview stays stale until the next
		// refresh.

	default:
		log.Printf("Unknown %s type %q", models.EventUpdateChatMessage, data.Type)
	}
}

func (e *ChatEngine) handleMessagesSeen(data models.MarkMessagesAsSeenEvent) {
	chatID := data.Query.ChatID

	if e.directory.Active() == chatID && !e.identity.IsSelf(data.Query.ExcludeUserID) {
		marked := e.timeline.MarkAllSeenExcept(data.Query.ExcludeUserID)
		if marked > 0 {
			log.Printf("Marked %d messages as seen in chat %d", marked, chatID)
		}
	}

	e.directory.ClearUnseen(chatID)
}

func (e *ChatEngine) handleUpdateChat(ctx context.Context, data models.UpdateChatEvent) {
	self := e.identity.User()

	mine := false
	for _, id := range data.Query.Users {
		if id == self.ID {
			mine = true
			break
		}
	}
	if !mine {
		return
	}

	if data.Type == models.UpdateTypeDelete {
		chatID := data.Query.ChatID
		active := e.directory.Active()

		// The chat id is optional on the wire; a delete without one concerns
		// the open conversation.
		if chatID == 0 || chatID == active {
			if active != 0 {
				e.directory.Remove(active)
				e.timeline.Reset(0)
				e.notify("The conversation has been deleted")
			}
			return
		}

		if !e.directory.Contains(chatID) {
			log.Printf("Delete event for unknown chat %d, refreshing directory", chatID)
			if err := e.RefreshChats(ctx); err != nil {
				log.Printf("Directory refresh failed: %v", err)
			}
		}
		// A deleted chat that was not active is corrected on the next refresh.
		return
	}

	if data.Query.ChatID == 0 || !e.directory.Contains(data.Query.ChatID) {
		log.Printf("Chat event for unknown chat %d, refreshing directory", data.Query.ChatID)
		if err := e.RefreshChats(ctx); err != nil {
			log.Printf("Directory refresh failed: %v", err)
		}
	}
}

// acknowledgeSeen tells the server the active chat's new messages were viewed,
// so the sender's own timeline converges. Never fired for self-authored
// messages; a failed emit is dropped and the peer's badge corrects on their
// next refresh.
func (e *ChatEngine) acknowledgeSeen(chatID int) {
	self := e.identity.User()

	err := e.emitter.Emit(models.EventUpdateMessagesAsSeen, models.MessagesSeenNotice{
		ChatID:        chatID,
		ExcludeUserID: self.ID,
	})
	if err != nil {
		log.Printf("Error acknowledging seen messages in chat %d: %v", chatID, err)
	}
}
