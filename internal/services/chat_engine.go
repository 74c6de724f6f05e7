package services

import (
	"context"
	"log"

	"PairTalk/client/internal/api"
	"PairTalk/client/internal/auth"
	"PairTalk/client/internal/models"
	"PairTalk/client/internal/store"
	"PairTalk/client/internal/utils"
)

// ChatAPI is the slice of the REST client the engine consumes.
type ChatAPI interface {
	GetChats(ctx context.Context) ([]models.Chat, error)
	CreateChat(ctx context.Context, email string) (*models.Chat, error)
	DeleteChat(ctx context.Context, chatID int) error
	GetMessages(ctx context.Context, chatID int) ([]models.Message, error)
	CreateMessage(ctx context.Context, chatID int, form api.MessageForm) (*models.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID int) error
}

// Emitter sends outbound push-channel events.
type Emitter interface {
	Emit(event string, data interface{}) error
}

// Notifier surfaces user-visible notices, such as the deleted-conversation one.
type Notifier func(text string)

// ChatEngine reconciles REST fetches with pushed events into the directory and
// timeline. Every content mutation, local or remote in origin, lands through
// the event handlers; the action methods only issue requests. The single
// exception is CreateChat, which updates the directory directly.
type ChatEngine struct {
	api       ChatAPI
	emitter   Emitter
	identity  *auth.Identity
	directory *store.Directory
	timeline  *store.Timeline
	notify    Notifier
}

func NewChatEngine(chatAPI ChatAPI, emitter Emitter, identity *auth.Identity, directory *store.Directory, timeline *store.Timeline, notify Notifier) *ChatEngine {
	if notify == nil {
		notify = func(string) {}
	}

	return &ChatEngine{
		api:       chatAPI,
		emitter:   emitter,
		identity:  identity,
		directory: directory,
		timeline:  timeline,
		notify:    notify,
	}
}

// RefreshChats replaces the directory with a fresh fetch. On failure the
// previous list is kept and a FetchError is returned.
func (e *ChatEngine) RefreshChats(ctx context.Context) error {
	chats, err := e.api.GetChats(ctx)
	if err != nil {
		log.Printf("Error fetching chats: %v", err)
		return &models.FetchError{Err: err}
	}

	e.directory.Set(chats)
	return nil
}

// OpenChat selects a chat and loads its messages. Re-selecting the active chat
// is a no-op, so an in-flight load is never restarted.
func (e *ChatEngine) OpenChat(ctx context.Context, chatID int) error {
	if !e.directory.Select(chatID) {
		return nil
	}

	e.timeline.Reset(chatID)
	return e.LoadMessages(ctx, chatID)
}

// CloseChat clears the selection, for navigating back to the chat list.
func (e *ChatEngine) CloseChat() {
	e.directory.Deselect()
	e.timeline.Reset(0)
}

// LoadMessages fetches the timeline for chatID. A result arriving after the
// selection changed is discarded, so a slow fetch for one chat can never
// clobber another chat's freshly loaded timeline.
func (e *ChatEngine) LoadMessages(ctx context.Context, chatID int) error {
	token := e.timeline.BeginLoad()

	messages, err := e.api.GetMessages(ctx, chatID)
	if err != nil {
		e.timeline.FailLoad(token)
		log.Printf("Error fetching messages for chat %d: %v", chatID, err)
		return &models.FetchError{Err: err}
	}

	if !e.timeline.CompleteLoad(token, messages) {
		log.Printf("Discarded stale message fetch for chat %d", chatID)
	}
	return nil
}

// FilterChats is a pure view over the directory, matched on peer name.
func (e *ChatEngine) FilterChats(query string) []models.Chat {
	return e.directory.Filter(query)
}

// SendMessageInput carries the optional parts of an outbound message; at least
// one must be present.
type SendMessageInput struct {
	Text  string
	File  *api.FileUpload
	Audio *api.FileUpload
}

// SendMessage issues the create request and mutates nothing locally: the
// message appears when its update_chat_message event comes back, the same path
// the peer's copy takes.
func (e *ChatEngine) SendMessage(ctx context.Context, chatID int, input SendMessageInput) error {
	if input.Text == "" && input.File == nil && input.Audio == nil {
		return models.ErrEmptyMessage
	}

	_, err := e.api.CreateMessage(ctx, chatID, api.MessageForm{
		Body:  input.Text,
		File:  input.File,
		Audio: input.Audio,
	})
	if err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
		return &models.SendError{Err: err}
	}
	return nil
}

// DeleteMessage issues the delete request; the removal lands via the resulting
// event, never synchronously from the response.
func (e *ChatEngine) DeleteMessage(ctx context.Context, chatID, messageID int) error {
	if err := e.api.DeleteMessage(ctx, chatID, messageID); err != nil {
		log.Printf("Error deleting message %d in chat %d: %v", messageID, chatID, err)
		return &models.SendError{Err: err}
	}
	return nil
}

// DeleteChat issues the delete request; directory and timeline react to the
// resulting update_chat event.
func (e *ChatEngine) DeleteChat(ctx context.Context, chatID int) error {
	if err := e.api.DeleteChat(ctx, chatID); err != nil {
		log.Printf("Error deleting chat %d: %v", chatID, err)
		return &models.SendError{Err: err}
	}
	return nil
}

// CreateChat starts a conversation with the peer behind email. On success the
// chat is added to the directory and selected directly: the creator has no
// other party racing to deliver the event, and selecting the new chat must
// work before the next refresh.
func (e *ChatEngine) CreateChat(ctx context.Context, email string) (*models.Chat, error) {
	if !utils.ValidEmail(email) {
		return nil, models.ErrInvalidEmail
	}

	chat, err := e.api.CreateChat(ctx, email)
	if err != nil {
		log.Printf("Error creating chat with %s: %v", email, err)
		return nil, err
	}

	e.directory.Add(*chat)
	if e.directory.Select(chat.ID) {
		e.timeline.Reset(chat.ID)
	}

	log.Printf("Chat %d created with %s", chat.ID, email)
	return chat, nil
}
