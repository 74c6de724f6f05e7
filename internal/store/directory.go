package store

import (
	"strings"
	"sync"

	"PairTalk/client/internal/models"
)

// Directory owns the chat list and the active selection. All mutation goes
// through the methods below; the event handlers and the create-chat action are
// the only callers.
type Directory struct {
	mu     sync.Mutex
	chats  []models.Chat // nil until the first successful refresh
	active int           // 0 = no selection
}

func NewDirectory() *Directory {
	return &Directory{}
}

// Set replaces the whole list. A failed fetch never reaches this point, so the
// previous list survives transport errors untouched.
func (d *Directory) Set(chats []models.Chat) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if chats == nil {
		chats = []models.Chat{}
	}
	d.chats = chats
}

// Add inserts or replaces a single chat. Used by the create-chat action, the
// one mutation that does not arrive through an event.
func (d *Directory) Add(chat models.Chat) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID == chat.ID {
			d.chats[i] = chat
			return
		}
	}
	d.chats = append(d.chats, chat)
}

// Select makes chatID the active chat. Selecting the chat already active is a
// no-op; the return reports whether the selection changed.
func (d *Directory) Select(chatID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active == chatID {
		return false
	}
	d.active = chatID
	return true
}

// Deselect clears the active selection.
func (d *Directory) Deselect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = 0
}

func (d *Directory) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Directory) Contains(chatID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID == chatID {
			return true
		}
	}
	return false
}

func (d *Directory) Get(chatID int) (models.Chat, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID == chatID {
			return d.chats[i], true
		}
	}
	return models.Chat{}, false
}

// List returns a copy of the directory, or nil before the first refresh.
func (d *Directory) List() []models.Chat {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.chats == nil {
		return nil
	}
	out := make([]models.Chat, len(d.chats))
	copy(out, d.chats)
	return out
}

func (d *Directory) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chats != nil
}

// Filter returns the chats whose peer name contains query, case-insensitively.
// The underlying list is not touched.
func (d *Directory) Filter(query string) []models.Chat {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]models.Chat, 0, len(d.chats))
	for _, c := range d.chats {
		if strings.Contains(strings.ToLower(c.User.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyMessage updates a chat's preview for a newly created message. The
// unseen counter grows only for peer-authored messages in a chat that is not
// active. Returns false when the chat is unknown.
func (d *Directory) ApplyMessage(chatID int, msg models.Message, selfID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID != chatID {
			continue
		}

		m := msg
		d.chats[i].LastMessage = &m
		if msg.FromUser.ID != selfID && d.active != chatID {
			d.chats[i].UnseenCount++
		}
		return true
	}
	return false
}

// ClearUnseen zeroes a chat's unseen badge. Unknown chats are a no-op.
func (d *Directory) ClearUnseen(chatID int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID == chatID {
			d.chats[i].UnseenCount = 0
			return
		}
	}
}

// Remove drops a chat from the list, clearing the selection when it was the
// active one.
func (d *Directory) Remove(chatID int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.chats {
		if d.chats[i].ID == chatID {
			d.chats = append(d.chats[:i], d.chats[i+1:]...)
			break
		}
	}
	if d.active == chatID {
		d.active = 0
	}
}
