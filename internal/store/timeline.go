package store

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"PairTalk/client/internal/models"
)

// Timeline owns the ordered message list for the active chat. Messages are
// kept in arrival order only; nothing here re-sorts by created_at, because
// arrival order is the only ordering the client can trust without server
// sequence numbers.
type Timeline struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	chatID   int
	messages []models.Message // nil until loaded, empty slice after
	loading  bool
	gen      uint64
}

func NewTimeline(clock clockwork.Clock) *Timeline {
	return &Timeline{clock: clock}
}

// Reset clears the timeline for a chat switch and invalidates any fetch still
// in flight for the previous chat.
func (t *Timeline) Reset(chatID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.chatID = chatID
	t.messages = nil
	t.loading = false
	t.gen++
}

// BeginLoad marks the timeline loading and returns the generation token the
// matching CompleteLoad must present.
func (t *Timeline) BeginLoad() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loading = true
	return t.gen
}

// CompleteLoad installs fetched messages. A result whose token is stale, which
// means the active chat changed while the fetch was in flight, is discarded.
func (t *Timeline) CompleteLoad(token uint64, messages []models.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token != t.gen {
		return false
	}

	if messages == nil {
		messages = []models.Message{}
	}
	t.messages = messages
	t.loading = false
	return true
}

// FailLoad clears the loading flag after a failed fetch, leaving the timeline
// unloaded so the caller can distinguish "empty" from "never loaded".
func (t *Timeline) FailLoad(token uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token == t.gen {
		t.loading = false
	}
}

// Append inserts at the tail unless a message with the same id is already
// present. Returns whether the message was inserted.
func (t *Timeline) Append(msg models.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == msg.ID {
			return false
		}
	}
	t.messages = append(t.messages, msg)
	return true
}

// Remove deletes by id; removing an unknown id is a no-op.
func (t *Timeline) Remove(messageID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == messageID {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return true
		}
	}
	return false
}

// MarkAllSeenExcept stamps viewed_at on every unseen message not authored by
// the excluded user. Already-seen messages keep their original stamp.
func (t *Timeline) MarkAllSeenExcept(excludedUserID int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	marked := 0
	for i := range t.messages {
		m := &t.messages[i]
		if m.ViewedAt != nil || m.FromUser.ID == excludedUserID {
			continue
		}

		stamp := now
		m.ViewedAt = &stamp
		marked++
	}
	return marked
}

// Messages returns a copy of the timeline in arrival order, or nil when it has
// not been loaded yet.
func (t *Timeline) Messages() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.messages == nil {
		return nil
	}
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Timeline) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages != nil
}

func (t *Timeline) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Timeline) ChatID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.chatID
}
