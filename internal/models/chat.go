package models

import (
	"time"
)

// Chat is a pairwise conversation with one peer. The server guarantees a
// single chat per peer.
type Chat struct {
	ID          int        `json:"id"`
	User        User       `json:"user"`
	LastMessage *Message   `json:"last_message"`
	UnseenCount int        `json:"unseen_count"`
	ViewedAt    *time.Time `json:"viewed_at"`
	CreatedAt   time.Time  `json:"create_at"`
}
