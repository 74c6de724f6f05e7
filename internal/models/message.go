package models

import (
	"time"
)

// Message carries text, a file or a voice note. Body and attachment are never
// both absent.
type Message struct {
	ID         int         `json:"id"`
	Body       *string     `json:"body"`
	Attachment *Attachment `json:"attachment"`
	FromUser   User        `json:"from_user"`
	ViewedAt   *time.Time  `json:"viewed_at"`
	CreatedAt  time.Time   `json:"created_at"`
}
