package model

import "time"

// Message is a direct message between two users.
// ReadAt stays nil until the recipient marks it read and never changes afterwards.
type Message struct {
	ID           int64      `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}

// IsRead reports whether the message has left the Sent state
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

// MessageDetail is a message joined with both participants' profiles
type MessageDetail struct {
	ID       int64       `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserProfile `json:"from_user"`
	ToUser   UserProfile `json:"to_user"`
}

// SentMessage is an entry of a user's outbox, joined with the recipient
type SentMessage struct {
	ID     int64       `json:"id"`
	ToUser UserProfile `json:"to_user"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
}

// ReceivedMessage is an entry of a user's inbox, joined with the sender
type ReceivedMessage struct {
	ID       int64       `json:"id"`
	FromUser UserProfile `json:"from_user"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
}

// ReadReceipt is returned after marking a message read
type ReadReceipt struct {
	ID     int64     `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// CreateMessageRequest is the body of POST /messages.
// The sender is always the authenticated user, never taken from the body.
type CreateMessageRequest struct {
	ToUsername string `json:"to_username" binding:"required"`
	Body       string `json:"body" binding:"required"`
}
