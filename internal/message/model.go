package message

import "time"

type Message struct {
	ID          int        `db:"id" json:"id"`
	SenderID    int        `db:"sender_id" json:"sender_id"`
	RecipientID int        `db:"recipient_id" json:"recipient_id"`
	Subject     string     `db:"subject" json:"subject"`
	Body        string     `db:"body" json:"body"`
	ReadAt      *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// MessageWithNames carries sender and recipient display names for inbox views.
type MessageWithNames struct {
	Message
	SenderName    string `db:"sender_name" json:"sender_name"`
	RecipientName string `db:"recipient_name" json:"recipient_name"`
}

type SendMessageRequest struct {
	RecipientID int    `json:"recipient_id" binding:"required"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Body        string `json:"body" binding:"required"`
}
