package message

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotRecipient    = errors.New("not the message recipient")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, senderID int, req SendMessageRequest) (*Message, error) {
	query := `
		INSERT INTO messages (sender_id, recipient_id, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sender_id, recipient_id, subject, body, read_at, created_at
	`

	var m Message
	err := r.db.GetContext(ctx, &m, query, senderID, req.RecipientID, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *Repository) Inbox(ctx context.Context, userID int) ([]MessageWithNames, error) {
	query := `
		SELECT
			msg.id, msg.sender_id, msg.recipient_id, msg.subject, msg.body, msg.read_at, msg.created_at,
			s.name AS sender_name,
			rcpt.name AS recipient_name
		FROM messages msg
		JOIN users s ON msg.sender_id = s.id
		JOIN users rcpt ON msg.recipient_id = rcpt.id
		WHERE msg.recipient_id = $1
		ORDER BY msg.created_at DESC
	`

	var messages []MessageWithNames
	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *Repository) Sent(ctx context.Context, userID int) ([]MessageWithNames, error) {
	query := `
		SELECT
			msg.id, msg.sender_id, msg.recipient_id, msg.subject, msg.body, msg.read_at, msg.created_at,
			s.name AS sender_name,
			rcpt.name AS recipient_name
		FROM messages msg
		JOIN users s ON msg.sender_id = s.id
		JOIN users rcpt ON msg.recipient_id = rcpt.id
		WHERE msg.sender_id = $1
		ORDER BY msg.created_at DESC
	`

	var messages []MessageWithNames
	err := r.db.SelectContext(ctx, &messages, query, userID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkRead stamps read_at; only the recipient can mark a message read.
func (r *Repository) MarkRead(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE messages
		SET read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND recipient_id = $2
	`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM messages WHERE id = $1)`, id); err != nil {
			return err
		}
		if !exists {
			return ErrMessageNotFound
		}
		return ErrNotRecipient
	}

	return nil
}

// Delete removes a message; only a participant may delete it.
func (r *Repository) Delete(ctx context.Context, id, userID int) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM messages
		WHERE id = $1 AND (sender_id = $2 OR recipient_id = $2)
	`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
