package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrSessionNotFound = errors.New("training session not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, trainerID, memberID, gymID int, start, end time.Time, priceCents int64) (*TrainingSession, error) {
	query := `
		INSERT INTO training_sessions (trainer_id, member_id, gym_id, start_time, end_time, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		RETURNING id, trainer_id, member_id, gym_id, start_time, end_time, price_cents, status, created_at
	`

	var s TrainingSession
	err := r.db.GetContext(ctx, &s, query, trainerID, memberID, gymID, start, end, priceCents)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*TrainingSession, error) {
	query := `
		SELECT id, trainer_id, member_id, gym_id, start_time, end_time, price_cents, status, created_at
		FROM training_sessions
		WHERE id = $1
	`

	var s TrainingSession
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *Repository) ListByTrainer(ctx context.Context, trainerID int) ([]TrainingSession, error) {
	query := `
		SELECT id, trainer_id, member_id, gym_id, start_time, end_time, price_cents, status, created_at
		FROM training_sessions
		WHERE trainer_id = $1
		ORDER BY start_time DESC
	`

	var sessions []TrainingSession
	err := r.db.SelectContext(ctx, &sessions, query, trainerID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) ListByMember(ctx context.Context, memberID int) ([]TrainingSession, error) {
	query := `
		SELECT id, trainer_id, member_id, gym_id, start_time, end_time, price_cents, status, created_at
		FROM training_sessions
		WHERE member_id = $1
		ORDER BY start_time DESC
	`

	var sessions []TrainingSession
	err := r.db.SelectContext(ctx, &sessions, query, memberID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) (*TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET status = $2
		WHERE id = $1
		RETURNING id, trainer_id, member_id, gym_id, start_time, end_time, price_cents, status, created_at
	`

	var s TrainingSession
	err := r.db.GetContext(ctx, &s, query, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
