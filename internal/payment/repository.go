package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentAlreadyPaid = errors.New("payment already paid")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (member_id, class_id, session_id, amount_cents, status, description)
		VALUES ($1, $2, $3, $4, 'pending', $5)
		RETURNING id, member_id, class_id, session_id, amount_cents, status, description, paid_at, created_at
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, req.MemberID, req.ClassID, req.SessionID, req.AmountCents, req.Description)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Payment, error) {
	query := `
		SELECT id, member_id, class_id, session_id, amount_cents, status, description, paid_at, created_at
		FROM payments
		WHERE id = $1
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) MarkPaid(ctx context.Context, id int) (*Payment, error) {
	query := `
		UPDATE payments
		SET status = 'paid', paid_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, member_id, class_id, session_id, amount_cents, status, description, paid_at, created_at
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either missing or already settled; disambiguate for the caller.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrPaymentAlreadyPaid
			}
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Payment, error) {
	query := `
		SELECT id, member_id, class_id, session_id, amount_cents, status, description, paid_at, created_at
		FROM payments
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, memberID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Payment, error) {
	query := `
		SELECT id, member_id, class_id, session_id, amount_cents, status, description, paid_at, created_at
		FROM payments
		ORDER BY created_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListPaidClassPaymentsByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Payment, error) {
	query := `
		SELECT p.id, p.member_id, p.class_id, p.session_id, p.amount_cents, p.status, p.description, p.paid_at, p.created_at
		FROM payments p
		JOIN classes c ON p.class_id = c.id
		WHERE c.trainer_id = $1
		  AND p.status = 'paid'
		  AND p.paid_at BETWEEN $2 AND $3
		ORDER BY p.paid_at ASC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, trainerID, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListPaidSessionPaymentsByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Payment, error) {
	query := `
		SELECT p.id, p.member_id, p.class_id, p.session_id, p.amount_cents, p.status, p.description, p.paid_at, p.created_at
		FROM payments p
		JOIN training_sessions ts ON p.session_id = ts.id
		WHERE ts.trainer_id = $1
		  AND p.status = 'paid'
		  AND p.paid_at BETWEEN $2 AND $3
		ORDER BY p.paid_at ASC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, trainerID, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
