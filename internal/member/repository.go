package member

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID int, phone string, birthDate *time.Time) (*Member, error) {
	query := `
		INSERT INTO members (user_id, phone, birth_date, checkin_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, phone, birth_date, checkin_code, created_at
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, userID, phone, birthDate, uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// GetOrCreateByUser returns the member profile for a user, creating an
// empty one on first access.
func (r *repository) GetOrCreateByUser(ctx context.Context, userID int) (*Member, error) {
	m, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	return r.Create(ctx, userID, "", nil)
}

func (r *repository) GetByID(ctx context.Context, id int) (*MemberWithUser, error) {
	query := `
		SELECT
			m.id, m.user_id, m.phone, m.birth_date, m.checkin_code, m.created_at,
			u.name AS user_name,
			u.email AS user_email
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1
	`

	var m MemberWithUser
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Member, error) {
	query := `
		SELECT id, user_id, phone, birth_date, checkin_code, created_at
		FROM members
		WHERE user_id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByCheckinCode(ctx context.Context, code string) (*MemberWithUser, error) {
	query := `
		SELECT
			m.id, m.user_id, m.phone, m.birth_date, m.checkin_code, m.created_at,
			u.name AS user_name,
			u.email AS user_email
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.checkin_code = $1
	`

	var m MemberWithUser
	err := r.db.GetContext(ctx, &m, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context) ([]MemberWithUser, error) {
	query := `
		SELECT
			m.id, m.user_id, m.phone, m.birth_date, m.checkin_code, m.created_at,
			u.name AS user_name,
			u.email AS user_email
		FROM members m
		JOIN users u ON m.user_id = u.id
		ORDER BY m.created_at DESC
	`

	var members []MemberWithUser
	err := r.db.SelectContext(ctx, &members, query)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) Update(ctx context.Context, id int, phone string, birthDate *time.Time) (*Member, error) {
	query := `
		UPDATE members
		SET phone = $2, birth_date = $3
		WHERE id = $1
		RETURNING id, user_id, phone, birth_date, checkin_code, created_at
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id, phone, birthDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
