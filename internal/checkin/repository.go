package checkin

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, memberID, gymID int) (*CheckIn, error) {
	query := `
		INSERT INTO checkins (member_id, gym_id)
		VALUES ($1, $2)
		RETURNING id, member_id, gym_id, checked_in_at
	`

	var ci CheckIn
	err := r.db.GetContext(ctx, &ci, query, memberID, gymID)
	if err != nil {
		return nil, err
	}

	return &ci, nil
}

func (r *Repository) ListByMember(ctx context.Context, memberID int) ([]CheckIn, error) {
	query := `
		SELECT id, member_id, gym_id, checked_in_at
		FROM checkins
		WHERE member_id = $1
		ORDER BY checked_in_at DESC
	`

	var checkins []CheckIn
	err := r.db.SelectContext(ctx, &checkins, query, memberID)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}

func (r *Repository) ListByGym(ctx context.Context, gymID int, limit int) ([]CheckInWithMember, error) {
	query := `
		SELECT
			ci.id, ci.member_id, ci.gym_id, ci.checked_in_at,
			u.name AS member_name
		FROM checkins ci
		JOIN members m ON ci.member_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE ci.gym_id = $1
		ORDER BY ci.checked_in_at DESC
		LIMIT $2
	`

	var checkins []CheckInWithMember
	err := r.db.SelectContext(ctx, &checkins, query, gymID, limit)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}
