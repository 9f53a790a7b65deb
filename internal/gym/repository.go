package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGymNotFound = errors.New("gym not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, location, phone string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, location, phone)
		VALUES ($1, $2, $3)
		RETURNING id, name, location, phone, created_at
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, name, location, phone)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, location, phone, created_at
		FROM gyms
		ORDER BY created_at DESC
	`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, location, phone, created_at
		FROM gyms
		WHERE id = $1
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return &gym, nil
}

func (r *repository) Update(ctx context.Context, id int, name, location, phone string) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $2, location = $3, phone = $4
		WHERE id = $1
		RETURNING id, name, location, phone, created_at
	`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id, name, location, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return &gym, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGymNotFound
	}

	return nil
}
