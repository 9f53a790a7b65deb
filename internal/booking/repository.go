package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
	ErrDuplicateBooking                  = errors.New("duplicate booking")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, classID, memberID, trainerID int, bookingDate time.Time, status string) (*Booking, error) {
	query := `
		INSERT INTO bookings (class_id, member_id, trainer_id, booking_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, class_id, member_id, trainer_id, booking_date, status, created_at
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, classID, memberID, trainerID, bookingDate, status)
	if err != nil {
		// The (class_id, member_id) unique index is the concurrency-safe
		// guard against double booking.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, class_id, member_id, trainer_id, booking_date, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) ExistsForClassAndMember(ctx context.Context, classID, memberID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE class_id = $1 AND member_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, classID, memberID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status != 'cancelled'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Booking, error) {
	query := `
		SELECT id, class_id, member_id, trainer_id, booking_date, status, created_at
		FROM bookings
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, memberID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByClass(ctx context.Context, classID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.class_id,
			b.member_id,
			b.trainer_id,
			b.booking_date,
			b.status,
			b.created_at,
			c.name AS class_name,
			g.name AS gym_name,
			u.name AS member_name,
			u.email AS member_email
		FROM bookings b
		JOIN classes c ON b.class_id = c.id
		JOIN gyms g ON c.gym_id = g.id
		JOIN members m ON b.member_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE b.class_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, classID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListAll(ctx context.Context) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.class_id,
			b.member_id,
			b.trainer_id,
			b.booking_date,
			b.status,
			b.created_at,
			c.name AS class_name,
			g.name AS gym_name,
			u.name AS member_name,
			u.email AS member_email
		FROM bookings b
		JOIN classes c ON b.class_id = c.id
		JOIN gyms g ON c.gym_id = g.id
		JOIN members m ON b.member_id = m.id
		JOIN users u ON m.user_id = u.id
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
