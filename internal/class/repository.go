package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateClass(ctx context.Context, gymID, trainerID int, name, description string, capacity int) (*Class, error) {
	query := `
		INSERT INTO classes (gym_id, trainer_id, name, description, capacity, enrolled)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id, gym_id, trainer_id, name, description, capacity, enrolled, created_at
	`

	var cls Class
	err := r.db.GetContext(ctx, &cls, query, gymID, trainerID, name, description, capacity)
	if err != nil {
		return nil, err
	}

	return &cls, nil
}

func (r *repository) GetClassByID(ctx context.Context, id int) (*Class, error) {
	query := `
		SELECT id, gym_id, trainer_id, name, description, capacity, enrolled, created_at
		FROM classes
		WHERE id = $1
	`

	var cls Class
	err := r.db.GetContext(ctx, &cls, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &cls, nil
}

func (r *repository) ListClasses(ctx context.Context) ([]Class, error) {
	query := `
		SELECT id, gym_id, trainer_id, name, description, capacity, enrolled, created_at
		FROM classes
		ORDER BY created_at DESC
	`

	var classes []Class
	err := r.db.SelectContext(ctx, &classes, query)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ListClassesByGym(ctx context.Context, gymID int) ([]Class, error) {
	query := `
		SELECT id, gym_id, trainer_id, name, description, capacity, enrolled, created_at
		FROM classes
		WHERE gym_id = $1
		ORDER BY created_at DESC
	`

	var classes []Class
	err := r.db.SelectContext(ctx, &classes, query, gymID)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) UpdateClass(ctx context.Context, id int, name, description string, capacity int) (*Class, error) {
	query := `
		UPDATE classes
		SET name = $2, description = $3, capacity = $4
		WHERE id = $1
		RETURNING id, gym_id, trainer_id, name, description, capacity, enrolled, created_at
	`

	var cls Class
	err := r.db.GetContext(ctx, &cls, query, id, name, description, capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &cls, nil
}

func (r *repository) DeleteClass(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

// IncrementEnrolled bumps a class's enrolled counter, guarded so enrolled
// never exceeds capacity. Returns false when the class is at capacity or
// does not exist.
func (r *repository) IncrementEnrolled(ctx context.Context, classID int) (bool, error) {
	query := `
		UPDATE classes
		SET enrolled = enrolled + 1
		WHERE id = $1 AND enrolled < capacity
	`

	result, err := r.db.ExecContext(ctx, query, classID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) CreateSchedule(ctx context.Context, classID, trainerID, gymID int, room string, startTime, endTime time.Time, capacity int) (*ClassSchedule, error) {
	query := `
		INSERT INTO class_schedules (class_id, trainer_id, gym_id, room, start_time, end_time, capacity, participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
		RETURNING id, class_id, trainer_id, gym_id, room, start_time, end_time, capacity, participants, created_at
	`

	var sched ClassSchedule
	err := r.db.GetContext(ctx, &sched, query, classID, trainerID, gymID, room, startTime, endTime, capacity)
	if err != nil {
		return nil, err
	}

	return &sched, nil
}

func (r *repository) GetScheduleByID(ctx context.Context, id int) (*ClassSchedule, error) {
	query := `
		SELECT id, class_id, trainer_id, gym_id, room, start_time, end_time, capacity, participants, created_at
		FROM class_schedules
		WHERE id = $1
	`

	var sched ClassSchedule
	err := r.db.GetContext(ctx, &sched, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	return &sched, nil
}

func (r *repository) ListSchedulesByClass(ctx context.Context, classID int, onlyFuture bool) ([]ClassSchedule, error) {
	query := `
		SELECT id, class_id, trainer_id, gym_id, room, start_time, end_time, capacity, participants, created_at
		FROM class_schedules
		WHERE class_id = $1
	`

	if onlyFuture {
		query += " AND start_time > NOW()"
	}

	query += " ORDER BY start_time ASC"

	var schedules []ClassSchedule
	err := r.db.SelectContext(ctx, &schedules, query, classID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

// TakeScheduleSeat atomically takes one seat on a schedule. The
// conditional update is the capacity guard: concurrent callers cannot
// push participants past capacity. Returns false when the schedule is
// full or missing.
func (r *repository) TakeScheduleSeat(ctx context.Context, scheduleID int) (bool, error) {
	query := `
		UPDATE class_schedules
		SET participants = participants + 1
		WHERE id = $1 AND participants < capacity
	`

	result, err := r.db.ExecContext(ctx, query, scheduleID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) DeleteSchedule(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
