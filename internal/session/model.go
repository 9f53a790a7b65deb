package session

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// TrainingSession is a one-on-one slot between a trainer and a member.
type TrainingSession struct {
	ID         int       `db:"id" json:"id"`
	TrainerID  int       `db:"trainer_id" json:"trainer_id"`
	MemberID   int       `db:"member_id" json:"member_id"`
	GymID      int       `db:"gym_id" json:"gym_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateSessionRequest struct {
	TrainerID  int    `json:"trainer_id" binding:"required"`
	MemberID   int    `json:"member_id" binding:"required"`
	GymID      int    `json:"gym_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"required,min=1"`
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled"`
}
