package class

import "time"

type Class struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Enrolled    int       `db:"enrolled" json:"enrolled"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ClassSchedule is one bookable occurrence of a class. participants can
// never exceed capacity; the seat counter only moves through
// TakeScheduleSeat.
type ClassSchedule struct {
	ID           int       `db:"id" json:"id"`
	ClassID      int       `db:"class_id" json:"class_id"`
	TrainerID    int       `db:"trainer_id" json:"trainer_id"`
	GymID        int       `db:"gym_id" json:"gym_id"`
	Room         string    `db:"room" json:"room"`
	StartTime    time.Time `db:"start_time" json:"start_time"`
	EndTime      time.Time `db:"end_time" json:"end_time"`
	Capacity     int       `db:"capacity" json:"capacity"`
	Participants int       `db:"participants" json:"participants"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type ScheduleWithAvailability struct {
	ClassSchedule
	Available int  `json:"available"`
	IsFull    bool `json:"is_full"`
}

type CreateClassRequest struct {
	GymID       int    `json:"gym_id" binding:"required"`
	TrainerID   int    `json:"trainer_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

type UpdateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

type CreateScheduleRequest struct {
	TrainerID int    `json:"trainer_id"`
	Room      string `json:"room"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
}
