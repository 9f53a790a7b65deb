package class

import (
	"context"
	"time"
)

type Repository interface {
	CreateClass(ctx context.Context, gymID, trainerID int, name, description string, capacity int) (*Class, error)
	GetClassByID(ctx context.Context, id int) (*Class, error)
	ListClasses(ctx context.Context) ([]Class, error)
	ListClassesByGym(ctx context.Context, gymID int) ([]Class, error)
	UpdateClass(ctx context.Context, id int, name, description string, capacity int) (*Class, error)
	DeleteClass(ctx context.Context, id int) error
	IncrementEnrolled(ctx context.Context, classID int) (bool, error)

	CreateSchedule(ctx context.Context, classID, trainerID, gymID int, room string, startTime, endTime time.Time, capacity int) (*ClassSchedule, error)
	GetScheduleByID(ctx context.Context, id int) (*ClassSchedule, error)
	ListSchedulesByClass(ctx context.Context, classID int, onlyFuture bool) ([]ClassSchedule, error)
	TakeScheduleSeat(ctx context.Context, scheduleID int) (bool, error)
	DeleteSchedule(ctx context.Context, id int) error
}
