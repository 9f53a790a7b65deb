package class

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/gym"
)

var ErrScheduleInvalid = errors.New("invalid schedule")

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error)
	GetClassByID(ctx context.Context, id int) (*Class, error)
	ListClasses(ctx context.Context) ([]Class, error)
	ListClassesByGym(ctx context.Context, gymID int) ([]Class, error)
	UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*Class, error)
	DeleteClass(ctx context.Context, id int) error

	CreateSchedule(ctx context.Context, classID int, req CreateScheduleRequest) (*ClassSchedule, error)
	GetSchedules(ctx context.Context, classID int, onlyFuture bool) ([]ScheduleWithAvailability, error)
	DeleteSchedule(ctx context.Context, id int) error
}

type service struct {
	repo    Repository
	gymRepo gym.Repository
}

func NewService(repo Repository, gymRepo gym.Repository) Service {
	return &service{
		repo:    repo,
		gymRepo: gymRepo,
	}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error) {
	if _, err := s.gymRepo.GetByID(ctx, req.GymID); err != nil {
		return nil, gym.ErrGymNotFound
	}

	return s.repo.CreateClass(ctx, req.GymID, req.TrainerID, req.Name, req.Description, req.Capacity)
}

func (s *service) GetClassByID(ctx context.Context, id int) (*Class, error) {
	return s.repo.GetClassByID(ctx, id)
}

func (s *service) ListClasses(ctx context.Context) ([]Class, error) {
	return s.repo.ListClasses(ctx)
}

func (s *service) ListClassesByGym(ctx context.Context, gymID int) ([]Class, error) {
	if _, err := s.gymRepo.GetByID(ctx, gymID); err != nil {
		return nil, gym.ErrGymNotFound
	}

	return s.repo.ListClassesByGym(ctx, gymID)
}

func (s *service) UpdateClass(ctx context.Context, id int, req UpdateClassRequest) (*Class, error) {
	return s.repo.UpdateClass(ctx, id, req.Name, req.Description, req.Capacity)
}

func (s *service) DeleteClass(ctx context.Context, id int) error {
	return s.repo.DeleteClass(ctx, id)
}

func (s *service) CreateSchedule(ctx context.Context, classID int, req CreateScheduleRequest) (*ClassSchedule, error) {
	cls, err := s.repo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrScheduleInvalid
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrScheduleInvalid
	}

	if !endTime.After(startTime) {
		return nil, ErrScheduleInvalid
	}

	if req.Capacity <= 0 {
		return nil, ErrScheduleInvalid
	}

	// Schedules default to the class's trainer unless one is given.
	trainerID := req.TrainerID
	if trainerID == 0 {
		trainerID = cls.TrainerID
	}

	return s.repo.CreateSchedule(ctx, classID, trainerID, cls.GymID, req.Room, startTime, endTime, req.Capacity)
}

func (s *service) GetSchedules(ctx context.Context, classID int, onlyFuture bool) ([]ScheduleWithAvailability, error) {
	if _, err := s.repo.GetClassByID(ctx, classID); err != nil {
		return nil, err
	}

	schedules, err := s.repo.ListSchedulesByClass(ctx, classID, onlyFuture)
	if err != nil {
		return nil, err
	}

	result := make([]ScheduleWithAvailability, 0, len(schedules))
	for _, sched := range schedules {
		available := sched.Capacity - sched.Participants
		result = append(result, ScheduleWithAvailability{
			ClassSchedule: sched,
			Available:     available,
			IsFull:        available <= 0,
		})
	}

	return result, nil
}

func (s *service) DeleteSchedule(ctx context.Context, id int) error {
	return s.repo.DeleteSchedule(ctx, id)
}
