package gym

import "context"

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateGym(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error)
	DeleteGym(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGym(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	return s.repo.Create(ctx, req.Name, req.Location, req.Phone)
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateGym(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	return s.repo.Update(ctx, id, req.Name, req.Location, req.Phone)
}

func (s *service) DeleteGym(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
