package member

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, phone string, birthDate *time.Time) (*Member, error)
	GetOrCreateByUser(ctx context.Context, userID int) (*Member, error)
	GetByID(ctx context.Context, id int) (*MemberWithUser, error)
	GetByUserID(ctx context.Context, userID int) (*Member, error)
	GetByCheckinCode(ctx context.Context, code string) (*MemberWithUser, error)
	List(ctx context.Context) ([]MemberWithUser, error)
	Update(ctx context.Context, id int, phone string, birthDate *time.Time) (*Member, error)
	Delete(ctx context.Context, id int) error
}
