package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetByID(ctx context.Context, id int) (*Payment, error)
	MarkPaid(ctx context.Context, id int) (*Payment, error)
	ListByMember(ctx context.Context, memberID int) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
	ListPaidClassPaymentsByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Payment, error)
	ListPaidSessionPaymentsByTrainer(ctx context.Context, trainerID int, from, to time.Time) ([]Payment, error)
}
