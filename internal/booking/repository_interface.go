package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, classID, memberID, trainerID int, bookingDate time.Time, status string) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ExistsForClassAndMember(ctx context.Context, classID, memberID int) (bool, error)
	Cancel(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	ListByMember(ctx context.Context, memberID int) ([]Booking, error)
	ListByClass(ctx context.Context, classID int) ([]BookingWithDetails, error)
	ListAll(ctx context.Context) ([]BookingWithDetails, error)
}
