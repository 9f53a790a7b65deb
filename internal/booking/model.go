package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID          int       `db:"id" json:"id"`
	ClassID     int       `db:"class_id" json:"class_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	BookingDate time.Time `db:"booking_date" json:"booking_date"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	ClassName   string `db:"class_name" json:"class_name"`
	GymName     string `db:"gym_name" json:"gym_name"`
	MemberName  string `db:"member_name" json:"member_name"`
	MemberEmail string `db:"member_email" json:"member_email"`
}

// CreateBookingRequest is the row-based booking payload. member_id is
// required for receptionists and ignored for members, whose own profile
// is used.
type CreateBookingRequest struct {
	ClassID     int    `json:"class_id" binding:"required"`
	MemberID    int    `json:"member_id"`
	BookingDate string `json:"booking_date"`
	Status      string `json:"status"`
}

// BookScheduleRequest is the counter-based booking payload. The body is
// empty for members; receptionists pass the member explicitly.
type BookScheduleRequest struct {
	MemberID int `json:"member_id"`
}
