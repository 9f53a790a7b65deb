package booking

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/class"
	"gymdesk/internal/email"
	"gymdesk/internal/logger"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleFull     = errors.New("class is full")
	ErrClassNotFound    = errors.New("class not found")
	ErrAlreadyBooked    = errors.New("member already booked this class")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("can only cancel own bookings")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

type Service interface {
	BookSchedule(ctx context.Context, scheduleID, memberID int) (*class.ClassSchedule, error)
	CreateBooking(ctx context.Context, memberID int, req CreateBookingRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, memberID int, staff bool) error
	DeleteBooking(ctx context.Context, bookingID int) error
	GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error)
	GetBookingsByClass(ctx context.Context, classID int) ([]BookingWithDetails, error)
	GetAllBookings(ctx context.Context) ([]BookingWithDetails, error)
}

type service struct {
	bookingRepo  Repository
	classRepo    class.Repository
	memberRepo   member.Repository
	emailService *email.Service
}

func NewService(
	bookingRepo Repository,
	classRepo class.Repository,
	memberRepo member.Repository,
	emailService *email.Service,
) Service {
	return &service{
		bookingRepo:  bookingRepo,
		classRepo:    classRepo,
		memberRepo:   memberRepo,
		emailService: emailService,
	}
}

// BookSchedule reserves a seat on a class schedule for a member. The
// seat take is a single conditional update, so two concurrent calls can
// never push participants past capacity.
func (s *service) BookSchedule(ctx context.Context, scheduleID, memberID int) (*class.ClassSchedule, error) {
	sched, err := s.classRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	taken, err := s.classRepo.TakeScheduleSeat(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !taken {
		return nil, ErrScheduleFull
	}

	// The parent class counter is a separate statement; the seat stands
	// even if this update cannot be applied.
	if ok, err := s.classRepo.IncrementEnrolled(ctx, sched.ClassID); err != nil || !ok {
		logger.Error("failed to increment class enrolled counter",
			"class_id", sched.ClassID,
			"schedule_id", scheduleID,
			"error", err,
		)
	}

	updated, err := s.classRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	logger.Info("schedule booked",
		"schedule_id", scheduleID,
		"member_id", memberID,
		"participants", updated.Participants,
		"capacity", updated.Capacity,
	)
	metrics.RecordBooking("schedule", "booked")

	if m, err := s.memberRepo.GetByID(ctx, memberID); err == nil {
		className := "Gym Class"
		if cls, err := s.classRepo.GetClassByID(ctx, sched.ClassID); err == nil {
			className = cls.Name
		}
		s.emailService.SendBookingConfirmation(ctx, m.UserEmail, m.UserName, className, sched.StartTime)
	}

	return updated, nil
}

// CreateBooking is the row-based entry point. It has no capacity check;
// the (class_id, member_id) unique index prevents double booking.
func (s *service) CreateBooking(ctx context.Context, memberID int, req CreateBookingRequest) (*Booking, error) {
	cls, err := s.classRepo.GetClassByID(ctx, req.ClassID)
	if err != nil {
		return nil, ErrClassNotFound
	}

	exists, err := s.bookingRepo.ExistsForClassAndMember(ctx, req.ClassID, memberID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBooked
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, ErrInvalidStatus
	}

	bookingDate := time.Now()
	if req.BookingDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.BookingDate)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		bookingDate = parsed
	}

	booking, err := s.bookingRepo.Create(ctx, req.ClassID, memberID, cls.TrainerID, bookingDate, status)
	if err != nil {
		if errors.Is(err, ErrDuplicateBooking) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}

	logger.Info("booking created",
		"booking_id", booking.ID,
		"class_id", req.ClassID,
		"member_id", memberID,
		"status", status,
	)
	metrics.RecordBooking("class", status)

	return booking, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, memberID int, staff bool) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if !staff && booking.MemberID != memberID {
		return ErrNotBookingOwner
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	metrics.RecordBookingCancellation()

	if m, err := s.memberRepo.GetByID(ctx, booking.MemberID); err == nil {
		className := "Gym Class"
		if cls, err := s.classRepo.GetClassByID(ctx, booking.ClassID); err == nil {
			className = cls.Name
		}
		s.emailService.SendBookingCancellation(ctx, m.UserEmail, m.UserName, className)
	}

	return nil
}

func (s *service) DeleteBooking(ctx context.Context, bookingID int) error {
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return ErrBookingNotFound
	}
	return nil
}

func (s *service) GetMemberBookings(ctx context.Context, memberID int) ([]Booking, error) {
	return s.bookingRepo.ListByMember(ctx, memberID)
}

func (s *service) GetBookingsByClass(ctx context.Context, classID int) ([]BookingWithDetails, error) {
	return s.bookingRepo.ListByClass(ctx, classID)
}

func (s *service) GetAllBookings(ctx context.Context) ([]BookingWithDetails, error) {
	return s.bookingRepo.ListAll(ctx)
}
