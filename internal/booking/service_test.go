package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/class"
	"gymdesk/internal/email"
	"gymdesk/internal/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockBookingRepo struct{ mock.Mock }
type MockClassRepo struct{ mock.Mock }
type MockMemberRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, classID, memberID, trainerID int, bookingDate time.Time, status string) (*Booking, error) {
	args := m.Called(ctx, classID, memberID, trainerID, bookingDate, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) ExistsForClassAndMember(ctx context.Context, classID, memberID int) (bool, error) {
	args := m.Called(ctx, classID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) ListByMember(ctx context.Context, memberID int) ([]Booking, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByClass(ctx context.Context, classID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockBookingRepo) ListAll(ctx context.Context) ([]BookingWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockClassRepo) CreateClass(ctx context.Context, gymID, trainerID int, name, description string, capacity int) (*class.Class, error) {
	args := m.Called(ctx, gymID, trainerID, name, description, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) GetClassByID(ctx context.Context, id int) (*class.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) ListClasses(ctx context.Context) ([]class.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.Class), args.Error(1)
}

func (m *MockClassRepo) ListClassesByGym(ctx context.Context, gymID int) ([]class.Class, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.Class), args.Error(1)
}

func (m *MockClassRepo) UpdateClass(ctx context.Context, id int, name, description string, capacity int) (*class.Class, error) {
	args := m.Called(ctx, id, name, description, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Class), args.Error(1)
}

func (m *MockClassRepo) DeleteClass(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClassRepo) IncrementEnrolled(ctx context.Context, classID int) (bool, error) {
	args := m.Called(ctx, classID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepo) CreateSchedule(ctx context.Context, classID, trainerID, gymID int, room string, startTime, endTime time.Time, capacity int) (*class.ClassSchedule, error) {
	args := m.Called(ctx, classID, trainerID, gymID, room, startTime, endTime, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.ClassSchedule), args.Error(1)
}

func (m *MockClassRepo) GetScheduleByID(ctx context.Context, id int) (*class.ClassSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.ClassSchedule), args.Error(1)
}

func (m *MockClassRepo) ListSchedulesByClass(ctx context.Context, classID int, onlyFuture bool) ([]class.ClassSchedule, error) {
	args := m.Called(ctx, classID, onlyFuture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.ClassSchedule), args.Error(1)
}

func (m *MockClassRepo) TakeScheduleSeat(ctx context.Context, scheduleID int) (bool, error) {
	args := m.Called(ctx, scheduleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepo) DeleteSchedule(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMemberRepo) Create(ctx context.Context, userID int, phone string, birthDate *time.Time) (*member.Member, error) {
	args := m.Called(ctx, userID, phone, birthDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetOrCreateByUser(ctx context.Context, userID int) (*member.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByID(ctx context.Context, id int) (*member.MemberWithUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.MemberWithUser), args.Error(1)
}

func (m *MockMemberRepo) GetByUserID(ctx context.Context, userID int) (*member.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByCheckinCode(ctx context.Context, code string) (*member.MemberWithUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.MemberWithUser), args.Error(1)
}

func (m *MockMemberRepo) List(ctx context.Context) ([]member.MemberWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.MemberWithUser), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, id int, phone string, birthDate *time.Time) (*member.Member, error) {
	args := m.Called(ctx, id, phone, birthDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(br *MockBookingRepo, cr *MockClassRepo, mr *MockMemberRepo) Service {
	emailService := email.New("from@test.com", "Test", "localhost", "1025", "", "", "localhost:6379")
	return NewService(br, cr, mr, emailService)
}

func TestService_BookSchedule(t *testing.T) {
	futureTime := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		scheduleID  int
		memberID    int
		setupMocks  func(*MockBookingRepo, *MockClassRepo, *MockMemberRepo)
		expectError error
	}{
		{
			name:       "successful booking",
			scheduleID: 1,
			memberID:   5,
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				cr.On("GetScheduleByID", mock.Anything, 1).Return(&class.ClassSchedule{
					ID:           1,
					ClassID:      10,
					StartTime:    futureTime,
					EndTime:      futureTime.Add(time.Hour),
					Capacity:     20,
					Participants: 5,
				}, nil).Once()
				cr.On("TakeScheduleSeat", mock.Anything, 1).Return(true, nil)
				cr.On("IncrementEnrolled", mock.Anything, 10).Return(true, nil)
				cr.On("GetScheduleByID", mock.Anything, 1).Return(&class.ClassSchedule{
					ID:           1,
					ClassID:      10,
					StartTime:    futureTime,
					EndTime:      futureTime.Add(time.Hour),
					Capacity:     20,
					Participants: 6,
				}, nil).Once()
				mr.On("GetByID", mock.Anything, 5).Return(&member.MemberWithUser{
					Member:    member.Member{ID: 5},
					UserName:  "Test Member",
					UserEmail: "member@test.com",
				}, nil)
				cr.On("GetClassByID", mock.Anything, 10).Return(&class.Class{
					ID:   10,
					Name: "Yoga",
				}, nil)
			},
		},
		{
			name:       "schedule not found",
			scheduleID: 999,
			memberID:   5,
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				cr.On("GetScheduleByID", mock.Anything, 999).Return(nil, errors.New("not found"))
			},
			expectError: ErrScheduleNotFound,
		},
		{
			name:       "schedule full",
			scheduleID: 1,
			memberID:   5,
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				cr.On("GetScheduleByID", mock.Anything, 1).Return(&class.ClassSchedule{
					ID:           1,
					ClassID:      10,
					StartTime:    futureTime,
					Capacity:     20,
					Participants: 20,
				}, nil)
				cr.On("TakeScheduleSeat", mock.Anything, 1).Return(false, nil)
			},
			expectError: ErrScheduleFull,
		},
		{
			name:       "seat kept when class counter update fails",
			scheduleID: 1,
			memberID:   5,
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo, mr *MockMemberRepo) {
				cr.On("GetScheduleByID", mock.Anything, 1).Return(&class.ClassSchedule{
					ID:      1,
					ClassID: 10,
				}, nil)
				cr.On("TakeScheduleSeat", mock.Anything, 1).Return(true, nil)
				cr.On("IncrementEnrolled", mock.Anything, 10).Return(false, errors.New("db down"))
				mr.On("GetByID", mock.Anything, 5).Return(nil, errors.New("not found"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			cr := new(MockClassRepo)
			mr := new(MockMemberRepo)

			tt.setupMocks(br, cr, mr)

			service := newTestService(br, cr, mr)
			sched, err := service.BookSchedule(context.Background(), tt.scheduleID, tt.memberID)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, sched)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, sched)
			}
			cr.AssertExpectations(t)
		})
	}
}

func TestService_BookSchedule_FullDoesNotTouchCounters(t *testing.T) {
	br := new(MockBookingRepo)
	cr := new(MockClassRepo)
	mr := new(MockMemberRepo)

	cr.On("GetScheduleByID", mock.Anything, 1).Return(&class.ClassSchedule{
		ID:           1,
		ClassID:      10,
		Capacity:     1,
		Participants: 1,
	}, nil)
	cr.On("TakeScheduleSeat", mock.Anything, 1).Return(false, nil)

	service := newTestService(br, cr, mr)
	_, err := service.BookSchedule(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrScheduleFull)
	cr.AssertNotCalled(t, "IncrementEnrolled", mock.Anything, mock.Anything)
}

func TestService_CreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		memberID    int
		req         CreateBookingRequest
		setupMocks  func(*MockBookingRepo, *MockClassRepo)
		expectError error
	}{
		{
			name:     "successful booking with defaults",
			memberID: 5,
			req:      CreateBookingRequest{ClassID: 10},
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo) {
				cr.On("GetClassByID", mock.Anything, 10).Return(&class.Class{
					ID:        10,
					TrainerID: 3,
					Name:      "Yoga",
				}, nil)
				br.On("ExistsForClassAndMember", mock.Anything, 10, 5).Return(false, nil)
				br.On("Create", mock.Anything, 10, 5, 3, mock.Anything, StatusPending).Return(&Booking{
					ID:       1,
					ClassID:  10,
					MemberID: 5,
					Status:   StatusPending,
				}, nil)
			},
		},
		{
			name:     "class not found",
			memberID: 5,
			req:      CreateBookingRequest{ClassID: 999},
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo) {
				cr.On("GetClassByID", mock.Anything, 999).Return(nil, errors.New("not found"))
			},
			expectError: ErrClassNotFound,
		},
		{
			name:     "duplicate detected by pre-check",
			memberID: 5,
			req:      CreateBookingRequest{ClassID: 10},
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo) {
				cr.On("GetClassByID", mock.Anything, 10).Return(&class.Class{ID: 10, TrainerID: 3}, nil)
				br.On("ExistsForClassAndMember", mock.Anything, 10, 5).Return(true, nil)
			},
			expectError: ErrAlreadyBooked,
		},
		{
			name:     "duplicate detected by unique index",
			memberID: 5,
			req:      CreateBookingRequest{ClassID: 10},
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo) {
				cr.On("GetClassByID", mock.Anything, 10).Return(&class.Class{ID: 10, TrainerID: 3}, nil)
				br.On("ExistsForClassAndMember", mock.Anything, 10, 5).Return(false, nil)
				br.On("Create", mock.Anything, 10, 5, 3, mock.Anything, StatusPending).Return(nil, ErrDuplicateBooking)
			},
			expectError: ErrAlreadyBooked,
		},
		{
			name:     "cancelled is not a valid creation status",
			memberID: 5,
			req:      CreateBookingRequest{ClassID: 10, Status: StatusCancelled},
			setupMocks: func(br *MockBookingRepo, cr *MockClassRepo) {
				cr.On("GetClassByID", mock.Anything, 10).Return(&class.Class{ID: 10, TrainerID: 3}, nil)
				br.On("ExistsForClassAndMember", mock.Anything, 10, 5).Return(false, nil)
			},
			expectError: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			cr := new(MockClassRepo)
			mr := new(MockMemberRepo)

			tt.setupMocks(br, cr)

			service := newTestService(br, cr, mr)
			booking, err := service.CreateBooking(context.Background(), tt.memberID, tt.req)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, booking)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, booking)
			}
			br.AssertExpectations(t)
		})
	}
}

func TestService_CancelBooking(t *testing.T) {
	t.Run("owner can cancel", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		br.On("GetByID", mock.Anything, 1).Return(&Booking{
			ID:       1,
			ClassID:  10,
			MemberID: 5,
			Status:   StatusConfirmed,
		}, nil)
		br.On("Cancel", mock.Anything, 1).Return(nil)
		mr.On("GetByID", mock.Anything, 5).Return(nil, errors.New("not found"))

		service := newTestService(br, cr, mr)
		err := service.CancelBooking(context.Background(), 1, 5, false)

		assert.NoError(t, err)
		br.AssertExpectations(t)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		br.On("GetByID", mock.Anything, 1).Return(&Booking{
			ID:       1,
			MemberID: 5,
		}, nil)

		service := newTestService(br, cr, mr)
		err := service.CancelBooking(context.Background(), 1, 6, false)

		assert.ErrorIs(t, err, ErrNotBookingOwner)
		br.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("staff can cancel any booking", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		br.On("GetByID", mock.Anything, 1).Return(&Booking{
			ID:       1,
			MemberID: 5,
		}, nil)
		br.On("Cancel", mock.Anything, 1).Return(nil)
		mr.On("GetByID", mock.Anything, 5).Return(nil, errors.New("not found"))

		service := newTestService(br, cr, mr)
		err := service.CancelBooking(context.Background(), 1, 0, true)

		assert.NoError(t, err)
	})

	t.Run("already cancelled maps to not found", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockClassRepo)
		mr := new(MockMemberRepo)

		br.On("GetByID", mock.Anything, 1).Return(&Booking{
			ID:       1,
			MemberID: 5,
			Status:   StatusCancelled,
		}, nil)
		br.On("Cancel", mock.Anything, 1).Return(ErrBookingNotFoundOrAlreadyCancelled)

		service := newTestService(br, cr, mr)
		err := service.CancelBooking(context.Background(), 1, 5, false)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
