package booking

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/member"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    Service
	memberRepo member.Repository
}

func NewHandler(service Service, memberRepo member.Repository) *Handler {
	return &Handler{
		service:    service,
		memberRepo: memberRepo,
	}
}

// resolveMember returns the member the booking acts on behalf of:
// members always act as themselves, staff must name a member.
func (h *Handler) resolveMember(c *gin.Context, explicitMemberID int) (int, bool) {
	if auth.IsStaff(c) {
		if explicitMemberID == 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "member_id is required"})
			return 0, false
		}
		return explicitMemberID, true
	}

	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return 0, false
	}

	m, err := h.memberRepo.GetOrCreateByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load member profile"})
		return 0, false
	}

	return m.ID, true
}

// BookSchedule godoc
// @Summary      Book a seat on a class schedule
// @Description  Takes one seat on the schedule and increments the parent class's enrolled counter.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        scheduleID path int true "Schedule ID"
// @Param        request body booking.BookScheduleRequest false "Member (staff only)"
// @Success      200 {object} class.ClassSchedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/schedules/{scheduleID}/book [post]
func (h *Handler) BookSchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	var req BookScheduleRequest
	_ = c.ShouldBindJSON(&req)

	memberID, ok := h.resolveMember(c, req.MemberID)
	if !ok {
		return
	}

	sched, err := h.service.BookSchedule(c.Request.Context(), scheduleID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
		case errors.Is(err, ErrScheduleFull):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Class is full"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, sched)
}

// CreateBooking godoc
// @Summary      Create a class booking
// @Description  Row-based booking; one booking per class and member.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	memberID, ok := h.resolveMember(c, req.MemberID)
	if !ok {
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrAlreadyBooked):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Member already booked this class"})
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking payload"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings godoc
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Failure      401 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	m, err := h.memberRepo.GetOrCreateByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load member profile"})
		return
	}

	bookings, err := h.service.GetMemberBookings(c.Request.Context(), m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking godoc
// @Summary      Cancel a booking
// @Description  Members cancel their own bookings; staff may cancel any.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	staff := auth.IsStaff(c)

	memberID := 0
	if !staff {
		userID, ok := auth.GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
			return
		}
		m, err := h.memberRepo.GetOrCreateByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load member profile"})
			return
		}
		memberID = m.ID
	}

	if err := h.service.CancelBooking(c.Request.Context(), bookingID, memberID, staff); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Can only cancel own bookings"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// DeleteBooking godoc
// @Summary      Delete a booking
// @Description  Staff-only hard delete.
// @Tags         bookings
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/bookings/{bookingID} [delete]
func (h *Handler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking deleted"})
}

// ListBookingsByClass godoc
// @Summary      List bookings for a class
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/classes/{classID}/bookings [get]
func (h *Handler) ListBookingsByClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	bookings, err := h.service.GetBookingsByClass(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListAllBookings godoc
// @Summary      List all bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.BookingWithDetails
// @Failure      500 {object} api.ErrorResponse
// @Router       /staff/bookings [get]
func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.service.GetAllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
