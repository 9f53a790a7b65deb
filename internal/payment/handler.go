package payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreatePayment godoc
// @Summary      Create a pending payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.CreatePaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// MarkPaid godoc
// @Summary      Settle a pending payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        paymentID path int true "Payment ID"
// @Success      200 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /staff/payments/{paymentID}/pay [post]
func (h *Handler) MarkPaid(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	p, err := h.service.MarkPaid(c.Request.Context(), paymentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
		case errors.Is(err, ErrPaymentAlreadyPaid):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Payment already paid"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to mark payment paid"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        paymentID path int true "Payment ID"
// @Success      200 {object} payment.Payment
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/payments/{paymentID} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	p, err := h.service.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListMemberPayments godoc
// @Summary      List payments for a member
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/members/{memberID}/payments [get]
func (h *Handler) ListMemberPayments(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	payments, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListAllPayments godoc
// @Summary      List all payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} payment.Payment
// @Failure      500 {object} api.ErrorResponse
// @Router       /staff/payments [get]
func (h *Handler) ListAllPayments(c *gin.Context) {
	payments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// Earnings godoc
// @Summary      Trainer earnings report
// @Description  Sums paid class and session payments for a trainer over an inclusive date range. Defaults to the last 14 days. Admins may query any trainer with trainer_id.
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD, inclusive)"
// @Param        trainer_id query int false "Trainer ID (admin only)"
// @Success      200 {object} payment.EarningsReport
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /payments/earnings [get]
func (h *Handler) Earnings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	trainerID := userID
	if raw := c.Query("trainer_id"); raw != "" {
		role, _ := auth.GetUserRole(c)
		if role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only admins can query other trainers"})
			return
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
			return
		}
		trainerID = id
	}

	start, end, err := parseEarningsRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Dates must be in YYYY-MM-DD format"})
		return
	}

	report, err := h.service.GetTrainerEarnings(c.Request.Context(), trainerID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute earnings"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseEarningsRange parses optional YYYY-MM-DD bounds. The end date is
// pushed to the last instant of that day so the range stays inclusive.
func parseEarningsRange(startRaw, endRaw string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if startRaw != "" {
		t, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}

	if endRaw != "" {
		t, err := time.Parse("2006-01-02", endRaw)
		if err != nil {
			return nil, nil, err
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	return start, end, nil
}
