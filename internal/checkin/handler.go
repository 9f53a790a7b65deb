package checkin

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo       *Repository
	memberRepo member.Repository
}

func NewHandler(repo *Repository, memberRepo member.Repository) *Handler {
	return &Handler{
		repo:       repo,
		memberRepo: memberRepo,
	}
}

// CheckIn godoc
// @Summary      Register a gym check-in
// @Description  Front-desk check-in by member ID.
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkin.CreateCheckInRequest true "Check-in payload"
// @Success      201 {object} checkin.CheckIn
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/checkins [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CreateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ci, err := h.repo.Create(c.Request.Context(), req.MemberID, req.GymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		return
	}

	metrics.RecordCheckIn("desk")

	c.JSON(http.StatusCreated, ci)
}

// CheckInByCode godoc
// @Summary      Register a check-in by member code
// @Description  Scans the member's check-in code (from their QR) at the door.
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Member check-in code"
// @Param        request body checkin.CodeCheckInRequest true "Gym"
// @Success      201 {object} checkin.CheckIn
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/checkins/code/{code} [post]
func (h *Handler) CheckInByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Check-in code is required"})
		return
	}

	var req CodeCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.memberRepo.GetByCheckinCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Unknown check-in code"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to look up member"})
		return
	}

	ci, err := h.repo.Create(c.Request.Context(), m.ID, req.GymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to check in"})
		return
	}

	metrics.RecordCheckIn("code")

	c.JSON(http.StatusCreated, ci)
}

// ListMyCheckIns godoc
// @Summary      List own check-in history
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} checkin.CheckIn
// @Failure      401 {object} api.ErrorResponse
// @Router       /checkins [get]
func (h *Handler) ListMyCheckIns(c *gin.Context) {
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

	checkins, err := h.repo.ListByMember(c.Request.Context(), m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, checkins)
}

// ListGymCheckIns godoc
// @Summary      List recent check-ins at a gym
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Param        limit query int false "Max rows (default 50)"
// @Success      200 {array} checkin.CheckInWithMember
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/gyms/{gymID}/checkins [get]
func (h *Handler) ListGymCheckIns(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	checkins, err := h.repo.ListByGym(c.Request.Context(), gymID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, checkins)
}
