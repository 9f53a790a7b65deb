package session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/member"

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

// CreateSession godoc
// @Summary      Schedule a personal training session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body session.CreateSessionRequest true "Session payload"
// @Success      201 {object} session.TrainingSession
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start_time must be RFC3339"})
		return
	}

	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "end_time must be RFC3339"})
		return
	}

	if !end.After(start) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "end_time must be after start_time"})
		return
	}

	s, err := h.repo.Create(c.Request.Context(), req.TrainerID, req.MemberID, req.GymID, start, end, req.PriceCents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, s)
}

// GetSession godoc
// @Summary      Get a training session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path int true "Session ID"
// @Success      200 {object} session.TrainingSession
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	s, err := h.repo.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// ListMySessions godoc
// @Summary      List own training sessions
// @Description  Trainers see the sessions they run, members see the sessions they booked.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} session.TrainingSession
// @Failure      401 {object} api.ErrorResponse
// @Router       /sessions [get]
func (h *Handler) ListMySessions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	role, _ := auth.GetUserRole(c)
	if role == auth.RoleTrainer {
		sessions, err := h.repo.ListByTrainer(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
		return
	}

	m, err := h.memberRepo.GetOrCreateByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load member profile"})
		return
	}

	sessions, err := h.repo.ListByMember(c.Request.Context(), m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ListTrainerSessions godoc
// @Summary      List sessions for a trainer
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {array} session.TrainingSession
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/trainers/{trainerID}/sessions [get]
func (h *Handler) ListTrainerSessions(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	sessions, err := h.repo.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpdateSessionStatus godoc
// @Summary      Update session status
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path int true "Session ID"
// @Param        request body session.UpdateSessionStatusRequest true "New status"
// @Success      200 {object} session.TrainingSession
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/sessions/{sessionID}/status [put]
func (h *Handler) UpdateSessionStatus(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	s, err := h.repo.UpdateStatus(c.Request.Context(), sessionID, req.Status)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update session"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// DeleteSession godoc
// @Summary      Delete a training session
// @Tags         sessions
// @Security     BearerAuth
// @Param        sessionID path int true "Session ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /staff/sessions/{sessionID} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete session"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Session deleted"})
}
