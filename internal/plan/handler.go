package plan

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/email"
	"gymdesk/internal/member"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo         *Repository
	memberRepo   member.Repository
	emailService *email.Service
}

func NewHandler(repo *Repository, memberRepo member.Repository, emailService *email.Service) *Handler {
	return &Handler{
		repo:         repo,
		memberRepo:   memberRepo,
		emailService: emailService,
	}
}

// CreatePlan godoc
// @Summary      Create a membership plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body plan.CreatePlanRequest true "Plan payload"
// @Success      201 {object} plan.MembershipPlan
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/plans [post]
func (h *Handler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.repo.CreatePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListPlans godoc
// @Summary      List membership plans
// @Tags         plans
// @Produce      json
// @Success      200 {array} plan.MembershipPlan
// @Failure      500 {object} api.ErrorResponse
// @Router       /plans [get]
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.repo.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary      Get a membership plan
// @Tags         plans
// @Produce      json
// @Param        planID path int true "Plan ID"
// @Success      200 {object} plan.MembershipPlan
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{planID} [get]
func (h *Handler) GetPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	p, err := h.repo.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch plan"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePlan godoc
// @Summary      Delete a membership plan
// @Tags         plans
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/plans/{planID} [delete]
func (h *Handler) DeletePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	if err := h.repo.DeletePlan(c.Request.Context(), planID); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan deleted"})
}

// Purchase godoc
// @Summary      Purchase a membership
// @Description  Members buy for themselves; staff may name a member. Records the payment and the membership together.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        planID path int true "Plan ID"
// @Param        request body plan.PurchaseRequest false "Purchase payload"
// @Success      201 {object} plan.Membership
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /plans/{planID}/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	var req PurchaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
	}

	memberID := req.MemberID
	if auth.IsStaff(c) {
		if memberID == 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "member_id is required"})
			return
		}
	} else {
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

	p, err := h.repo.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch plan"})
		return
	}

	ms, err := h.repo.PurchaseMembership(c.Request.Context(), memberID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to purchase membership"})
		return
	}

	metrics.RecordMembershipSold(p.Name)

	if m, err := h.memberRepo.GetByID(c.Request.Context(), memberID); err == nil {
		h.emailService.SendMembershipReceipt(c.Request.Context(), m.UserEmail, m.UserName, p.Name, ms.ValidUntil)
	}

	c.JSON(http.StatusCreated, ms)
}

// ListMyMemberships godoc
// @Summary      List own memberships
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} plan.MembershipWithPlan
// @Failure      401 {object} api.ErrorResponse
// @Router       /memberships [get]
func (h *Handler) ListMyMemberships(c *gin.Context) {
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

	memberships, err := h.repo.ListMembershipsByMember(c.Request.Context(), m.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// ListMemberMemberships godoc
// @Summary      List memberships for a member
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} plan.MembershipWithPlan
// @Failure      400 {object} api.ErrorResponse
// @Router       /staff/members/{memberID}/memberships [get]
func (h *Handler) ListMemberMemberships(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	memberships, err := h.repo.ListMembershipsByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}
