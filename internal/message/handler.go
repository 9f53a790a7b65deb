package message

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Send godoc
// @Summary      Send a message to another user
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body message.SendMessageRequest true "Message payload"
// @Success      201 {object} message.Message
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /messages [post]
func (h *Handler) Send(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if req.RecipientID == userID {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot message yourself"})
		return
	}

	m, err := h.repo.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to send message"})
		return
	}

	metrics.RecordMessageSent()

	c.JSON(http.StatusCreated, m)
}

// Inbox godoc
// @Summary      List received messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} message.MessageWithNames
// @Failure      401 {object} api.ErrorResponse
// @Router       /messages/inbox [get]
func (h *Handler) Inbox(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	messages, err := h.repo.Inbox(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Sent godoc
// @Summary      List sent messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} message.MessageWithNames
// @Failure      401 {object} api.ErrorResponse
// @Router       /messages/sent [get]
func (h *Handler) Sent(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	messages, err := h.repo.Sent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        messageID path int true "Message ID"
// @Success      200 {object} api.MessageResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /messages/{messageID}/read [post]
func (h *Handler) MarkRead(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	messageID, err := strconv.Atoi(c.Param("messageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid message ID"})
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), messageID, userID); err != nil {
		switch {
		case errors.Is(err, ErrMessageNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Message not found"})
		case errors.Is(err, ErrNotRecipient):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Only the recipient can mark a message read"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to mark message read"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Message marked as read"})
}

// Delete godoc
// @Summary      Delete a message
// @Description  Either participant may delete.
// @Tags         messages
// @Security     BearerAuth
// @Param        messageID path int true "Message ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /messages/{messageID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	messageID, err := strconv.Atoi(c.Param("messageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid message ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), messageID, userID); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete message"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Message deleted"})
}
