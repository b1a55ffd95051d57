package server

import (
	"strconv"
	"strings"
	"time"

	"thaichat/internal/models"
	"thaichat/internal/observability"

	"github.com/gofiber/fiber/v2"
)

const defaultMessageLimit = 50

// messageWithNote decorates a message with the confirmation text the
// update endpoint returns alongside the record.
type messageWithNote struct {
	models.Message
	Note string `json:"message"`
}

// GetMessages handles GET /messages?limit=N
func (s *Server) GetMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultMessageLimit)
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	messages, err := s.messageRepo.List(c.Context(), limit)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(messages)
}

// CreateMessage handles POST /messages
func (s *Server) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Content        string  `json:"content"`
		Username       string  `json:"username"`
		UserID         int64   `json:"userId"`
		AttachmentURL  *string `json:"attachmentUrl"`
		AttachmentType *string `json:"attachmentType"`
		AttachmentName *string `json:"attachmentName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	if req.Username == "" || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username and userId are required", nil))
	}

	content := strings.TrimSpace(req.Content)
	hasURL := req.AttachmentURL != nil && *req.AttachmentURL != ""
	hasType := req.AttachmentType != nil && *req.AttachmentType != ""

	// A message carries trimmed non-empty content, an attachment, or both.
	// The attachment triple is all-or-nothing: url and type together.
	if content == "" && !hasURL {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message content or attachment is required", nil))
	}
	if hasURL != hasType {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("attachmentUrl and attachmentType must be provided together", nil))
	}
	if hasType && !models.ValidAttachmentType(*req.AttachmentType) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("attachmentType must be one of image, file, gif", nil))
	}

	message := &models.Message{
		Content:   content,
		Username:  req.Username,
		UserID:    req.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if hasURL {
		message.AttachmentURL = req.AttachmentURL
		message.AttachmentType = req.AttachmentType
		message.AttachmentName = req.AttachmentName
	}

	if err := s.messageRepo.Create(c.Context(), message); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	observability.MessagesTotal.WithLabelValues("create").Inc()

	return c.Status(fiber.StatusCreated).JSON(message)
}

// UpdateMessage handles PUT /messages/:id
func (s *Server) UpdateMessage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid message id", nil))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Message content is required", nil))
	}

	message, err := s.messageRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	now := time.Now().UTC()
	message.Content = content
	message.UpdatedAt = &now

	if err := s.messageRepo.Update(c.Context(), message); err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	observability.MessagesTotal.WithLabelValues("update").Inc()

	return c.JSON(messageWithNote{
		Message: *message,
		Note:    "Message updated successfully",
	})
}

// DeleteMessage handles DELETE /messages/:id?userId=N. Only the message
// owner may delete; the requesting user comes from the query string.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid message id", nil))
	}

	userIDParam := c.Query("userId")
	if userIDParam == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId query parameter is required", nil))
	}
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid userId", nil))
	}

	message, err := s.messageRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	if message.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own messages"))
	}

	if err := s.messageRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	observability.MessagesTotal.WithLabelValues("delete").Inc()

	return c.SendStatus(fiber.StatusNoContent)
}
