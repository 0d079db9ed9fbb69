package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/domain"
	"github.com/spec-kit/job-portal/internal/service"
	apperrors "github.com/spec-kit/job-portal/pkg/util"
)

// ChatHandler exposes conversation and message endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// StartConversation handles POST /api/chat/conversations. Only candidates
// open threads; employers reply in existing ones.
func (h *ChatHandler) StartConversation(c *fiber.Ctx) error {
	claims, err := requireRole(c, domain.RoleCandidate)
	if err != nil {
		return err
	}

	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JobID == "" {
		return apperrors.NewValidationError("jobId required", nil)
	}

	conversation, err := h.chat.StartConversation(c.Context(), claims.UserID, req.JobID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewConversationResponse(conversation)})
}

// ListConversations handles GET /api/chat/conversations.
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	conversations, err := h.chat.ListConversations(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConversationResponses(conversations)})
}

// ListMessages handles GET /api/chat/conversations/:id/messages.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	messages, err := h.chat.ListMessages(c.Context(), claims.UserID, c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageResponses(messages)})
}

// SendMessage handles POST /api/chat/conversations/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.chat.SendMessage(c.Context(), claims.UserID, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(message)})
}
