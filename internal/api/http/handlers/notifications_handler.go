package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-portal/internal/api/dto"
	"github.com/spec-kit/job-portal/internal/service"
)

// NotificationsHandler exposes the per-account notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	items, unread, err := h.notifications.ListForAccount(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"notifications": dto.NewNotificationResponses(items),
			"unreadCount":   unread,
		},
	})
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Context(), claims.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	claims, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllRead(c.Context(), claims.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}
