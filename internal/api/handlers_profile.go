package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateNotifications(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	input := notificationsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.authService.UpdateNotificationSettings(user.ID, services.NotificationSettingsInput{
		TelegramChatID:     input.TelegramChatID,
		RemindersEnabled:   input.RemindersEnabled,
		ReminderDaysBefore: input.ReminderDaysBefore,
		Language:           input.Language,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update notifications")
	}
	return c.JSON(updated)
}

// SendTestNotification delivers a fixed message to the user's chat so the
// chat id can be verified before reminders are enabled.
func (handler *Handler) SendTestNotification(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}
	if handler.notifier == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "notifications unavailable")
	}
	if user.TelegramChatID == nil {
		return apiError(c, fiber.StatusBadRequest, services.ErrTelegramChatRequired.Error())
	}

	text := handler.i18n.Translate(user.Language, "reminder.test")
	if err := handler.notifier.Send(c.UserContext(), *user.TelegramChatID, text); err != nil {
		handler.log.WithError(err).WithField("user_id", user.ID).Warn("test notification failed")
		return apiError(c, fiber.StatusBadGateway, "failed to send notification")
	}
	return c.JSON(fiber.Map{"ok": true})
}
