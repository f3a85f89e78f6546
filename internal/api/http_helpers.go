package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/cycle"
	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/services"
)

type errorStatus struct {
	err    error
	status int
}

// serviceErrorStatuses maps service sentinels to response codes. Anything
// not listed is an internal error.
var serviceErrorStatuses = []errorStatus{
	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrCycleSettingsNotFound, fiber.StatusNotFound},
	{services.ErrFoodEntryNotFound, fiber.StatusNotFound},
	{services.ErrRoutineNotFound, fiber.StatusNotFound},
	{services.ErrGoalNotFound, fiber.StatusNotFound},
	{services.ErrEmailAlreadyRegistered, fiber.StatusConflict},
	{cycle.ErrInvalidConfig, fiber.StatusUnprocessableEntity},
	{services.ErrAuthCredentialsInvalid, fiber.StatusBadRequest},
	{services.ErrWeakPassword, fiber.StatusBadRequest},
	{services.ErrPasswordTooLong, fiber.StatusBadRequest},
	{services.ErrDisplayNameTooLong, fiber.StatusBadRequest},
	{services.ErrUnsupportedLanguage, fiber.StatusBadRequest},
	{services.ErrReminderDaysOutOfRange, fiber.StatusBadRequest},
	{services.ErrTelegramChatRequired, fiber.StatusBadRequest},
	{services.ErrInvalidDate, fiber.StatusBadRequest},
	{services.ErrCycleLengthOutOfRange, fiber.StatusBadRequest},
	{services.ErrMenstrualLengthOutOfRange, fiber.StatusBadRequest},
	{services.ErrCycleStartDateInvalid, fiber.StatusBadRequest},
	{services.ErrCycleCountOutOfRange, fiber.StatusBadRequest},
	{services.ErrFoodNameInvalid, fiber.StatusBadRequest},
	{services.ErrFoodMealInvalid, fiber.StatusBadRequest},
	{services.ErrFoodServingsInvalid, fiber.StatusBadRequest},
	{services.ErrFoodNutrientsInvalid, fiber.StatusBadRequest},
	{services.ErrSummaryRangeInvalid, fiber.StatusBadRequest},
	{services.ErrRoutineValueOutOfRange, fiber.StatusBadRequest},
	{services.ErrRoutineNotesTooLong, fiber.StatusBadRequest},
	{services.ErrGoalTitleInvalid, fiber.StatusBadRequest},
	{services.ErrGoalMetricInvalid, fiber.StatusBadRequest},
	{services.ErrGoalPeriodInvalid, fiber.StatusBadRequest},
	{services.ErrGoalTargetInvalid, fiber.StatusBadRequest},
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, known := range serviceErrorStatuses {
		if errors.Is(err, known.err) {
			return apiError(c, known.status, known.err.Error())
		}
	}
	handler.log.WithError(err).WithField("path", c.Path()).Error(fallback)
	return apiError(c, fiber.StatusInternalServerError, fallback)
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentUserOrUnauthorized(c *fiber.Ctx) (*models.User, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, true, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return user, false, nil
}

// dayParam parses an optional YYYY-MM-DD value, defaulting to today.
func (handler *Handler) dayParam(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return handler.today(), nil
	}
	return services.ParseDay(raw)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseMonthParam(raw string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Date(fallback.Year(), fallback.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	month, err := time.Parse("2006-01", trimmed)
	if err != nil {
		return time.Time{}, services.ErrInvalidDate
	}
	return month, nil
}
