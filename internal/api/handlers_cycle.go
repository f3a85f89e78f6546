package api

import (
	"bytes"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

const calendarFeedFileName = "wellnest-cycle.ics"

func (handler *Handler) GetCycleSettings(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	settings, err := handler.cycleService.Settings(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load cycle settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) SaveCycleSettings(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	input := cycleSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.cycleService.SaveSettings(user.ID, services.CycleSettingsInput{
		StartDate:       input.StartDate,
		CycleLength:     input.CycleLength,
		MenstrualLength: input.MenstrualLength,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save cycle settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) DeleteCycleSettings(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	if err := handler.cycleService.DeleteSettings(user.ID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete cycle settings")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetCyclePhase reports the phase of ?date= (default today). A date before the
// configured period start has no phase and asks the client to redo the setup.
func (handler *Handler) GetCyclePhase(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	day, err := handler.dayParam(c.Query("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}

	phase, err := handler.cycleService.Phase(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to resolve phase")
	}

	info, ok := phase.Get()
	if !ok {
		return c.JSON(fiber.Map{
			"date":           services.FormatDay(day),
			"phase":          nil,
			"setup_required": true,
		})
	}
	return c.JSON(fiber.Map{
		"date":           services.FormatDay(day),
		"phase":          info,
		"phase_label":    handler.i18n.Translate(user.Language, "phase."+string(info.Phase)),
		"setup_required": false,
	})
}

func (handler *Handler) GetCyclePredictions(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	predictions, err := handler.cycleService.Predictions(user.ID, handler.today())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to predict cycle")
	}
	return c.JSON(predictions)
}

func (handler *Handler) GetCycleCalendar(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	today := handler.today()
	month, err := parseMonthParam(c.Query("month"), today)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid month")
	}

	days, err := handler.cycleService.MonthOverlay(user.ID, month, today)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build calendar")
	}
	return c.JSON(fiber.Map{
		"month": month.Format("2006-01"),
		"days":  days,
	})
}

func (handler *Handler) GetCycleCalendarFeed(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	language := user.Language
	if requested := strings.TrimSpace(c.Query("lang")); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
	}
	cycles := c.QueryInt("cycles", services.DefaultFeedCycles)

	calendar, err := handler.cycleService.CalendarFeed(user.ID, language, handler.today(), cycles, handler.now().UTC())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build calendar feed")
	}

	var output bytes.Buffer
	if err := ical.NewEncoder(&output).Encode(calendar); err != nil {
		handler.log.WithError(err).WithField("user_id", user.ID).Error("encode calendar feed")
		return apiError(c, fiber.StatusInternalServerError, "failed to encode calendar feed")
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+calendarFeedFileName+`"`)
	return c.Send(output.Bytes())
}
