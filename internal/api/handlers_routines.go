package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) GetRoutine(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	routine, err := handler.routineService.Routine(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load routine")
	}
	return c.JSON(routine)
}

func (handler *Handler) SaveRoutine(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	input := routineInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.routineService.SaveDailyRoutine(user.ID, day, services.RoutineInput{
		WaterML:        input.WaterML,
		Steps:          input.Steps,
		SleepMinutes:   input.SleepMinutes,
		WorkoutMinutes: input.WorkoutMinutes,
		Notes:          input.Notes,
	}, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save routine")
	}
	return c.JSON(result)
}
