package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) GetGoals(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	goals, err := handler.routineService.Goals(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load goals")
	}
	return c.JSON(goals)
}

// CreateGoal also computes the progress of the current period so a goal that
// is already met shows as achieved right away.
func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	input := goalInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	goal, err := handler.routineService.CreateGoal(user.ID, services.GoalInput{
		Title:  input.Title,
		Metric: input.Metric,
		Period: input.Period,
		Target: input.Target,
	}, now)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create goal")
	}
	if _, err := handler.routineService.RefreshGoalProgress(user.ID, handler.today(), now); err != nil {
		handler.log.WithError(err).WithField("goal_id", goal.ID).Warn("initial goal progress")
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := handler.routineService.DeleteGoal(user.ID, goalID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete goal")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) GetGoalProgress(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	progress, err := handler.routineService.GoalProgress(user.ID, goalID, c.QueryInt("limit", 0))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load goal progress")
	}
	return c.JSON(progress)
}
