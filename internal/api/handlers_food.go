package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) GetFoodDay(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	day, err := handler.dayParam(c.Query("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	foodDay, err := handler.nutritionService.Day(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load food entries")
	}
	return c.JSON(foodDay)
}

// GetFoodSummary defaults to the seven days ending today.
func (handler *Handler) GetFoodSummary(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	to, err := handler.dayParam(c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	from := to.AddDate(0, 0, -6)
	if raw := c.Query("from"); raw != "" {
		from, err = services.ParseDay(raw)
		if err != nil {
			return handler.respondServiceError(c, err, "invalid date")
		}
	}

	summary, err := handler.nutritionService.Summary(user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to summarize food entries")
	}
	return c.JSON(summary)
}

func (handler *Handler) CreateFoodEntry(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	input, ok := handler.parseFoodEntryInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	entry, err := handler.nutritionService.AddEntry(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to add food entry")
	}
	handler.refreshCalorieGoals(user.ID, entry.Date)
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateFoodEntry(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	input, ok := handler.parseFoodEntryInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	previous, err := handler.nutritionService.Entry(user.ID, entryID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load food entry")
	}
	entry, err := handler.nutritionService.UpdateEntry(user.ID, entryID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update food entry")
	}

	handler.refreshCalorieGoals(user.ID, entry.Date)
	if !previous.Date.Equal(entry.Date) {
		handler.refreshCalorieGoals(user.ID, previous.Date)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteFoodEntry(c *fiber.Ctx) error {
	user, handled, err := currentUserOrUnauthorized(c)
	if handled {
		return err
	}

	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	entry, err := handler.nutritionService.Entry(user.ID, entryID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load food entry")
	}
	if err := handler.nutritionService.DeleteEntry(user.ID, entryID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete food entry")
	}
	handler.refreshCalorieGoals(user.ID, entry.Date)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) parseFoodEntryInput(c *fiber.Ctx) (services.FoodEntryInput, bool) {
	input := foodEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return services.FoodEntryInput{}, false
	}
	if input.Date == "" {
		input.Date = services.FormatDay(handler.today())
	}
	return services.FoodEntryInput{
		Date:     input.Date,
		Meal:     input.Meal,
		Name:     input.Name,
		Servings: input.Servings,
		Calories: input.Calories,
		ProteinG: input.ProteinG,
		CarbsG:   input.CarbsG,
		FatG:     input.FatG,
		FiberG:   input.FiberG,
	}, true
}

// refreshCalorieGoals keeps calorie goals in step with food changes. The food
// change is already stored, so a failure here is only logged.
func (handler *Handler) refreshCalorieGoals(userID uint, day time.Time) {
	if _, err := handler.routineService.RefreshGoalProgress(userID, day, handler.now()); err != nil {
		handler.log.WithError(err).WithField("user_id", userID).Warn("refresh goal progress after food change")
	}
}
