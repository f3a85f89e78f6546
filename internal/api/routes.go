package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("/notifications", handler.UpdateNotifications)
	profile.Post("/notifications/test", handler.SendTestNotification)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/settings", handler.GetCycleSettings)
	cycle.Put("/settings", handler.SaveCycleSettings)
	cycle.Delete("/settings", handler.DeleteCycleSettings)
	cycle.Get("/phase", handler.GetCyclePhase)
	cycle.Get("/predictions", handler.GetCyclePredictions)
	cycle.Get("/calendar", handler.GetCycleCalendar)
	cycle.Get("/calendar.ics", handler.GetCycleCalendarFeed)

	calculators := api.Group("/calculators", handler.AuthRequired)
	calculators.Post("/macros", handler.CalculateMacros)
	calculators.Post("/water", handler.CalculateWater)
	calculators.Post("/body-fat", handler.CalculateBodyFat)
	calculators.Post("/fasting", handler.CalculateFasting)

	food := api.Group("/food", handler.AuthRequired)
	food.Get("", handler.GetFoodDay)
	food.Get("/summary", handler.GetFoodSummary)
	food.Post("", handler.CreateFoodEntry)
	food.Put("/:id", handler.UpdateFoodEntry)
	food.Delete("/:id", handler.DeleteFoodEntry)

	routines := api.Group("/routines", handler.AuthRequired)
	routines.Get("/:date", handler.GetRoutine)
	routines.Put("/:date", handler.SaveRoutine)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.GetGoals)
	goals.Post("", handler.CreateGoal)
	goals.Delete("/:id", handler.DeleteGoal)
	goals.Get("/:id/progress", handler.GetGoalProgress)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
