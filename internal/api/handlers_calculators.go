package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/calc"
)

// Calculator errors are all input validation failures.
func calculatorResponse[T any](c *fiber.Ctx, result T, err error) error {
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(result)
}

func (handler *Handler) CalculateMacros(c *fiber.Ctx) error {
	input := calc.MacroInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	result, err := calc.Macros(input)
	return calculatorResponse(c, result, err)
}

func (handler *Handler) CalculateWater(c *fiber.Ctx) error {
	input := calc.WaterInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	result, err := calc.WaterIntake(input)
	return calculatorResponse(c, result, err)
}

func (handler *Handler) CalculateBodyFat(c *fiber.Ctx) error {
	input := calc.BodyFatInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	result, err := calc.BodyFat(input)
	return calculatorResponse(c, result, err)
}

// CalculateFasting treats a missing started_at as a fast starting now.
func (handler *Handler) CalculateFasting(c *fiber.Ctx) error {
	input := fastingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	startedAt := now
	if input.StartedAt != nil {
		startedAt = *input.StartedAt
	}
	result, err := calc.Fasting(calc.FastingInput{
		Protocol:    input.Protocol,
		CustomHours: input.CustomHours,
		StartedAt:   startedAt,
	}, now)
	return calculatorResponse(c, result, err)
}
