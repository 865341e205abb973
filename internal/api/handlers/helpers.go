package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketing-planner/internal/extract"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/service"
	"go.uber.org/zap"
)

const ProjectHeader = "X-Project-ID"

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// GetCaller builds the explicit identity passed into the planner.
func GetCaller(c *fiber.Ctx) planner.Caller {
	return planner.Caller{
		UserID:    GetUserID(c),
		ProjectID: c.Get(ProjectHeader),
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// errorResponse maps service and pipeline errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		failure *planner.StrategyFailure
		genErr  *planner.GenerationError
		stepErr *planner.StepError
		upErr   *llm.UpstreamError
		parse   *extract.ParseError
	)

	switch {
	case errors.As(err, &failure):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "strategy generation failed",
			"attempts": failure.Attempts,
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidEngagement),
		errors.Is(err, service.ErrApiKeyLimit):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, llm.ErrAPIKeyNotFound),
		errors.As(err, &genErr),
		errors.As(err, &stepErr),
		errors.As(err, &upErr),
		errors.As(err, &parse):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	zap.L().Error("request failed",
		zap.String("path", c.Path()),
		zap.String("user_id", GetUserID(c)),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "something went wrong",
	})
}

// parseDate accepts a calendar day or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}
