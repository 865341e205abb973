package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/service"
	"github.com/maheshrc27/marketing-planner/internal/transfer"
)

type StrategyHandler struct {
	s service.StrategyService
}

func NewStrategyHandler(service service.StrategyService) *StrategyHandler {
	return &StrategyHandler{s: service}
}

// Generate runs the strategy generator only; nothing is stored.
func (h *StrategyHandler) Generate(c *fiber.Ctx) error {
	var body transfer.StrategyGenerate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if strings.TrimSpace(body.BusinessDescription) == "" {
		return badRequest(c, "business_description is required")
	}

	result, err := h.s.Generate(c.Context(), GetCaller(c), planner.StrategyInput{
		BusinessDescription: body.BusinessDescription,
		Feedback:            body.Feedback,
		Competitors:         body.Competitors,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (h *StrategyHandler) Suggestions(c *fiber.Ctx) error {
	var body transfer.Suggestions
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	return c.JSON(h.s.Suggest(c.Context(), GetCaller(c), body.BusinessDescription))
}

func (h *StrategyHandler) Refine(c *fiber.Ctx) error {
	var body transfer.Refine
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	reply, err := h.s.Refine(c.Context(), GetCaller(c), planner.RefineInput{
		BusinessDescription: body.BusinessDescription,
		Matrix:              body.Matrix,
		History:             body.History,
		Message:             body.Message,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(reply)
}

func (h *StrategyHandler) Create(c *fiber.Ctx) error {
	var body transfer.StrategySave
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	st, err := h.s.Create(c.Context(), GetUserID(c), body.Model())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (h *StrategyHandler) List(c *fiber.Ctx) error {
	list, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}

func (h *StrategyHandler) Get(c *fiber.Ctx) error {
	st, err := h.s.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(st)
}

func (h *StrategyHandler) Update(c *fiber.Ctx) error {
	var body transfer.StrategySave
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	st := body.Model()
	st.ID = c.Params("id")
	updated, err := h.s.Update(c.Context(), GetUserID(c), st)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(updated)
}

func (h *StrategyHandler) Remove(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
