package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/service"
	"github.com/maheshrc27/marketing-planner/internal/transfer"
)

type OutlineHandler struct {
	s service.OutlineService
}

func NewOutlineHandler(service service.OutlineService) *OutlineHandler {
	return &OutlineHandler{s: service}
}

func (h *OutlineHandler) Themes(c *fiber.Ctx) error {
	var body transfer.ThemesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Unable to parse json")
		}
	}

	themes, err := h.s.Themes(c.Context(), GetCaller(c), c.Params("id"), body.Aesthetic, body.Count)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"themes": themes})
}

func (h *OutlineHandler) Generate(c *fiber.Ctx) error {
	var body transfer.OutlineGenerate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	states, err := h.s.Generate(c.Context(), GetCaller(c), c.Params("id"), body.Aesthetic, body.Themes)
	if err != nil && states == nil {
		return errorResponse(c, err)
	}
	return c.JSON(runResponse(states))
}

func (h *OutlineHandler) Week(c *fiber.Ctx) error {
	var body transfer.OutlineWeek
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	states, err := h.s.Week(c.Context(), GetCaller(c), c.Params("id"), service.WeekRequest{
		Aesthetic: body.Aesthetic,
		Themes:    body.Themes,
		States:    body.States,
		Week:      body.Week,
		Feedback:  body.Feedback,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(runResponse(states))
}

func (h *OutlineHandler) Save(c *fiber.Ctx) error {
	var body transfer.OutlineSave
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	outline, err := h.s.Save(c.Context(), GetUserID(c), c.Params("id"), body.Outline)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outline)
}

func (h *OutlineHandler) Current(c *fiber.Ctx) error {
	outline, err := h.s.Current(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(outline)
}

func (h *OutlineHandler) Remove(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func runResponse(states []planner.WeekState) transfer.OutlineRunResponse {
	done := len(states) > 0
	for _, s := range states {
		if s.Status != planner.WeekReady {
			done = false
		}
	}
	return transfer.OutlineRunResponse{States: states, Done: done}
}
