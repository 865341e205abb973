package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/service"
	"github.com/maheshrc27/marketing-planner/internal/transfer"
)

type CalendarHandler struct {
	s service.CalendarService
	m service.MediaService
}

func NewCalendarHandler(service service.CalendarService, media service.MediaService) *CalendarHandler {
	return &CalendarHandler{s: service, m: media}
}

func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	var body transfer.CalendarCreate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}

	req := service.CalendarRequest{
		StrategyID: body.StrategyID,
		OutlineID:  body.OutlineID,
		Name:       body.Name,
		Prefs:      body.Prefs,
	}
	if body.StartDate != "" {
		start, err := parseDate(body.StartDate)
		if err != nil {
			return badRequest(c, "start_date must look like 2006-01-02")
		}
		req.Start = start
	}

	caller := GetCaller(c)
	if req.StrategyID == "" {
		req.StrategyID = caller.ProjectID
	}

	detail, err := h.s.Create(c.Context(), caller, req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *CalendarHandler) List(c *fiber.Ctx) error {
	list, err := h.s.List(c.Context(), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	if list == nil {
		list = []*models.Calendar{}
	}
	return c.JSON(list)
}

func (h *CalendarHandler) Get(c *fiber.Ctx) error {
	detail, err := h.s.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(detail)
}

func (h *CalendarHandler) Remove(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CalendarHandler) AddPost(c *fiber.Ctx) error {
	var body transfer.PostCreate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	date, err := parseDate(body.ScheduledDate)
	if err != nil {
		return badRequest(c, "scheduled_date must be RFC 3339 or 2006-01-02")
	}

	post, err := h.s.AddPost(c.Context(), GetUserID(c), c.Params("id"), &models.CalendarPost{
		Title:          body.Title,
		Content:        body.Content,
		PostType:       body.PostType,
		Channel:        strings.ToLower(body.Channel),
		TargetAudience: body.TargetAudience,
		ScheduledDate:  date,
		Status:         body.Status,
		Engagement:     body.Engagement,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CalendarHandler) UpdateStatus(c *fiber.Ctx) error {
	var body transfer.StatusUpdate
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), body.Status); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) BulkStatus(c *fiber.Ctx) error {
	var body transfer.BulkStatus
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.BulkUpdateStatus(c.Context(), GetUserID(c), body.IDs, body.Status); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) BulkDelete(c *fiber.Ctx) error {
	var body transfer.BulkDelete
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.BulkRemove(c.Context(), GetUserID(c), body.IDs); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) Swap(c *fiber.Ctx) error {
	var body transfer.Swap
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.Swap(c.Context(), GetUserID(c), body.FirstID, body.SecondID); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) UpdateEngagement(c *fiber.Ctx) error {
	var body models.Engagement
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.UpdateEngagement(c.Context(), GetUserID(c), c.Params("id"), body); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CalendarHandler) Engagement(c *fiber.Ctx) error {
	summary, err := h.s.Engagement(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(summary)
}

func (h *CalendarHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "Unable to parse form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return badRequest(c, "No files selected")
	}

	uploads, err := service.ReadUploads(files)
	if err != nil {
		return errorResponse(c, err)
	}

	assets, err := h.m.Attach(c.Context(), GetUserID(c), c.Params("id"), uploads)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assets)
}

func (h *CalendarHandler) ListMedia(c *fiber.Ctx) error {
	assets, err := h.m.List(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(assets)
}
