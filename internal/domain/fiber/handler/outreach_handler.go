package handler

import (
	"time"

	"career-autopilot/internal/dto"
	"career-autopilot/internal/middleware"
	"career-autopilot/internal/model"
	"career-autopilot/internal/usecase"
	"career-autopilot/internal/util"
	"github.com/gofiber/fiber/v2"
)

type OutreachHandler struct {
	uc *usecase.OutreachUsecase
}

func NewOutreachHandler(uc *usecase.OutreachUsecase) *OutreachHandler {
	return &OutreachHandler{uc: uc}
}

func (h *OutreachHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/outreach/plan", middleware.RateLimiter(10, 10*time.Second), h.Plan)
	app.Post("/outreach/response", h.RecordResponse)
	app.Get("/outreach/:job_id", h.Get)
	app.Post("/followups/schedule", h.ScheduleFollowups)
	app.Post("/contacts/add", h.AddContact)
	app.Get("/contacts/list", h.ListContacts)
}

func (h *OutreachHandler) Plan(c *fiber.Ctx) error {
	var req dto.OutreachPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	plan, err := h.uc.Plan(c.Context(), req.JobID)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to plan outreach", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Outreach plan generated",
		Data:    plan,
	})
}

func (h *OutreachHandler) Get(c *fiber.Ctx) error {
	plan, err := h.uc.GetPlan(c.Params("job_id"))
	if err != nil {
		return util.DomainErrorResponse(c, "failed to get outreach plan", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Outreach plan found",
		Data:    plan,
	})
}

func (h *OutreachHandler) RecordResponse(c *fiber.Ctx) error {
	var req dto.OutreachResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if err := h.uc.RecordResponse(req.JobID, req.ContactName); err != nil {
		return util.DomainErrorResponse(c, "failed to record response", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Response recorded",
	})
}

func (h *OutreachHandler) ScheduleFollowups(c *fiber.Ctx) error {
	var req dto.FollowupsScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.uc.ScheduleFollowups(c.Context(), req.JobID)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to schedule follow-ups", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Follow-ups scheduled",
		Data:    result,
	})
}

func (h *OutreachHandler) AddContact(c *fiber.Ctx) error {
	var req dto.ContactCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	contact := &model.Contact{
		Name:       req.Name,
		Role:       req.Role,
		Company:    req.Company,
		Persona:    req.Persona,
		Channel:    req.Channel,
		ProfileURL: req.ProfileURL,
		Email:      req.Email,
		Track:      req.Track,
	}
	if req.LastActiveAt != nil {
		contact.LastActiveAt = *req.LastActiveAt
	}

	if err := h.uc.AddContact(contact); err != nil {
		return util.DomainErrorResponse(c, "failed to add contact", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Contact added",
		Data:    contact,
	})
}

func (h *OutreachHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.uc.ListContacts()
	if err != nil {
		return util.DomainErrorResponse(c, "failed to list contacts", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Contacts listed",
		Data:    contacts,
	})
}
