package handler

import (
	"career-autopilot/internal/dto"
	"career-autopilot/internal/usecase"
	"career-autopilot/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SummaryHandler struct {
	uc        *usecase.SummaryUsecase
	profileUC *usecase.ProfileUsecase
}

func NewSummaryHandler(uc *usecase.SummaryUsecase, profileUC *usecase.ProfileUsecase) *SummaryHandler {
	return &SummaryHandler{uc: uc, profileUC: profileUC}
}

func (h *SummaryHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/summary/today", h.Today)
	app.Get("/dashboard/stats", h.Stats)
	app.Put("/profiles/:track", h.UpsertProfile)
	app.Get("/profiles/:track", h.GetProfile)
}

func (h *SummaryHandler) Today(c *fiber.Ctx) error {
	summary, err := h.uc.Today()
	if err != nil {
		return util.DomainErrorResponse(c, "failed to compute summary", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Daily summary computed",
		Data:    summary,
	})
}

func (h *SummaryHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats()
	if err != nil {
		return util.DomainErrorResponse(c, "failed to compute dashboard stats", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Dashboard stats computed",
		Data:    stats,
	})
}

func (h *SummaryHandler) UpsertProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	profile, err := h.profileUC.Upsert(c.Params("track"), req.Skills, req.Bullets)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to upsert profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile saved",
		Data:    profile,
	})
}

func (h *SummaryHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.profileUC.Get(c.Params("track"))
	if err != nil {
		return util.DomainErrorResponse(c, "failed to get profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile found",
		Data:    profile,
	})
}
