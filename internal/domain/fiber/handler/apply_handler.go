package handler

import (
	"time"

	"career-autopilot/internal/dto"
	"career-autopilot/internal/middleware"
	"career-autopilot/internal/usecase"
	"career-autopilot/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ApplyHandler struct {
	uc *usecase.ApplyPackUsecase
}

func NewApplyHandler(uc *usecase.ApplyPackUsecase) *ApplyHandler {
	return &ApplyHandler{uc: uc}
}

func (h *ApplyHandler) RegisterRoutes(app *fiber.App) {
	// Generation may call an external drafter; keep it rate limited.
	app.Post("/apply/prepare", middleware.RateLimiter(5, 10*time.Second), h.Prepare)
	app.Get("/apply/:job_id", h.Get)
}

func (h *ApplyHandler) Prepare(c *fiber.Ctx) error {
	var req dto.ApplyPackRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.uc.Generate(c.Context(), req.JobID, req.JDText)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to generate apply pack", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Apply pack generated",
		Data:    result,
	})
}

func (h *ApplyHandler) Get(c *fiber.Ctx) error {
	result, err := h.uc.GetPack(c.Params("job_id"))
	if err != nil {
		return util.DomainErrorResponse(c, "failed to get apply pack", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Apply pack found",
		Data:    result,
	})
}
