package handler

import (
	"time"

	"career-autopilot/internal/dto"
	"career-autopilot/internal/response"
	"career-autopilot/internal/usecase"
	"career-autopilot/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/jobs/add", h.Add)
	app.Post("/jobs/status", h.SetStatus)
	app.Get("/jobs/list", h.List)
	app.Get("/jobs/:id", h.Get)
	app.Put("/jobs/:id", h.Update)
}

func (h *JobHandler) Add(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	input := usecase.CreateJobInput{
		JobID:   req.JobID,
		Company: req.Company,
		Role:    req.Role,
		Track:   req.Track,
		JDUrl:   req.JDUrl,
		Notes:   req.Notes,
	}
	if req.ApplyBy != nil {
		input.ApplyBy = *req.ApplyBy
	}

	job, err := h.uc.Create(input)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to create job", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data:    dto.NewJobDTO(job, time.Now().UTC()),
	})
}

func (h *JobHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	job, err := h.uc.SetStatus(req.JobID, req.Status)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to update status", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Status updated",
		Data:    dto.NewJobDTO(job, time.Now().UTC()),
	})
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	filter := usecase.JobFilter{
		Track:  c.Query("track"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}

	jobs, total, err := h.uc.List(filter)
	if err != nil {
		return util.DomainErrorResponse(c, "failed to list jobs", err)
	}

	now := time.Now().UTC()
	data := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		data = append(data, dto.NewJobDTO(&jobs[i], now))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Jobs listed",
		Data:       data,
		Pagination: response.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return util.DomainErrorResponse(c, "failed to get job", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job found",
		Data:    dto.NewJobDTO(job, time.Now().UTC()),
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	var req dto.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	job, err := h.uc.Update(c.Params("id"), usecase.UpdateJobInput{
		Company: req.Company,
		Role:    req.Role,
		JDUrl:   req.JDUrl,
		Track:   req.Track,
		Notes:   req.Notes,
	})
	if err != nil {
		return util.DomainErrorResponse(c, "failed to update job", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job updated",
		Data:    dto.NewJobDTO(job, time.Now().UTC()),
	})
}
