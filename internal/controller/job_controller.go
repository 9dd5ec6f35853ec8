package controller

import (
	"errors"

	"paper-analysis-be/internal/pkg/serverutils"
	"paper-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJobController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	BatchSummary(ctx *fiber.Ctx) error
}

type jobController struct {
	jobService service.IJobService
}

func NewJobController(jobService service.IJobService) IJobController {
	return &jobController{
		jobService: jobService,
	}
}

func (c *jobController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/job/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("batch/:batchId", c.BatchSummary)
	h.Get(":jobId", c.Show)
	h.Post(":jobId/cancel", c.Cancel)
}

func (c *jobController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	jobId := ctx.Params("jobId")

	res, err := c.jobService.Show(ctx.Context(), userId, jobId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Job not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show job", res))
}

func (c *jobController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var status *string
	if s := ctx.Query("status"); s != "" {
		status = &s
	}
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.jobService.List(ctx.Context(), userId, status, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list jobs", res))
}

func (c *jobController) Cancel(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	jobId := ctx.Params("jobId")

	res, err := c.jobService.Cancel(ctx.Context(), userId, jobId)
	if err != nil {
		if errors.Is(err, service.ErrJobAlreadyTerminal) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Job not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Job cancelled", res))
}

func (c *jobController) BatchSummary(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	batchId := ctx.Params("batchId")

	res, err := c.jobService.BatchSummary(ctx.Context(), userId, batchId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Batch not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show batch", res))
}
