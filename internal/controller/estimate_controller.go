package controller

import (
	"paint-estimate-be/internal/pkg/serverutils"
	"paint-estimate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEstimateController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type estimateController struct {
	estimateService service.IEstimateService
}

func NewEstimateController(estimateService service.IEstimateService) IEstimateController {
	return &estimateController{
		estimateService: estimateService,
	}
}

func (c *estimateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/estimate/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

type listEstimatesResponse struct {
	Estimates interface{} `json:"estimates"`
	Total     int64       `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}

func (c *estimateController) List(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)
	projectType := ctx.Query("project_type")

	estimates, total, err := c.estimateService.List(ctx.Context(), userId, projectType, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list estimates", listEstimatesResponse{
		Estimates: estimates,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}))
}

func (c *estimateController) Show(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid estimate id")
	}

	res, err := c.estimateService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show estimate", res))
}

func (c *estimateController) Delete(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid estimate id")
	}

	if err := c.estimateService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete estimate", nil))
}
