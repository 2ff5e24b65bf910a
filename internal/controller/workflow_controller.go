package controller

import (
	"errors"

	"paint-estimate-be/internal/dto"
	"paint-estimate-be/internal/pkg/serverutils"
	"paint-estimate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkflowController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	GetState(ctx *fiber.Ctx) error
	SelectProjectType(ctx *fiber.Ctx) error
	CaptureInput(ctx *fiber.Ctx) error
	CompleteReview(ctx *fiber.Ctx) error
	CompletePricing(ctx *fiber.Ctx) error
	CompleteSuggestions(ctx *fiber.Ctx) error
	GenerateContent(ctx *fiber.Ctx) error
	CompleteContentEdit(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	AddRoom(ctx *fiber.Ctx) error
	UpdateSurface(ctx *fiber.Ctx) error
	RemoveRoom(ctx *fiber.Ctx) error
	Restart(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
}

type workflowController struct {
	workflowService service.IWorkflowService
}

func NewWorkflowController(workflowService service.IWorkflowService) IWorkflowController {
	return &workflowController{
		workflowService: workflowService,
	}
}

func (c *workflowController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workflow/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("start", c.Start)
	h.Get("state/:sessionId", c.GetState)
	h.Post("project-type", c.SelectProjectType)
	h.Post("input", c.CaptureInput)
	h.Post("review", c.CompleteReview)
	h.Post("pricing", c.CompletePricing)
	h.Post("suggestions", c.CompleteSuggestions)
	h.Post("content/generate", c.GenerateContent)
	h.Post("content/edit", c.CompleteContentEdit)
	h.Post("navigate", c.Navigate)
	h.Post("rooms", c.AddRoom)
	h.Put("rooms/:roomId/surface", c.UpdateSurface)
	h.Delete("rooms/:roomId", c.RemoveRoom)
	h.Post("restart", c.Restart)
	h.Post("complete", c.Complete)
}

func currentUser(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *workflowController) Start(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.StartWorkflowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.workflowService.Start(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start workflow", res))
}

func (c *workflowController) GetState(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.workflowService.GetState(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show workflow state", res))
}

func (c *workflowController) SelectProjectType(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.SelectProjectTypeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.SelectProjectType(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select project type", res))
}

func (c *workflowController) CaptureInput(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CaptureInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.CaptureInput(ctx.Context(), userId, &req)
	if err != nil {
		var collab *service.CollaboratorError
		if errors.As(err, &collab) {
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, collab.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success capture input", res))
}

func (c *workflowController) CompleteReview(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CompleteReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.CompleteReview(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete review", res))
}

func (c *workflowController) CompletePricing(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CompletePricingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.CompletePricing(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete pricing", res))
}

func (c *workflowController) CompleteSuggestions(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CompleteSuggestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.CompleteSuggestions(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete suggestions", res))
}

func (c *workflowController) GenerateContent(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.GenerateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.GenerateContent(ctx.Context(), userId, &req)
	if err != nil {
		var collab *service.CollaboratorError
		if errors.As(err, &collab) {
			return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, collab.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate content", res))
}

func (c *workflowController) CompleteContentEdit(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CompleteContentEditRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.CompleteContentEdit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete content edit", res))
}

func (c *workflowController) Navigate(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.Navigate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success navigate workflow", res))
}

func (c *workflowController) AddRoom(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.AddRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.AddRoom(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add room", res))
}

func (c *workflowController) UpdateSurface(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.UpdateSurfaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = ctx.Params("roomId")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.UpdateSurface(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update surface", res))
}

func (c *workflowController) RemoveRoom(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.RemoveRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RoomId = ctx.Params("roomId")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.RemoveRoom(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove room", res))
}

func (c *workflowController) Restart(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.RestartWorkflowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.Restart(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restart workflow", res))
}

func (c *workflowController) Complete(ctx *fiber.Ctx) error {
	userId := currentUser(ctx)

	var req dto.CompleteWorkflowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflowService.Complete(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete workflow", res))
}
