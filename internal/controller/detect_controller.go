package controller

import (
	"ai-moderouter-be/internal/dto"
	"ai-moderouter-be/internal/pkg/serverutils"
	"ai-moderouter-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDetectController interface {
	RegisterRoutes(r fiber.Router)
	DetectMode(ctx *fiber.Ctx) error
}

type detectController struct {
	service service.IDetectorService
}

func NewDetectController(service service.IDetectorService) IDetectController {
	return &detectController{service: service}
}

func (c *detectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/qr")
	h.Post("/detect-mode", c.DetectMode)
}

// DetectMode handles POST /api/qr/detect-mode.
func (c *detectController) DetectMode(ctx *fiber.Ctx) error {
	var req dto.DetectModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Detect(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mode detected", res))
}
