package controller

import (
	"net/http"

	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	GetAnalysis(ctx *fiber.Ctx) error
	Related(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	analysisService     service.IAnalysisService
	searchService       service.ISearchService
}

func NewConversationController(
	conversationService service.IConversationService,
	analysisService service.IAnalysisService,
	searchService service.ISearchService,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		analysisService:     analysisService,
		searchService:       searchService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Post(":id/end", c.End)
	h.Post(":id/analyze", c.Analyze)
	h.Get(":id/analysis", c.GetAnalysis)
	h.Get(":id/related", c.Related)
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.conversationService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	var req dto.ListConversationsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) End(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.End(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success end conversation", res))
}

func (c *conversationController) Analyze(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze conversation", res))
}

func (c *conversationController) GetAnalysis(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.analysisService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analysis", res))
}

func (c *conversationController) Related(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 0)

	res, err := c.searchService.Related(ctx.Context(), id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get related conversations", res))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewApiError(http.StatusBadRequest, "invalid conversation id")
	}
	return id, nil
}
