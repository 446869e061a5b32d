package controller

import (
	"ai-chatlog-be/internal/dto"
	"ai-chatlog-be/internal/pkg/serverutils"
	"ai-chatlog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	SearchConversations(ctx *fiber.Ctx) error
	SearchMessages(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("conversations", c.SearchConversations)
	h.Post("messages", c.SearchMessages)
}

func (c *searchController) SearchConversations(ctx *fiber.Ctx) error {
	var req dto.SearchConversationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.SearchConversations(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search conversations", res))
}

func (c *searchController) SearchMessages(ctx *fiber.Ctx) error {
	var req dto.SearchMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.SearchMessages(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search messages", res))
}
