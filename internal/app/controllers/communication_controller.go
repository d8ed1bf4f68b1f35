package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
	"github.com/internhub/internhub/internal/pkg/helpers"
)

// CommunicationController handles messaging and template endpoints
type CommunicationController struct {
	communicationService *services.CommunicationService
}

// NewCommunicationController creates a new CommunicationController
func NewCommunicationController(communicationService *services.CommunicationService) *CommunicationController {
	return &CommunicationController{communicationService: communicationService}
}

// SendMessage sends a message to an intern, optionally from a template
func (c *CommunicationController) SendMessage(ctx *gin.Context) {
	senderID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	message, err := c.communicationService.SendMessage(ctx.Request.Context(), senderID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message))
}

// ListMessages returns the message history for an intern
func (c *CommunicationController) ListMessages(ctx *gin.Context) {
	internID, ok := parseUUIDParam(ctx, "internId")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	messages, total, err := c.communicationService.ListMessages(ctx.Request.Context(), internID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      messages,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}))
}

// CreateTemplate adds a reusable message template
func (c *CommunicationController) CreateTemplate(ctx *gin.Context) {
	var req dto.CreateMessageTemplateRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	template, err := c.communicationService.CreateTemplate(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(template))
}

// ListTemplates returns all message templates
func (c *CommunicationController) ListTemplates(ctx *gin.Context) {
	templates, err := c.communicationService.ListTemplates(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(templates))
}

// UpdateTemplate changes template fields
func (c *CommunicationController) UpdateTemplate(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMessageTemplateRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	template, err := c.communicationService.UpdateTemplate(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(template))
}

// DeleteTemplate removes a message template
func (c *CommunicationController) DeleteTemplate(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.communicationService.DeleteTemplate(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Template deleted"}))
}
