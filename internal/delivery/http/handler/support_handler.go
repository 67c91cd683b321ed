package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ewaste-tracker/internal/middleware"
	"ewaste-tracker/internal/usecase/support"
	"ewaste-tracker/pkg/utils"
)

type SupportHandler struct {
	service *support.Service
}

func NewSupportHandler(service *support.Service) *SupportHandler {
	return &SupportHandler{service: service}
}

func (h *SupportHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/support")
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.MyTickets)
	}
}

func (h *SupportHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/support")
	{
		tickets.GET("", h.AllTickets)
		tickets.PUT("/:id/reply", h.Reply)
	}
}

func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req support.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Support ticket created successfully", result)
}

func (h *SupportHandler) MyTickets(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.MyTickets(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets retrieved successfully", result)
}

func (h *SupportHandler) AllTickets(c *gin.Context) {
	result, err := h.service.All(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tickets retrieved successfully", result)
}

func (h *SupportHandler) Reply(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req support.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Reply(c.Request.Context(), ticketID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply saved successfully", result)
}
