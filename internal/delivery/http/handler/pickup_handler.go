package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ewaste-tracker/internal/middleware"
	"ewaste-tracker/internal/usecase/pickup"
	"ewaste-tracker/pkg/utils"
)

type PickupHandler struct {
	service *pickup.Service
}

func NewPickupHandler(service *pickup.Service) *PickupHandler {
	return &PickupHandler{service: service}
}

func (h *PickupHandler) RegisterPickupRoutes(router *gin.RouterGroup) {
	pickups := router.Group("/pickup")
	{
		pickups.GET("/requests", h.AssignedRequests)
		pickups.GET("/route", h.Route)
		pickups.PUT("/availability", h.SetAvailability)
		pickups.POST("/requests/:id/verify/initiate", h.InitiateVerification)
		pickups.POST("/requests/:id/verify/complete", h.CompleteVerification)
		pickups.PUT("/requests/:id/status", h.UpdateStatus)
	}
}

func (h *PickupHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/pickup-persons", h.ListPersons)
}

func (h *PickupHandler) AssignedRequests(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.AssignedRequests(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assigned requests retrieved successfully", result)
}

func (h *PickupHandler) Route(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.Route(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Route retrieved successfully", result)
}

func (h *PickupHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req pickup.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), userID, requestID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request status updated successfully", result)
}

func (h *PickupHandler) InitiateVerification(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := h.service.InitiateVerification(c.Request.Context(), requestID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification code sent to the customer", nil)
}

func (h *PickupHandler) CompleteVerification(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req pickup.CompleteVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CompleteVerification(c.Request.Context(), requestID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Verification completed successfully", result)
}

func (h *PickupHandler) SetAvailability(c *gin.Context) {
	var req pickup.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), userID, *req.Available); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Availability updated successfully", nil)
}

func (h *PickupHandler) ListPersons(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup persons retrieved successfully", result)
}
