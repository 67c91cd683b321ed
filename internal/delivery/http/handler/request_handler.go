package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ewaste-tracker/internal/middleware"
	"ewaste-tracker/internal/usecase/request"
	"ewaste-tracker/pkg/utils"
)

type RequestHandler struct {
	service *request.Service
}

func NewRequestHandler(service *request.Service) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.POST("", h.SubmitRequest)
		requests.GET("", h.ListMyRequests)
		requests.GET("/stats", h.MyStats)
		requests.GET("/:id", h.GetRequest)
		requests.GET("/:id/report", h.DownloadReport)
	}
}

func (h *RequestHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	requests := router.Group("/requests")
	{
		requests.GET("", h.ListAllRequests)
		requests.GET("/stats", h.GlobalStats)
		requests.GET("/stats/device-types", h.DeviceTypeStats)
		requests.GET("/:id", h.GetRequest)
		requests.PUT("/:id/status", h.UpdateStatus)
		requests.POST("/:id/reject", h.RejectRequest)
		requests.POST("/:id/schedule", h.SchedulePickup)
	}
}

func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var req request.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Request submitted successfully", result)
}

func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requests retrieved successfully", result)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request retrieved successfully", result)
}

func (h *RequestHandler) DownloadReport(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	pdf, err := h.service.Report(c.Request.Context(), userID, requestID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=request-%s.pdf", requestID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *RequestHandler) ListAllRequests(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Requests retrieved successfully", result)
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SetStatus(c.Request.Context(), requestID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request status updated successfully", result)
}

func (h *RequestHandler) RejectRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req request.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Reject(c.Request.Context(), requestID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request rejected", result)
}

func (h *RequestHandler) SchedulePickup(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req request.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Schedule(c.Request.Context(), requestID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pickup scheduled successfully", result)
}

func (h *RequestHandler) MyStats(c *gin.Context) {
	userID, ok := middleware.AuthUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result, err := h.service.UserStats(c.Request.Context(), userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

func (h *RequestHandler) GlobalStats(c *gin.Context) {
	result, err := h.service.GlobalStats(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

func (h *RequestHandler) DeviceTypeStats(c *gin.Context) {
	result, err := h.service.DeviceTypeStats(c.Request.Context())
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}
