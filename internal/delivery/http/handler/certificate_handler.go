package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ewaste-tracker/internal/middleware"
	"ewaste-tracker/internal/usecase/certificate"
	"ewaste-tracker/pkg/utils"
)

type CertificateHandler struct {
	service *certificate.Service
}

func NewCertificateHandler(service *certificate.Service) *CertificateHandler {
	return &CertificateHandler{service: service}
}

func (h *CertificateHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	certificates := router.Group("/certificates")
	{
		certificates.GET("/eligibility", h.Eligibility)
		certificates.GET("/download", h.Download)
	}
}

func (h *CertificateHandler) Eligibility(c *gin.Context) {
	email, ok := middleware.AuthEmail(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Email not found in context")
		return
	}

	result, err := h.service.Eligibility(c.Request.Context(), email)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Eligibility retrieved successfully", result)
}

func (h *CertificateHandler) Download(c *gin.Context) {
	email, ok := middleware.AuthEmail(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Email not found in context")
		return
	}

	pdf, err := h.service.Generate(c.Request.Context(), email)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=certificate.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
