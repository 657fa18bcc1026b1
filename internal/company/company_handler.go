package company

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paymaster/internal/shared/apperror"
	"paymaster/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetMe(c *gin.Context) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Company ID not found in context", nil)
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	comp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companies, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, companies, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	comp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete company failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	c.Status(http.StatusNoContent)
}
