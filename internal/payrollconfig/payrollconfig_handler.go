package payrollconfig

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
	l := zap.L().Named("payrollconfig.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollconfig.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Upsert(c *gin.Context) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Company ID not found in context", nil)
		return
	}

	var req UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), companyID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetActive(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetActive(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetHistory(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
