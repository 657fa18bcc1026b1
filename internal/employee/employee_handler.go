package employee

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Company ID not found in context", nil)
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	if start > len(resp) {
		start = len(resp)
	}
	end := start + pageSize
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetOptions(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString("company_id")

	if err := h.service.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.logger.Error("delete employee failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Deactivate(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.Deactivate(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), req); err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password set successfully"}, nil)
}
