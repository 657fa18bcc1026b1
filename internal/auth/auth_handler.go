package auth

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"paymaster/internal/shared/apperror"
	"paymaster/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		c.JSON(httpErr.Status, httpErr)
		return
	}

	accessToken, refreshToken, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	c.SetCookie("access_token", accessToken, int(accessTokenTTL.Seconds()), "/", "", isProd, true)
	c.SetCookie("refresh_token", refreshToken, int(refreshTokenTTL.Seconds()), "/", "", isProd, true)

	response.Success(c, http.StatusOK, TokenPairResponse{
		User:         userResp,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var refreshToken string
	if cookie, err := c.Cookie("refresh_token"); err == nil {
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	newAccess, newRefresh, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	c.SetCookie("access_token", newAccess, int(accessTokenTTL.Seconds()), "/", "", isProd, true)
	c.SetCookie("refresh_token", newRefresh, int(refreshTokenTTL.Seconds()), "/", "", isProd, true)

	response.Success(c, http.StatusOK, TokenPairResponse{
		User:         userResp,
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.JSON(httpErr.Status, httpErr)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	isProd := os.Getenv("APP_ENV") == "production"
	c.SetCookie("access_token", "", -1, "/", "", isProd, true)
	c.SetCookie("refresh_token", "", -1, "/", "", isProd, true)

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"}, nil)
}
