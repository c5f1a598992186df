package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glambook/service-booking/internal/notification"
	"github.com/glambook/service-booking/pkg/auth"
	"github.com/glambook/service-booking/pkg/middleware"
	"github.com/glambook/service-booking/pkg/response"
)

// DeviceTokenHandler registers push device tokens for the caller.
type DeviceTokenHandler struct {
	tokens notification.TokenStore
}

// NewDeviceTokenHandler creates a new DeviceTokenHandler.
func NewDeviceTokenHandler(tokens notification.TokenStore) *DeviceTokenHandler {
	return &DeviceTokenHandler{tokens: tokens}
}

// RegisterRoutes registers the device-token route on the given router group.
func (h *DeviceTokenHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.PUT("/api/v1/notifications/token", middleware.AuthMiddleware(jwtManager), h.RegisterToken)
}

// RegisterToken handles PUT /api/v1/notifications/token.
func (h *DeviceTokenHandler) RegisterToken(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.tokens.Register(c.Request.Context(), userID, body.Token); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
