package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glambook/service-booking/internal/application"
	"github.com/glambook/service-booking/pkg/auth"
	"github.com/glambook/service-booking/pkg/middleware"
	"github.com/glambook/service-booking/pkg/response"
)

// ReviewHandler handles HTTP requests for booking reviews.
type ReviewHandler struct {
	service *application.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterRoutes registers review routes on the given router group.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	r.POST("/api/v1/bookings/:id/review", authMW, middleware.RequireRole(auth.RoleCustomer), h.CreateReview)

	artists := r.Group("/api/v1/artists")
	{
		artists.GET("/:id/reviews", h.ListArtistReviews)
		artists.GET("/:id/rating", h.GetArtistRating)
	}
}

// CreateReview handles POST /api/v1/bookings/:id/review.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateReview(c.Request.Context(), customerID, bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListArtistReviews handles GET /api/v1/artists/:id/reviews.
func (h *ReviewHandler) ListArtistReviews(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist ID")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.GetArtistReviews(c.Request.Context(), artistID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetArtistRating handles GET /api/v1/artists/:id/rating.
func (h *ReviewHandler) GetArtistRating(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist ID")
		return
	}

	result, err := h.service.GetArtistRating(c.Request.Context(), artistID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
