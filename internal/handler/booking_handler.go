package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glambook/service-booking/internal/application"
	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	"github.com/glambook/service-booking/pkg/auth"
	"github.com/glambook/service-booking/pkg/middleware"
	"github.com/glambook/service-booking/pkg/response"
)

// BookingHandler handles HTTP requests for booking lifecycle operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequireRole(auth.RoleCustomer), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/accept", middleware.RequireRole(auth.RoleArtist), h.AcceptBooking)
		bookings.POST("/:id/decline", middleware.RequireRole(auth.RoleArtist), h.DeclineBooking)
		bookings.POST("/:id/start", middleware.RequireRole(auth.RoleArtist, auth.RoleAdmin), h.StartBooking)
		bookings.POST("/:id/complete", middleware.RequireRole(auth.RoleArtist), h.CompleteBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/status", middleware.RequireRole(auth.RoleAdmin), h.UpdateStatus)
	}
}

// actor extracts the caller's identity and parsed role, replying 401 when absent.
func actor(c *gin.Context) (uuid.UUID, bookingDomain.ActorRole, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, "", false
	}
	roleStr, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, "", false
	}
	role, err := bookingDomain.ParseActorRole(roleStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unrecognized role"})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), customerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. Customers see their own
// bookings, artists see their assignments.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		return
	}

	page, limit := parsePagination(c)

	if role == bookingDomain.RoleArtist {
		res, err := h.service.GetArtistBookings(c.Request.Context(), userID, page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Paginated(c, res.Items, res.Total, res.Page, res.Limit)
		return
	}

	res, err := h.service.GetCustomerBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, res.Items, res.Total, res.Page, res.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AcceptBooking handles POST /api/v1/bookings/:id/accept.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.transition(c, bookingDomain.StatusConfirmed, false)
}

// DeclineBooking handles POST /api/v1/bookings/:id/decline.
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	h.transition(c, bookingDomain.StatusDeclined, true)
}

// StartBooking handles POST /api/v1/bookings/:id/start.
func (h *BookingHandler) StartBooking(c *gin.Context) {
	h.transition(c, bookingDomain.StatusInProgress, false)
}

// CompleteBooking handles POST /api/v1/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, bookingDomain.StatusCompleted, false)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, bookingDomain.StatusCancelled, true)
}

// UpdateStatus handles POST /api/v1/bookings/:id/status (admin generic transition).
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := bookingDomain.ParseBookingStatus(body.Status)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Transition(c.Request.Context(), bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    status,
		Reason:    body.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// transition is the shared path for the named lifecycle endpoints.
func (h *BookingHandler) transition(c *gin.Context, status bookingDomain.BookingStatus, withReason bool) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	var reason string
	if withReason {
		var body struct {
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&body)
		reason = body.Reason
	}

	result, err := h.service.Transition(c.Request.Context(), bookingDomain.TransitionRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    status,
		Reason:    reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
