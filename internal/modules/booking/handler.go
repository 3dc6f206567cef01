package booking

import (
	"errors"
	"net/http"
	"strconv"

	"alxtravel/internal/middleware"
	"alxtravel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts booking routes on an authenticated group. ownerOnly guards the
// per-listing booking list.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ownerOnly gin.HandlerFunc) {
	rg.GET("/bookings", h.ListMine)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.DELETE("/bookings/:id", h.Cancel)
	rg.GET("/listings/:id/bookings", ownerOnly, h.ListForListing)
}

// CreateBooking godoc
// @Summary		Create booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"listing_id, start_date, end_date, guests"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// ListMine godoc
// @Summary		My bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/bookings [GET]
func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListMine(c.Request.Context(), middleware.CurrentUserID(c), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

// Cancel godoc
// @Summary		Cancel booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"booking id"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/bookings/{id} [DELETE]
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ListForListing(c *gin.Context) {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Listing not loaded")
		return
	}

	items, err := h.service.ListForListing(c.Request.Context(), l.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEndBeforeStart):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", MsgEndBeforeStart,
			gin.H{"non_field_errors": []string{MsgEndBeforeStart}})
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD")
	case errors.Is(err, ErrListingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrSelfBooking):
		response.Error(c, http.StatusForbidden, "SELF_BOOKING", "You cannot book your own listing")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
