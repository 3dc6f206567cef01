package review

import (
	"net/http"
	"strconv"

	"alxtravel/internal/middleware"
	"alxtravel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/listings/:id/reviews", h.GetByListing)
	}
	if protected != nil {
		protected.POST("/listings/:id/reviews", h.Create)
	}
}

// Create godoc
// @Summary		Review a listing
// @Description	One review per user per listing. Owners cannot review their own listing.
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id		path	int					true	"listing id"
// @Param		request	body	CreateReviewRequest	true	"rating 1..5, comment"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/listings/{id}/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || listingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), listingID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		case ErrSelfReview:
			response.Error(c, http.StatusForbidden, "SELF_REVIEW", "You cannot review your own listing")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "Only one review per user per listing")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

// GetByListing godoc
// @Summary		Listing reviews
// @Tags		Reviews
// @Param		id		path	int	true	"listing id"
// @Param		limit	query	int	false	"page size"
// @Param		offset	query	int	false	"offset"
// @Success		200	{object}	map[string]interface{}
// @Router		/listings/{id}/reviews [GET]
func (h *Handler) GetByListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || listingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	out, err := h.svc.GetByListing(c.Request.Context(), listingID, limit, offset)
	if err != nil {
		if err == ErrInvalidRequest {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, out)
}
