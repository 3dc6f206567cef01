package listing

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/listings")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

// RegisterProtectedRoutes mounts write routes. ownerOnly must load the listing into the
// context (see middleware.CheckListingOwnership).
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup, ownerOnly gin.HandlerFunc) {
	g := protected.Group("/listings")
	{
		g.POST("", h.Create)
		g.PUT("/:id", ownerOnly, h.Update)
		g.DELETE("/:id", ownerOnly, h.Delete)
	}
}

// List godoc
// @Summary		List listings
// @Tags		Listings
// @Param		location	query	string	false	"case-insensitive substring"
// @Param		limit		query	int		false	"page size"
// @Param		offset		query	int		false	"offset"
// @Success		200	{object}	map[string]interface{}
// @Router		/listings [GET]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ListFilter{
		Location: c.Query("location"),
		Limit:    limit,
		Offset:   offset,
	}
	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load listings")
		return
	}

	limit, offset = filter.Page()
	response.Paginated(c, http.StatusOK, items, total, limit, offset)
}

// Get godoc
// @Summary		Get listing
// @Tags		Listings
// @Param		id	path	int	true	"listing id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/listings/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": res})
}

// Create godoc
// @Summary		Create listing
// @Tags		Listings
// @Security	BearerAuth
// @Param		request	body	CreateListingRequest	true	"title, description, location, price_per_night"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/listings [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"listing": res})
}

// Update godoc
// @Summary		Update listing
// @Tags		Listings
// @Security	BearerAuth
// @Param		id		path	int						true	"listing id"
// @Param		request	body	UpdateListingRequest	true	"fields to change"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/listings/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Listing not loaded")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), l, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"listing": res})
}

// Delete godoc
// @Summary		Delete listing
// @Tags		Listings
// @Security	BearerAuth
// @Param		id	path	int	true	"listing id"
// @Success		200	{object}	map[string]interface{}
// @Router		/listings/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	l, ok := middleware.ListingFromContext(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Listing not loaded")
		return
	}

	if err := h.service.Delete(c.Request.Context(), l.ID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
