package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"alxtravel/internal/domain"
	"alxtravel/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContextListing holds the listing loaded by CheckListingOwnership.
const ContextListing = "listing"

type ListingGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	listings ListingGetter
}

func NewOwnershipChecker(listings ListingGetter) *OwnershipChecker {
	return &OwnershipChecker{listings: listings}
}

// CheckListingOwnership verifies the caller owns the listing in URL param "id".
// Must run after JWTAuth.
func (oc *OwnershipChecker) CheckListingOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || listingID <= 0 {
			response.Abort(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
			return
		}

		listing, err := oc.listings.GetByID(c.Request.Context(), listingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Abort(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
				return
			}
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load listing")
			return
		}

		if listing.OwnerID != userID {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "You don't own this listing")
			return
		}

		c.Set(ContextListing, listing)
		c.Next()
	}
}

// ListingFromContext returns the listing stored by CheckListingOwnership.
func ListingFromContext(c *gin.Context) (*domain.Listing, bool) {
	v, ok := c.Get(ContextListing)
	if !ok {
		return nil, false
	}
	l, ok := v.(*domain.Listing)
	return l, ok
}
