package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alxtravel/internal/database"
	"alxtravel/internal/pkg/jwt"
	"alxtravel/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorDetail    `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(fmt.Sprintf("file:server_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	r := NewRouter(Deps{
		DB:     db,
		JWT:        jwt.New("test_secret_key_32_characters_min", time.Hour),
		RefreshTTL: 24 * time.Hour,
		Logger:     logger.Discard().Logger,
	})
	return &testSuite{router: r, db: db}
}

func (s *testSuite) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, *testResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp testResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, &resp
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// register creates an account and returns its access token.
func (s *testSuite) register(t *testing.T, username string) string {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decode[struct {
		AccessToken string `json:"access_token"`
	}](t, resp.Data)
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

type listingBody struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Owner         any    `json:"owner"`
	PricePerNight string `json:"price_per_night"`
}

func (s *testSuite) createListing(t *testing.T, token, title string) listingBody {
	t.Helper()

	w, resp := s.do(t, http.MethodPost, "/api/v1/listings", map[string]any{
		"title":           title,
		"description":     "Rustic cabin surrounded by nature.",
		"location":        "Aspen, CO",
		"price_per_night": 180,
		"owner":           "someone_else",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[struct {
		Listing listingBody `json:"listing"`
	}](t, resp.Data).Listing
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupSuite(t)

	w, _ := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"ws_clients":0`)

	w, _ = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alxtravel_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	s := setupSuite(t)
	token := s.register(t, "john_doe")

	w, resp := s.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"username":"john_doe"`)

	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "john_doe", "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingFlow(t *testing.T) {
	s := setupSuite(t)
	owner := s.register(t, "john_doe")
	other := s.register(t, "jane_smith")

	l := s.createListing(t, owner, "Mountain Cabin Retreat")
	assert.Equal(t, "john_doe", l.Owner, "owner is the caller, not the request body")
	assert.Equal(t, "180.00", l.PricePerNight)

	w, resp := s.do(t, http.MethodGet, "/api/v1/listings?location=aspen", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[struct {
		Items []listingBody `json:"items"`
		Total int64         `json:"total"`
	}](t, resp.Data)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.IsType(t, "", page.Items[0].Owner)

	for query, want := range map[string][2]int{
		"?limit=500":         {100, 0},
		"?limit=0&offset=-3": {20, 0},
		"?limit=5&offset=2":  {5, 2},
		"":                   {20, 0},
	} {
		w, resp = s.do(t, http.MethodGet, "/api/v1/listings"+query, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		window := decode[struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		}](t, resp.Data)
		assert.Equal(t, want, [2]int{window.Limit, window.Offset}, query)
	}

	path := fmt.Sprintf("/api/v1/listings/%d", l.ID)

	w, resp = s.do(t, http.MethodPut, path, map[string]any{"price_per_night": 199.5}, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	w, resp = s.do(t, http.MethodPut, path, map[string]any{"price_per_night": 199.5}, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(resp.Data), `"price_per_night":"199.50"`)

	w, _ = s.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodDelete, path, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)
	owner := s.register(t, "john_doe")
	guest := s.register(t, "jane_smith")
	stranger := s.register(t, "bob_wilson")

	l := s.createListing(t, owner, "Cozy Beach House")

	t.Run("end date must follow start date", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"listing_id": l.ID, "start_date": "2026-07-10", "end_date": "2026-07-10",
		}, guest)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "End date must be after start date.", resp.Error.Message)
	})

	t.Run("owner cannot book own listing", func(t *testing.T) {
		w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"listing_id": l.ID, "start_date": "2026-07-10", "end_date": "2026-07-12",
		}, owner)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "SELF_BOOKING", resp.Error.Code)
	})

	t.Run("unknown listing", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
			"listing_id": 9999, "start_date": "2026-07-10", "end_date": "2026-07-12",
		}, guest)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", map[string]any{
		"listing_id": l.ID, "start_date": "2026-07-10", "end_date": "2026-07-12", "guests": 2,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[struct {
		Booking struct {
			ID        int64       `json:"id"`
			User      string      `json:"user"`
			Listing   listingBody `json:"listing"`
			StartDate string      `json:"start_date"`
			EndDate   string      `json:"end_date"`
			Guests    int         `json:"guests"`
		} `json:"booking"`
	}](t, resp.Data).Booking
	assert.Equal(t, "jane_smith", created.User)
	assert.Equal(t, "Cozy Beach House", created.Listing.Title)
	assert.Equal(t, "2026-07-10", created.StartDate)
	assert.Equal(t, "2026-07-12", created.EndDate)
	assert.Equal(t, 2, created.Guests)

	bookingPath := fmt.Sprintf("/api/v1/bookings/%d", created.ID)

	w, _ = s.do(t, http.MethodGet, bookingPath, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, bookingPath, nil, stranger)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/listings/%d/bookings", l.ID), nil, owner)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/listings/%d/bookings", l.ID), nil, guest)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/bookings", nil, guest)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"user":"jane_smith"`)

	w, _ = s.do(t, http.MethodDelete, bookingPath, nil, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodDelete, bookingPath, nil, guest)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, bookingPath, nil, guest)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewFlow(t *testing.T) {
	s := setupSuite(t)
	owner := s.register(t, "john_doe")
	guest := s.register(t, "jane_smith")

	l := s.createListing(t, owner, "Lakefront Cottage")
	path := fmt.Sprintf("/api/v1/listings/%d/reviews", l.ID)

	w, resp := s.do(t, http.MethodPost, path, map[string]any{"rating": 5, "comment": "Great value for money."}, owner)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "SELF_REVIEW", resp.Error.Code)

	w, _ = s.do(t, http.MethodPost, path, map[string]any{"rating": 6}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, path, map[string]any{"rating": 4, "comment": "Peaceful and relaxing atmosphere."}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp = s.do(t, http.MethodPost, path, map[string]any{"rating": 3}, guest)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	w, resp = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Count   int64   `json:"count"`
		Average float64 `json:"average_rating"`
	}](t, resp.Data)
	assert.Equal(t, int64(1), list.Count)
	assert.Equal(t, 4.0, list.Average)
}

func TestRefreshTokenFlow(t *testing.T) {
	s := setupSuite(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username": "alice_brown", "email": "alice@example.com", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	type pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	first := decode[pair](t, resp.Data)
	require.NotEmpty(t, first.RefreshToken)

	w, resp = s.do(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": first.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[pair](t, resp.Data)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": first.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "rotated token cannot be reused")

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{"refresh_token": second.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "reuse revoked the whole family")

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", nil, second.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
