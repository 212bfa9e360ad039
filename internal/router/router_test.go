package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
	"github.com/iliyamo/hotel-room-allocator/internal/config"
	"github.com/iliyamo/hotel-room-allocator/internal/handler"
	"github.com/iliyamo/hotel-room-allocator/internal/inventory"
	"github.com/iliyamo/hotel-room-allocator/internal/middleware"
	"github.com/iliyamo/hotel-room-allocator/internal/utils"
)

const secret = "router-secret"

func newServer(t *testing.T) (*echo.Echo, *allocator.Allocator) {
	t.Helper()
	hash, err := utils.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)

	alloc := allocator.New(inventory.New(10, config.UniformFloors(10, 10, 7)))
	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, &handler.AuthHandler{AdminUser: "admin", AdminPasswordHash: hash, JWTSecret: secret, AccessTTLMin: 5})
	RegisterPublic(e,
		&handler.RoomsHandler{Alloc: alloc},
		handler.NewBookingHandler(alloc, nil, nil),
		middleware.NewRedisCache(config.CacheConfig{}, nil),
		middleware.NewTokenBucket(config.RateLimitConfig{}, nil),
	)
	RegisterAdmin(e, &handler.AdminHandler{Alloc: alloc, DefaultProbability: 0.35}, secret)
	return e, alloc
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	e, _ := newServer(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/rooms", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/rooms/505", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/summary", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/layout", "", "").Code)

	rec := do(e, http.MethodPost, "/v1/bookings", `{"count":3}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rooms":[101,102,103]`)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	e, alloc := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/v1/admin/reset", "", "").Code)

	rec := do(e, http.MethodPost, "/v1/auth/login", `{"username":"admin","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := extractToken(t, rec.Body.String())

	rec = do(e, http.MethodPost, "/v1/admin/randomize", `{"probability":1}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 97, alloc.Summary().Occupied)

	rec = do(e, http.MethodPost, "/v1/admin/release", `{"rooms":[1001,1002]}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, alloc.Summary().Vacant)

	rec = do(e, http.MethodPost, "/v1/admin/reset", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, alloc.Summary().Occupied)
}

func extractToken(t *testing.T, body string) string {
	t.Helper()
	const key = `"access_token":"`
	i := strings.Index(body, key)
	require.GreaterOrEqual(t, i, 0, body)
	rest := body[i+len(key):]
	j := strings.Index(rest, `"`)
	require.Greater(t, j, 0)
	return rest[:j]
}
