package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/utils"
)

// AuthHandler issues admin access tokens.  There is a single admin
// account whose bcrypt hash comes from configuration.
type AuthHandler struct {
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	AccessTTLMin      int
	Log               *zap.Logger
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login.  Valid credentials yield
// {"access_token", "expires_at"}; anything else is a 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.AdminUser)) == 1
	passOK := utils.VerifyPassword(h.AdminPasswordHash, req.Password)
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, h.AdminUser, utils.RoleAdmin, h.AccessTTLMin)
	if err != nil {
		if h.Log != nil {
			h.Log.Error("sign access token", zap.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
