package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"umto/internal/auth"
	apperrors "umto/internal/errors"
	"umto/internal/model"
	"umto/internal/service"
)

// AccessTokenCookie is the cookie carrying the session credential.
const AccessTokenCookie = "access_token"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request. Field names follow the OAuth2
// password form so existing clients keep working; username carries the email.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login godoc
// @Summary Login with email and password
// @Description Verifies credentials and sets the session cookie.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(sessionCookie(token, auth.SessionTokenTTL))

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Login successful",
	})
}

// Logout godoc
// @Summary Logout the current user
// @Description Revokes the active session token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
// @Security CookieAuth
func (h *AuthHandler) Logout(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// MaxAge < 0 instructs the browser to delete the cookie.
	expired := sessionCookie("", 0)
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	})
}

// CurrentUser returns the authenticated user placed in the context by the
// session middleware, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get("user").(*model.User)
	return user
}

func sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
