package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umto/internal/config"
	apperrors "umto/internal/errors"
	"umto/internal/handler"
	"umto/internal/model"
)

// stubAuthService is a stateful in-memory stand-in for the real service,
// enforcing the same single-active-token rule.
type stubAuthService struct {
	mu      sync.Mutex
	user    *model.User
	pass    string
	active  map[string]uint
	counter int
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{
		user: &model.User{
			ID:       1,
			FullName: "Ada Example",
			Email:    "a@x.com",
			Status:   model.StatusActive,
		},
		pass:   "secret1",
		active: make(map[string]uint),
	}
}

func (s *stubAuthService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if email != s.user.Email || password != s.pass {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	for token, uid := range s.active {
		if uid == s.user.ID {
			delete(s.active, token)
		}
	}
	s.counter++
	token := fmt.Sprintf("session-token-%d", s.counter)
	s.active[token] = s.user.ID
	return token, s.user, nil
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[token]; !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.user, nil
}

func (s *stubAuthService) Logout(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, uid := range s.active {
		if uid == userID {
			delete(s.active, token)
		}
	}
	return nil
}

func newTestServer(t *testing.T) (*echo.Echo, *stubAuthService) {
	t.Helper()
	authSvc := newStubAuthService()

	e := echo.New()
	cfg := &config.Config{StaticDir: t.TempDir()}
	Register(e, cfg, authSvc, handler.NewAuthHandler(authSvc), handler.NewUserHandler(nil))
	return e, authSvc
}

func doLogin(t *testing.T, e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == handler.AccessTokenCookie {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginLogoutScenario(t *testing.T) {
	e, _ := newTestServer(t)

	// Login sets the session cookie with the full session lifetime.
	rec := doLogin(t, e, "a@x.com", "secret1")
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookieFrom(t, rec)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)

	// The cookie authenticates /users/me.
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(cookie)
	meRec := httptest.NewRecorder()
	e.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)
	assert.Contains(t, meRec.Body.String(), "Ada Example")
	assert.Contains(t, meRec.Body.String(), "a@x.com")

	// Logout clears the cookie and revokes the session.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	e.ServeHTTP(logoutRec, req)
	require.Equal(t, http.StatusOK, logoutRec.Code)
	assert.Less(t, sessionCookieFrom(t, logoutRec).MaxAge, 0)

	// The old cookie value no longer authenticates anything.
	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(cookie)
	staleRec := httptest.NewRecorder()
	e.ServeHTTP(staleRec, req)
	assert.Equal(t, http.StatusUnauthorized, staleRec.Code)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	e, _ := newTestServer(t)

	wrongPassword := doLogin(t, e, "a@x.com", "wrong")
	unknownEmail := doLogin(t, e, "nobody@x.com", "secret1")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies: the caller cannot tell which credential was wrong.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestSecondLoginInvalidatesFirstCookie(t *testing.T) {
	e, _ := newTestServer(t)

	first := sessionCookieFrom(t, doLogin(t, e, "a@x.com", "secret1"))
	second := sessionCookieFrom(t, doLogin(t, e, "a@x.com", "secret1"))
	require.NotEqual(t, first.Value, second.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(first)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(second)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecuredRoutesRejectMissingCookie(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/api/users/me", "/api/users", "/api/users/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}
