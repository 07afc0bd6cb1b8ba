package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "umto/internal/errors"
	"umto/internal/model"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, fullName, email string) (*model.User, string, error) {
	args := m.Called(ctx, fullName, email)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, fullName, email string) (*model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_CreateUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, "Client User", "client@example.com").
		Return(&model.User{ID: 3, FullName: "Client User", Email: "client@example.com"}, "x7#pQ2ab", nil)

	h := NewUserHandler(svc)
	c, rec := newTestContext(http.MethodPost, "/api/users/create-user",
		`{"full_name":"Client User","email":"client@example.com"}`)

	require.NoError(t, h.CreateUser(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"x7#pQ2ab"`)
	svc.AssertExpectations(t)
}

func TestUserHandler_CreateUser_DuplicateEmail(t *testing.T) {
	svc := new(MockUserService)
	svc.On("CreateUser", mock.Anything, "Client User", "taken@example.com").
		Return(nil, "", apperrors.ErrDuplicateEmail)

	h := NewUserHandler(svc)
	c, _ := newTestContext(http.MethodPost, "/api/users/create-user",
		`{"full_name":"Client User","email":"taken@example.com"}`)

	err := h.CreateUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUserHandler_CreateUser_InvalidBody(t *testing.T) {
	h := NewUserHandler(new(MockUserService))
	c, _ := newTestContext(http.MethodPost, "/api/users/create-user",
		`{"full_name":"No Email"}`)

	err := h.CreateUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUserHandler_UpdateUser(t *testing.T) {
	svc := new(MockUserService)
	svc.On("UpdateUser", mock.Anything, uint(3), "Renamed", "renamed@example.com").
		Return(&model.User{ID: 3, FullName: "Renamed", Email: "renamed@example.com"}, nil)

	h := NewUserHandler(svc)
	c, rec := newTestContext(http.MethodPost, "/api/users/update-user",
		`{"id":3,"full_name":"Renamed","email":"renamed@example.com"}`)

	require.NoError(t, h.UpdateUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	svc := new(MockUserService)
	svc.On("UpdateUser", mock.Anything, uint(99), "Ghost", "ghost@example.com").
		Return(nil, apperrors.ErrUserNotFound)

	h := NewUserHandler(svc)
	c, _ := newTestContext(http.MethodPost, "/api/users/update-user",
		`{"id":99,"full_name":"Ghost","email":"ghost@example.com"}`)

	err := h.UpdateUser(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(new(MockUserService))
	c, rec := newTestContext(http.MethodGet, "/api/users/me", "")
	c.Set("user", &model.User{ID: 1, FullName: "Ada Example", Email: "a@x.com"})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada Example")
	assert.NotContains(t, rec.Body.String(), "password")
}
