package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"umto/internal/auth"
	"umto/internal/cache"
	apperrors "umto/internal/errors"
	"umto/internal/model"
	"umto/internal/repository"
)

const (
	userCacheTTL            = 5 * time.Minute
	generatedPasswordLength = 8
)

// UserService exposes user CRUD operations. Profile reads go through the
// cache; the authentication path never does.
type UserService interface {
	CreateUser(ctx context.Context, fullName, email string) (user *model.User, password string, err error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, fullName, email string) (*model.User, error)
}

type userService struct {
	repo    repository.UserRepository
	authSvc AuthService
	cache   *cache.Client
}

// NewUserService builds a UserService with repository, auth service and cache.
func NewUserService(repo repository.UserRepository, authSvc AuthService, cache *cache.Client) UserService {
	return &userService{repo: repo, authSvc: authSvc, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CreateUser registers a user with an auto-generated password. The cleartext
// password is returned exactly once so the admin can pass it on.
func (s *userService) CreateUser(ctx context.Context, fullName, email string) (*model.User, string, error) {
	password := auth.GeneratePassword(generatedPasswordLength)

	user, err := s.authSvc.Register(ctx, fullName, email, password)
	if err != nil {
		return nil, "", err
	}
	return user, password, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	key := s.cacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, key, payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, fullName, email string) (*model.User, error) {
	user, err := s.repo.UpdateProfile(ctx, id, fullName, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	// Stale profile reads are acceptable only until the next write.
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}
