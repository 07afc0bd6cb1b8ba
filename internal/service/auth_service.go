package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"umto/internal/auth"
	apperrors "umto/internal/errors"
	"umto/internal/model"
	"umto/internal/repository"
)

// AuthService orchestrates credential verification and the session lifecycle.
// Every authenticated request is re-validated against the token table, which
// is what makes logout and re-login revoke prior sessions immediately.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	hasher    *auth.Hasher
	codec     *auth.TokenCodec
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	hasher *auth.Hasher,
	codec *auth.TokenCodec,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		codec:     codec,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		Status:       model.StatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials, issues a session token and records it as the
// user's single active token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password must be indistinguishable.
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return "", nil, apperrors.ErrAccountInactive
	}

	token, err := s.codec.Issue(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	// The token must be durably recorded as active before it is handed out.
	if err := s.tokenRepo.Rotate(ctx, user.ID, token); err != nil {
		return "", nil, fmt.Errorf("%w: rotate session token: %v", apperrors.ErrPersistence, err)
	}

	// Best effort only; a failed stats update never fails the login.
	if err := s.userRepo.UpdateLoginStats(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Printf("update login stats for user %d: %v", user.ID, err)
	}

	return token, user, nil
}

// Authenticate resolves a bearer token to a user, confirming the token is
// still the active one recorded for that user.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	// Unknown subject and store failure both collapse into the same error.
	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	active, err := s.tokenRepo.FindActive(ctx, user.ID, token)
	if err != nil || !active {
		return nil, apperrors.ErrUnauthenticated
	}

	return user, nil
}

// Logout revokes every active session token of the user. A persistence
// failure is surfaced; logout must be confirmed, not assumed.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokenRepo.DeactivateAll(ctx, userID); err != nil {
		return fmt.Errorf("%w: deactivate session tokens: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
