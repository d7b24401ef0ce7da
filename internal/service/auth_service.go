package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"messagely/internal/apperror"
	"messagely/internal/logger"
	"messagely/internal/model"
	"messagely/internal/repository"
	"messagely/internal/utils"
)

const (
	msgInvalidCredentials = "Invalid username/password"
	msgInvalidToken       = "Invalid or missing token"
)

// AuthService registers users, checks credentials and issues/verifies tokens
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
	IssueToken(username string) (string, error)
	VerifyToken(token string) (string, error)
	RecordLogin(ctx context.Context, username string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtUtil    *utils.JWTUtil
	workFactor int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, workFactor int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtUtil:    jwtUtil,
		workFactor: workFactor,
	}
}

// Register creates a new user account and returns a token for it
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, "", apperror.Validation("Username and password are required")
	}

	hashedPassword, err := utils.HashPassword(req.Password, s.workFactor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		JoinAt:       time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", apperror.Conflict(fmt.Sprintf("Username %q is already taken", req.Username))
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}
	logger.Get().Info().Str("username", user.Username).Msg("user registered")

	token, err := s.IssueToken(user.Username)
	if err != nil {
		return user, "", err
	}
	return user, token, nil
}

// Authenticate reports whether password matches the stored hash.
// A missing user is an Unauthorized error carrying the same message as a wrong password.
func (s *authService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return false, apperror.Unauthorized(msgInvalidCredentials)
	}
	return utils.CheckPasswordHash(password, user.PasswordHash), nil
}

// Login authenticates a user, stamps last_login_at and returns a token
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperror.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.IssueToken(username)
	if err != nil {
		return "", err
	}

	if err := s.RecordLogin(ctx, username); err != nil {
		if !apperror.IsKind(err, apperror.KindNotFound) {
			return "", err
		}
		logger.Get().Warn().Str("username", username).Msg("user vanished before login timestamp was recorded")
	}
	return token, nil
}

// IssueToken signs a token bound to username
func (s *authService) IssueToken(username string) (string, error) {
	token, err := s.jwtUtil.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken returns the username bound to token
func (s *authService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", apperror.Unauthorized(msgInvalidToken)
	}
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return "", apperror.Unauthorized(msgInvalidToken)
	}
	return claims.Username, nil
}

// RecordLogin sets last_login_at to now
func (s *authService) RecordLogin(ctx context.Context, username string) error {
	err := s.userRepo.UpdateLastLogin(ctx, username, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return apperror.NotFound(fmt.Sprintf("No such user: %s", username))
		}
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
