package service

import (
	"context"
	"fmt"

	"messagely/internal/apperror"
	"messagely/internal/model"
	"messagely/internal/repository"
)

// UserService exposes user profiles and per-user message lists.
// Callers enforce that only the user themself reaches Get and the message lists.
type UserService interface {
	List(ctx context.Context) ([]model.UserSummary, error)
	Get(ctx context.Context, username string) (*model.User, error)
	MessagesFrom(ctx context.Context, username string) ([]model.SentMessage, error)
	MessagesTo(ctx context.Context, username string) ([]model.ReceivedMessage, error)
}

type userService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) UserService {
	return &userService{userRepo: userRepo, messageRepo: messageRepo}
}

func (s *userService) List(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound(fmt.Sprintf("No such user: %s", username))
	}
	return user, nil
}

func (s *userService) MessagesFrom(ctx context.Context, username string) ([]model.SentMessage, error) {
	messages, err := s.messageRepo.FindFrom(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from %s: %w", username, err)
	}
	return messages, nil
}

func (s *userService) MessagesTo(ctx context.Context, username string) ([]model.ReceivedMessage, error) {
	messages, err := s.messageRepo.FindTo(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages to %s: %w", username, err)
	}
	return messages, nil
}
