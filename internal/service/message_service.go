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
	"messagely/internal/policy"
	"messagely/internal/repository"
)

const (
	msgMissingRecipientOrBody = "Must specify recipient and must include body"
	msgCannotView             = "Cannot access messages that are not your own"
	msgCannotMarkRead         = "Cannot mark other users' messages as read"
)

// MessageService creates, reads and marks messages on behalf of an actor
type MessageService interface {
	Get(ctx context.Context, actor string, id int64) (*model.MessageDetail, error)
	Create(ctx context.Context, actor string, req model.CreateMessageRequest) (*model.Message, error)
	MarkRead(ctx context.Context, actor string, id int64) (*model.ReadReceipt, error)
}

type messageService struct {
	repo  repository.MessageRepository
	users repository.UserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(repo repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{repo: repo, users: users}
}

func (s *messageService) find(ctx context.Context, id int64) (*model.MessageDetail, error) {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find message by ID: %w", err)
	}
	if msg == nil {
		return nil, apperror.NotFound(fmt.Sprintf("No such message: %d", id))
	}
	return msg, nil
}

// Get returns a message if actor is one of its participants
func (s *messageService) Get(ctx context.Context, actor string, id int64) (*model.MessageDetail, error) {
	msg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewMessage(actor, msg) {
		return nil, apperror.Forbidden(msgCannotView)
	}
	return msg, nil
}

// Create sends a message from actor; any sender in the request is ignored
func (s *messageService) Create(ctx context.Context, actor string, req model.CreateMessageRequest) (*model.Message, error) {
	if !policy.CanCreateMessage(actor) {
		return nil, apperror.Unauthorized("")
	}
	if strings.TrimSpace(req.ToUsername) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, apperror.Validation(msgMissingRecipientOrBody)
	}

	msg := &model.Message{
		FromUsername: actor,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
		SentAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return nil, s.unknownParticipant(ctx, actor, req.ToUsername)
		}
		return nil, fmt.Errorf("failed to create message in repo: %w", err)
	}
	return msg, nil
}

// unknownParticipant names whichever side of a rejected message is missing.
// The sender can vanish while its token is still valid.
func (s *messageService) unknownParticipant(ctx context.Context, from, to string) error {
	sender, err := s.users.FindByUsername(ctx, from)
	if err != nil {
		return fmt.Errorf("failed to find sender: %w", err)
	}
	missing := to
	if sender == nil {
		missing = from
	}
	return apperror.NotFound(fmt.Sprintf("No such user: %s", missing))
}

// MarkRead moves a message to the Read state. Only the recipient may do so.
// Marking an already read message is a no-op that returns the original read_at.
func (s *messageService) MarkRead(ctx context.Context, actor string, id int64) (*model.ReadReceipt, error) {
	msg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMarkRead(actor, msg) {
		return nil, apperror.Forbidden(msgCannotMarkRead)
	}

	receipt, err := s.repo.MarkRead(ctx, id, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}
	if receipt == nil {
		return nil, apperror.NotFound(fmt.Sprintf("No such message: %d", id))
	}
	if msg.ReadAt == nil {
		logger.Get().Info().Int64("message_id", id).Str("username", actor).Msg("message marked read")
	}
	return receipt, nil
}
