package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
	actions    ActionRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, actions ActionRepository, logger *zap.Logger) *UserService {
	return &UserService{
		repository: repository,
		actions:    actions,
		logger:     logger,
	}
}

// Subscribe registers the chat or refreshes its profile and re-enables
// the daily broadcast.
func (s *UserService) Subscribe(ctx context.Context, chatID int64, username, firstName, lastName string) error {
	user := entities.NewUser(chatID, username, firstName, lastName)

	created, err := s.repository.Upsert(ctx, user)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	if created {
		s.logger.Info("new subscriber", zap.Int64("chat_id", chatID))
	}

	return nil
}

// Unsubscribe stops the daily broadcast. Unknown chats are ignored.
func (s *UserService) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := s.repository.Deactivate(ctx, chatID); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}

	return nil
}

// ActiveSubscribers returns a snapshot of chats receiving the daily broadcast.
func (s *UserService) ActiveSubscribers(ctx context.Context) ([]int64, error) {
	ids, err := s.repository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}

	return ids, nil
}

// LogAction records a command in the action log. Failures are logged only.
func (s *UserService) LogAction(ctx context.Context, chatID int64, action entities.ActionType) {
	if err := s.actions.Log(ctx, chatID, action); err != nil {
		s.logger.Warn("failed to log action",
			zap.Int64("chat_id", chatID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
