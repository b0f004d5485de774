package service

import (
	"context"
	"fmt"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// HistoryService reads the delivery log on behalf of a user.
type HistoryService struct {
	repository SentArticleRepository
	limit      int
}

func NewHistoryService(repository SentArticleRepository, limit int) *HistoryService {
	if limit <= 0 {
		limit = 5
	}
	return &HistoryService{repository: repository, limit: limit}
}

// Recent returns the latest deliveries, newest first.
func (s *HistoryService) Recent(ctx context.Context, chatID int64) ([]entities.HistoryEntry, error) {
	entries, err := s.repository.RecentHistory(ctx, chatID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}

	return entries, nil
}

func (s *HistoryService) Stats(ctx context.Context, chatID int64) (*entities.UserStats, error) {
	stats, err := s.repository.Stats(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return stats, nil
}

// RandomFromHistory returns nil when nothing was delivered yet.
func (s *HistoryService) RandomFromHistory(ctx context.Context, chatID int64) (*entities.Article, error) {
	article, err := s.repository.RandomArticle(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("random from history: %w", err)
	}

	return article, nil
}
