package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// DeliveryService sends one article to one chat and records it in the
// delivery log.
type DeliveryService struct {
	sentRepo SentArticleRepository
	source   ArticleSource
	notifier ArticleNotifier
	logger   *zap.Logger
}

// NewDeliveryService creates a new delivery service.
func NewDeliveryService(
	sentRepo SentArticleRepository,
	source ArticleSource,
	logger *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		sentRepo: sentRepo,
		source:   source,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *DeliveryService) SetNotifier(notifier ArticleNotifier) {
	s.notifier = notifier
}

// Deliver fetches a random article and sends it to the chat.
//
// Scheduled deliveries are skipped when the chat already got an article
// today. Send failures are reported in the result and never recorded.
func (s *DeliveryService) Deliver(ctx context.Context, chatID int64, kind entities.ArticleKind) entities.DeliveryResult {
	if kind.Variant() == entities.VariantScheduled {
		sent, err := s.sentRepo.WasDeliveredToday(ctx, chatID)
		if err != nil {
			s.logger.Error("failed to check today's delivery",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return entities.DeliveryResult{
				Status: entities.StatusFailed,
				Err:    fmt.Errorf("check today's delivery: %w", err),
			}
		}
		if sent {
			s.logger.Debug("article already sent today", zap.Int64("chat_id", chatID))
			return entities.DeliveryResult{Status: entities.StatusSkippedAlreadySent}
		}
	}

	article := s.source.FetchRandom(ctx)
	result := entities.DeliveryResult{Article: article}

	if s.notifier == nil {
		s.logger.Error("notifier not set, cannot deliver article")
		result.Status = entities.StatusSendFailed
		result.Err = fmt.Errorf("notifier not initialized")
		return result
	}

	payload := entities.ArticlePayload{Kind: kind, Article: article}
	if err := s.notifier.SendArticle(ctx, chatID, payload); err != nil {
		s.logger.Error("failed to send article",
			zap.Int64("chat_id", chatID),
			zap.String("title", article.Title),
			zap.Error(err),
		)
		result.Status = entities.StatusSendFailed
		result.Err = fmt.Errorf("send article: %w", err)
		return result
	}

	result.Status = entities.StatusDelivered

	recorded, err := s.sentRepo.Record(ctx, chatID, article)
	if err != nil {
		// The user already has the message, so the delivery still counts.
		s.logger.Error("failed to record delivery",
			zap.Int64("chat_id", chatID),
			zap.String("title", article.Title),
			zap.Error(err),
		)
		result.Err = fmt.Errorf("record delivery: %w", err)
		return result
	}
	if !recorded {
		s.logger.Warn("article already recorded today",
			zap.Int64("chat_id", chatID),
			zap.String("title", article.Title),
		)
	}
	result.Recorded = recorded

	s.logger.Info("article delivered",
		zap.Int64("chat_id", chatID),
		zap.String("kind", string(kind)),
		zap.String("title", article.Title),
	)

	return result
}
