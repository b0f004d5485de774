package telegram

import (
	"context"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// Messenger sends text to a chat.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error
}

type UserService interface {
	Subscribe(ctx context.Context, chatID int64, username, firstName, lastName string) error
	Unsubscribe(ctx context.Context, chatID int64) error
	LogAction(ctx context.Context, chatID int64, action entities.ActionType)
}

type HistoryService interface {
	Recent(ctx context.Context, chatID int64) ([]entities.HistoryEntry, error)
	Stats(ctx context.Context, chatID int64) (*entities.UserStats, error)
	RandomFromHistory(ctx context.Context, chatID int64) (*entities.Article, error)
}

type Deliverer interface {
	Deliver(ctx context.Context, chatID int64, kind entities.ArticleKind) entities.DeliveryResult
}
