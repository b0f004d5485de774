package service

import (
	"context"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// UserRepository persists subscribers.
type UserRepository interface {
	// Upsert reports whether a new user was created.
	Upsert(ctx context.Context, user *entities.User) (bool, error)
	Deactivate(ctx context.Context, chatID int64) error
	ListActive(ctx context.Context) ([]int64, error)
}

// SentArticleRepository is the deduplicated delivery log.
type SentArticleRepository interface {
	// Record returns false without an error when the article was already
	// logged for the chat today.
	Record(ctx context.Context, chatID int64, article entities.Article) (bool, error)
	WasDeliveredToday(ctx context.Context, chatID int64) (bool, error)
	RecentHistory(ctx context.Context, chatID int64, limit int) ([]entities.HistoryEntry, error)
	Stats(ctx context.Context, chatID int64) (*entities.UserStats, error)
	// RandomArticle returns nil without an error when the history is empty.
	RandomArticle(ctx context.Context, chatID int64) (*entities.Article, error)
}

// ActionRepository appends usage records.
type ActionRepository interface {
	Log(ctx context.Context, chatID int64, action entities.ActionType) error
}

// ArticleSource fetches a random article. Failures are returned as a
// placeholder article, never as an error.
type ArticleSource interface {
	FetchRandom(ctx context.Context) entities.Article
}

// ArticleNotifier renders and sends an article to a chat.
type ArticleNotifier interface {
	SendArticle(ctx context.Context, chatID int64, payload entities.ArticlePayload) error
}

// Deliverer sends one article to one chat.
type Deliverer interface {
	Deliver(ctx context.Context, chatID int64, kind entities.ArticleKind) entities.DeliveryResult
}
