package telegram

import (
	"context"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// Notifier renders article payloads and sends them through a Messenger.
type Notifier struct {
	messenger Messenger
}

func NewNotifier(messenger Messenger) *Notifier {
	return &Notifier{messenger: messenger}
}

// SendArticle disables the link preview when the article has a url.
func (n *Notifier) SendArticle(ctx context.Context, chatID int64, payload entities.ArticlePayload) error {
	opts := SendOptions{DisablePreview: !payload.Article.IsPlaceholder()}
	return n.messenger.SendText(ctx, chatID, renderArticle(payload), opts)
}
