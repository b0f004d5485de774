package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

var errDeliveryFailed = errors.New("article delivery failed")

// handleStart subscribes the chat and sends the welcome text followed by
// the first article.
func (h *Handler) handleStart(cmd entities.Command) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.userService.Subscribe(ctx, chatID, cmd.Username, cmd.FirstName, cmd.LastName); err != nil {
			return err
		}
		h.userService.LogAction(ctx, chatID, entities.ActionStart)

		h.sendText(ctx, chatID, msgWelcome(h.dailyAt))

		return h.deliver(ctx, chatID, entities.ArticleKindWelcome)
	}
}

func (h *Handler) handleRandom() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.userService.LogAction(ctx, chatID, entities.ActionRandom)
		return h.deliver(ctx, chatID, entities.ArticleKindRandom)
	}
}

func (h *Handler) handleStopDaily() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.userService.LogAction(ctx, chatID, entities.ActionStopDaily)

		if err := h.userService.Unsubscribe(ctx, chatID); err != nil {
			return err
		}

		h.sendText(ctx, chatID, md(msgStopDaily))
		return nil
	}
}

func (h *Handler) handleHistory() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.userService.LogAction(ctx, chatID, entities.ActionHistory)

		entries, err := h.historyService.Recent(ctx, chatID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			h.sendText(ctx, chatID, md(msgHistoryEmpty))
			return nil
		}

		return h.messenger.SendText(ctx, chatID, renderHistory(entries), SendOptions{DisablePreview: true})
	}
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.userService.LogAction(ctx, chatID, entities.ActionStats)

		stats, err := h.historyService.Stats(ctx, chatID)
		if err != nil {
			return err
		}

		h.sendText(ctx, chatID, renderStats(stats))
		return nil
	}
}

func (h *Handler) handleRandomFromHistory() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.userService.LogAction(ctx, chatID, entities.ActionRandomFromHistory)

		article, err := h.historyService.RandomFromHistory(ctx, chatID)
		if err != nil {
			return err
		}
		if article == nil {
			h.sendText(ctx, chatID, md(msgHistoryEmpty))
			return nil
		}

		opts := SendOptions{DisablePreview: !article.IsPlaceholder()}
		return h.messenger.SendText(ctx, chatID, renderHistoryArticle(*article), opts)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendText(ctx, chatID, msgHelp())
		return nil
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendText(ctx, chatID, md(msgUnknownCommand)+"\n\n"+msgHelp())
		return nil
	}
}

// deliver runs an on-demand delivery. Only a storage fault before the
// send is reported to the user; send failures are already logged.
func (h *Handler) deliver(ctx context.Context, chatID int64, kind entities.ArticleKind) error {
	result := h.deliverer.Deliver(ctx, chatID, kind)

	switch result.Status {
	case entities.StatusFailed:
		if result.Err != nil {
			return errors.Join(errDeliveryFailed, result.Err)
		}
		return errDeliveryFailed
	case entities.StatusSendFailed:
		h.logger.Warn("on-demand delivery not sent",
			zap.Int64("chat_id", chatID),
			zap.String("kind", string(kind)),
			zap.Error(result.Err),
		)
	}

	return nil
}
