package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SendOptions tunes a single outgoing message.
type SendOptions struct {
	DisablePreview bool
}

// Bot wraps the Bot API client and throttles outgoing messages.
type Bot struct {
	api     *tgbotapi.BotAPI
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewBot authorizes against the Bot API. ratePerSecond bounds outgoing
// messages across all chats.
func NewBot(token string, ratePerSecond int, debug bool, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	api.Debug = debug

	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}

	logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		logger:  logger,
	}, nil
}

// SendText sends a MarkdownV2 message, waiting for the rate limiter first.
func (b *Bot) SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for send slot: %w", err)
	}

	msg := newMessage(chatID, text)
	msg.DisableWebPagePreview = opts.DisablePreview

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}

	return nil
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (b *Bot) RegisterCommands() error {
	cmds := make([]tgbotapi.BotCommand, 0, len(commandMenu))
	for _, c := range commandMenu {
		cmds = append(cmds, tgbotapi.BotCommand{Command: c.name, Description: c.description})
	}

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(cmds...)); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}

	return nil
}

// Updates starts long polling.
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return b.api.GetUpdatesChan(u)
}

func (b *Bot) StopUpdates() {
	b.api.StopReceivingUpdates()
}
