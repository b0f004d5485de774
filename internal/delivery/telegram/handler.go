package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

type Handler struct {
	messenger      Messenger
	logger         *zap.Logger
	userService    UserService
	historyService HistoryService
	deliverer      Deliverer
	dailyAt        string
}

// NewHandler creates a command handler. dailyAt is the broadcast time shown
// in the welcome text.
func NewHandler(
	messenger Messenger,
	logger *zap.Logger,
	userService UserService,
	historyService HistoryService,
	deliverer Deliverer,
	dailyAt string,
) *Handler {
	return &Handler{
		messenger:      messenger,
		logger:         logger,
		userService:    userService,
		historyService: historyService,
		deliverer:      deliverer,
		dailyAt:        dailyAt,
	}
}

// Run handles updates one at a time until ctx is done or the channel closes.
func (h *Handler) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		h.logger.Debug("update without message")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		h.sendText(ctx, update.Message.Chat.ID, msgHelp())
		return
	}

	h.HandleCommand(ctx, commandFromMessage(update.Message))
}

func commandFromMessage(m *tgbotapi.Message) entities.Command {
	cmd := entities.Command{
		Name:   strings.ToLower(m.Command()),
		Args:   m.CommandArguments(),
		ChatID: m.Chat.ID,
	}
	if m.From != nil {
		cmd.Username = m.From.UserName
		cmd.FirstName = m.From.FirstName
		cmd.LastName = m.From.LastName
	}
	return cmd
}

// HandleCommand dispatches a parsed command.
func (h *Handler) HandleCommand(ctx context.Context, cmd entities.Command) {
	var fn HandlerFunc

	switch cmd.Name {
	case "start":
		fn = h.handleStart(cmd)
	case "random":
		fn = h.handleRandom()
	case "stop_daily":
		fn = h.handleStopDaily()
	case "history":
		fn = h.handleHistory()
	case "stats":
		fn = h.handleStats()
	case "random_from_history":
		fn = h.handleRandomFromHistory()
	case "help":
		fn = h.handleHelp()
	default:
		fn = h.handleUnknown()
	}

	_ = h.withErrorHandling(fn)(ctx, cmd.ChatID)
}

func (h *Handler) sendError(ctx context.Context, chatID int64, text string) {
	h.sendText(ctx, chatID, md(text))
}

// sendText sends a message and only logs a failure.
func (h *Handler) sendText(ctx context.Context, chatID int64, text string) {
	if err := h.messenger.SendText(ctx, chatID, text, SendOptions{}); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
