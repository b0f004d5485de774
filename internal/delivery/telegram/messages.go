// messages.go contains message templates for Telegram.

package telegram

import (
	"fmt"
	"strings"
)

// Plain texts. They are escaped with md before sending.
const (
	msgStopDaily = "🛑 Ежедневная рассылка остановлена. Чтобы возобновить, напиши /start.\n" +
		"Ты по-прежнему можешь использовать /random для случайных статей."
	msgHistoryEmpty   = "📝 История пуста. Начните с команды /random!"
	msgInternalError  = "Что‑то пошло не так. Попробуйте позже."
	msgUnknownCommand = "Неизвестная команда."
	msgReadMore       = "Читать полностью"
	msgFirstArticle   = "Первая статья:"
)

type menuItem struct {
	name        string
	description string
}

// commandMenu is both the help text and the list registered with Telegram.
var commandMenu = []menuItem{
	{"start", "начать работу"},
	{"random", "случайная статья"},
	{"history", "история статей"},
	{"stats", "статистика"},
	{"random_from_history", "случайная статья из истории"},
	{"stop_daily", "остановить рассылку"},
	{"help", "список команд"},
}

func commandList() string {
	var b strings.Builder
	b.WriteString("Доступные команды:\n")
	for _, c := range commandMenu {
		fmt.Fprintf(&b, "/%s - %s\n", c.name, c.description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func msgHelp() string {
	return md(commandList())
}

func msgWelcome(dailyAt string) string {
	text := fmt.Sprintf(
		"👋 Привет! Я буду присылать тебе случайные статьи из Википедии каждый день в %s.\n\n%s\n\n%s",
		dailyAt,
		commandList(),
		msgFirstArticle,
	)
	return md(text)
}
