package telegram

import (
	"fmt"
	"strings"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

var kindEmoji = map[entities.ArticleKind]string{
	entities.ArticleKindWelcome: "🎉",
	entities.ArticleKindRandom:  "📖",
	entities.ArticleKindDaily:   "🌅",
}

// renderArticle formats an article: title, summary and, when the url is
// known, a link to the full text.
func renderArticle(payload entities.ArticlePayload) string {
	emoji, ok := kindEmoji[payload.Kind]
	if !ok {
		emoji = "📖"
	}

	a := payload.Article
	text := md(emoji+" ") + bold(a.Title) + "\n\n" + md(a.Summary)
	if !a.IsPlaceholder() {
		text += "\n\n" + link(msgReadMore, a.URL)
	}

	return text
}

func renderHistoryArticle(a entities.Article) string {
	text := bold("🔀 Случайная из истории:") + "\n\n" + bold(a.Title) + "\n\n" + md(a.Summary)
	if !a.IsPlaceholder() {
		text += "\n\n" + link(msgReadMore, a.URL)
	}

	return text
}

// renderHistory formats entries as "N. title - YYYY-MM-DD". Placeholder
// rows have no url and are shown without a link.
func renderHistory(entries []entities.HistoryEntry) string {
	var b strings.Builder
	b.WriteString(bold("📚 Последние статьи:"))
	b.WriteString("\n\n")

	for i, e := range entries {
		title := md(e.Title)
		if e.URL != "" {
			title = link(e.Title, e.URL)
		}
		fmt.Fprintf(&b, "%s %s %s\n\n",
			md(fmt.Sprintf("%d.", i+1)),
			title,
			md("- "+e.SentDate.Format(entities.DateLayout)),
		)
	}

	return strings.TrimSuffix(b.String(), "\n\n")
}

func renderStats(s *entities.UserStats) string {
	lines := []string{
		bold("📊 Ваша статистика:"),
		"",
		md(fmt.Sprintf("📖 Всего статей прочитано: %d", s.Total)),
		md(fmt.Sprintf("📅 Статей за последнюю неделю: %d", s.LastWeek)),
	}
	if s.Favorite != nil {
		lines = append(lines, md(fmt.Sprintf("⭐ Самая частая тема: \"%s\" (%d раз)", s.Favorite.Title, s.Favorite.Count)))
	}

	return strings.Join(lines, "\n")
}
