package entities

import "time"

// PlaceholderTitle is used when a random article could not be loaded.
const PlaceholderTitle = "Ошибка загрузки статьи"

// Article is a short encyclopedia article summary.
type Article struct {
	Title   string
	URL     string
	Summary string
}

// IsPlaceholder reports whether the article stands in for a failed fetch.
func (a Article) IsPlaceholder() bool {
	return a.URL == ""
}

// NewPlaceholderArticle builds the article substituted for a failed fetch.
func NewPlaceholderArticle(reason string) Article {
	return Article{
		Title:   PlaceholderTitle,
		URL:     "",
		Summary: "Не удалось получить статью: " + reason + ". Попробуй позже или проверь интернет.",
	}
}

// SentArticle is a delivery log entry. The tuple (ChatID, URL, SentDate)
// is unique.
type SentArticle struct {
	ChatID   int64
	Article  Article
	SentDate time.Time // calendar date, midnight in the bot's timezone
	SentAt   time.Time
}

// HistoryEntry is a row of the user's reading history.
type HistoryEntry struct {
	Title    string
	URL      string
	SentDate time.Time
}
