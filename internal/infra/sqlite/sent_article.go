package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// SentArticleRepository is the delivery log on SQLite.
type SentArticleRepository struct {
	db       *sql.DB
	calendar entities.Calendar
}

func NewSentArticleRepository(db *sql.DB, calendar entities.Calendar) *SentArticleRepository {
	return &SentArticleRepository{db: db, calendar: calendar}
}

// Record logs a delivery for today. It returns false when the same URL was
// already logged for the chat today.
func (r *SentArticleRepository) Record(ctx context.Context, chatID int64, article entities.Article) (bool, error) {
	now := r.calendar.Now()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sent_articles (chat_id, title, url, summary, sent_date, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id, url, sent_date) DO NOTHING`,
		chatID,
		article.Title,
		article.URL,
		article.Summary,
		formatDate(r.calendar.DateOf(now)),
		now.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("record delivery: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record delivery: %w", err)
	}

	return n == 1, nil
}

// WasDeliveredToday checks if anything was logged for the chat today.
func (r *SentArticleRepository) WasDeliveredToday(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM sent_articles WHERE chat_id = ? AND sent_date = ?)",
		chatID, formatDate(r.calendar.Today()),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check today's delivery: %w", err)
	}
	return exists, nil
}

// RecentHistory returns at most limit entries, newest first.
func (r *SentArticleRepository) RecentHistory(ctx context.Context, chatID int64, limit int) ([]entities.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, url, sent_date
		FROM sent_articles
		WHERE chat_id = ?
		ORDER BY sent_date DESC, sent_at DESC, id DESC
		LIMIT ?`,
		chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	var entries []entities.HistoryEntry
	for rows.Next() {
		var (
			e    entities.HistoryEntry
			date string
		)
		if err := rows.Scan(&e.Title, &e.URL, &date); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if e.SentDate, err = parseDate(date); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats aggregates the chat's delivery log inside one read transaction.
func (r *SentArticleRepository) Stats(ctx context.Context, chatID int64) (*entities.UserStats, error) {
	weekAgo := r.calendar.Today().AddDate(0, 0, -7)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stats entities.UserStats
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sent_articles WHERE chat_id = ?", chatID,
	).Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("count total: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sent_articles WHERE chat_id = ? AND sent_date >= ?",
		chatID, formatDate(weekAgo),
	).Scan(&stats.LastWeek)
	if err != nil {
		return nil, fmt.Errorf("count last week: %w", err)
	}

	var fav entities.TitleCount
	err = tx.QueryRowContext(ctx, `
		SELECT title, COUNT(*) AS cnt
		FROM sent_articles
		WHERE chat_id = ?
		GROUP BY title
		ORDER BY cnt DESC
		LIMIT 1`,
		chatID,
	).Scan(&fav.Title, &fav.Count)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("favorite title: %w", err)
	default:
		stats.Favorite = &fav
	}

	return &stats, nil
}

// RandomArticle picks one logged article uniformly. It returns nil when the
// history is empty.
func (r *SentArticleRepository) RandomArticle(ctx context.Context, chatID int64) (*entities.Article, error) {
	var a entities.Article
	err := r.db.QueryRowContext(ctx, `
		SELECT title, url, summary
		FROM sent_articles
		WHERE chat_id = ?
		ORDER BY RANDOM()
		LIMIT 1`,
		chatID,
	).Scan(&a.Title, &a.URL, &a.Summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get random article: %w", err)
	}

	return &a, nil
}

func formatDate(d time.Time) string {
	return d.Format(entities.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(entities.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}
