package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres"
)

// SentArticleRepository is the delivery log.
type SentArticleRepository struct {
	db       postgres.DBTX
	tx       *postgres.Transactor
	calendar entities.Calendar
}

// NewSentArticleRepository creates a new SentArticleRepository.
func NewSentArticleRepository(db postgres.DBTX, tx *postgres.Transactor, calendar entities.Calendar) *SentArticleRepository {
	return &SentArticleRepository{db: db, tx: tx, calendar: calendar}
}

// Record logs a delivery for today. It returns false when the same URL was
// already logged for the chat today.
func (r *SentArticleRepository) Record(ctx context.Context, chatID int64, article entities.Article) (bool, error) {
	query := `
		INSERT INTO sent_articles (chat_id, title, url, summary, sent_date, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id, url, sent_date) DO NOTHING
	`

	now := r.calendar.Now()
	tag, err := r.db.Exec(ctx, query,
		chatID,
		article.Title,
		article.URL,
		article.Summary,
		toDate(r.calendar.DateOf(now)),
		now,
	)
	if err != nil {
		return false, fmt.Errorf("record delivery: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// WasDeliveredToday checks if anything was logged for the chat today.
func (r *SentArticleRepository) WasDeliveredToday(ctx context.Context, chatID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM sent_articles WHERE chat_id = $1 AND sent_date = $2)"

	var exists bool
	err := r.db.QueryRow(ctx, query, chatID, toDate(r.calendar.Today())).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check today's delivery: %w", err)
	}

	return exists, nil
}

// RecentHistory returns at most limit entries, newest first.
func (r *SentArticleRepository) RecentHistory(ctx context.Context, chatID int64, limit int) ([]entities.HistoryEntry, error) {
	query := `
		SELECT title, url, sent_date
		FROM sent_articles
		WHERE chat_id = $1
		ORDER BY sent_date DESC, sent_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	var entries []entities.HistoryEntry
	for rows.Next() {
		var (
			e    entities.HistoryEntry
			date pgtype.Date
		)
		if err := rows.Scan(&e.Title, &e.URL, &date); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.SentDate = date.Time
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Stats aggregates the chat's delivery log from a single snapshot.
func (r *SentArticleRepository) Stats(ctx context.Context, chatID int64) (*entities.UserStats, error) {
	weekAgo := r.calendar.Today().AddDate(0, 0, -7)

	var stats entities.UserStats
	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM sent_articles WHERE chat_id = $1",
			chatID,
		).Scan(&stats.Total)
		if err != nil {
			return fmt.Errorf("count total: %w", err)
		}

		err = tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM sent_articles WHERE chat_id = $1 AND sent_date >= $2",
			chatID, toDate(weekAgo),
		).Scan(&stats.LastWeek)
		if err != nil {
			return fmt.Errorf("count last week: %w", err)
		}

		var fav entities.TitleCount
		err = tx.QueryRow(ctx, `
			SELECT title, COUNT(*) AS cnt
			FROM sent_articles
			WHERE chat_id = $1
			GROUP BY title
			ORDER BY cnt DESC
			LIMIT 1`,
			chatID,
		).Scan(&fav.Title, &fav.Count)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
		case err != nil:
			return fmt.Errorf("favorite title: %w", err)
		default:
			stats.Favorite = &fav
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	return &stats, nil
}

// RandomArticle picks one logged article uniformly. It returns nil when the
// history is empty.
func (r *SentArticleRepository) RandomArticle(ctx context.Context, chatID int64) (*entities.Article, error) {
	query := `
		SELECT title, url, summary
		FROM sent_articles
		WHERE chat_id = $1
		ORDER BY random()
		LIMIT 1
	`

	var a entities.Article
	err := r.db.QueryRow(ctx, query, chatID).Scan(&a.Title, &a.URL, &a.Summary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get random article: %w", err)
	}

	return &a, nil
}

func toDate(d time.Time) pgtype.Date {
	return pgtype.Date{Time: d, Valid: true}
}
