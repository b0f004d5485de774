package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// OverviewRepository reads bot-wide counters for the status endpoint.
type OverviewRepository struct {
	db       *sql.DB
	calendar entities.Calendar
}

func NewOverviewRepository(db *sql.DB, calendar entities.Calendar) *OverviewRepository {
	return &OverviewRepository{db: db, calendar: calendar}
}

func (r *OverviewRepository) Overview(ctx context.Context) (*entities.Overview, error) {
	var o entities.Overview
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = 1),
			(SELECT COUNT(*) FROM sent_articles WHERE sent_date = ?)`,
		formatDate(r.calendar.Today()),
	).Scan(&o.Users, &o.ActiveUsers, &o.DeliveredToday)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	return &o, nil
}
