package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres"
)

// OverviewRepository reads bot-wide counters for the status endpoint.
type OverviewRepository struct {
	tx       *postgres.Transactor
	calendar entities.Calendar
}

func NewOverviewRepository(tx *postgres.Transactor, calendar entities.Calendar) *OverviewRepository {
	return &OverviewRepository{tx: tx, calendar: calendar}
}

func (r *OverviewRepository) Overview(ctx context.Context) (*entities.Overview, error) {
	var o entities.Overview
	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users",
		).Scan(&o.Users, &o.ActiveUsers)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		err = tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM sent_articles WHERE sent_date = $1",
			toDate(r.calendar.Today()),
		).Scan(&o.DeliveredToday)
		if err != nil {
			return fmt.Errorf("count deliveries: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	return &o, nil
}
