package repository

import (
	"context"
	"fmt"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres"
)

// ActionRepository appends to the statistics table.
type ActionRepository struct {
	db       postgres.DBTX
	calendar entities.Calendar
}

func NewActionRepository(db postgres.DBTX, calendar entities.Calendar) *ActionRepository {
	return &ActionRepository{db: db, calendar: calendar}
}

func (r *ActionRepository) Log(ctx context.Context, chatID int64, action entities.ActionType) error {
	query := "INSERT INTO statistics (chat_id, action_type, action_date) VALUES ($1, $2, $3)"

	if _, err := r.db.Exec(ctx, query, chatID, string(action), toDate(r.calendar.Today())); err != nil {
		return fmt.Errorf("log action: %w", err)
	}

	return nil
}
