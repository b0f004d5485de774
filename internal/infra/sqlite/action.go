package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

// ActionRepository appends to the statistics table.
type ActionRepository struct {
	db       *sql.DB
	calendar entities.Calendar
}

func NewActionRepository(db *sql.DB, calendar entities.Calendar) *ActionRepository {
	return &ActionRepository{db: db, calendar: calendar}
}

func (r *ActionRepository) Log(ctx context.Context, chatID int64, action entities.ActionType) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO statistics (chat_id, action_type, action_date) VALUES (?, ?, ?)",
		chatID, string(action), formatDate(r.calendar.Today()),
	)
	if err != nil {
		return fmt.Errorf("log action: %w", err)
	}
	return nil
}
