package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
	"github.com/kiruha311/micro-learning-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db       postgres.DBTX
	calendar entities.Calendar
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX, calendar entities.Calendar) *UserRepository {
	return &UserRepository{db: db, calendar: calendar}
}

// Upsert inserts a new user or overwrites the profile of an existing one.
// The user is always re-activated; registered_at is kept from the first insert.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (chat_id, username, first_name, last_name, registered_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (chat_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_active = TRUE
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		user.ChatID,
		optionalText(user.Username),
		optionalText(user.FirstName),
		optionalText(user.LastName),
		r.calendar.Now(),
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}

	return created, nil
}

// Deactivate turns off the daily broadcast. Unknown chats are left alone.
func (r *UserRepository) Deactivate(ctx context.Context, chatID int64) error {
	query := "UPDATE users SET is_active = FALSE WHERE chat_id = $1"

	if _, err := r.db.Exec(ctx, query, chatID); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	return nil
}

// ListActive returns chat IDs of all active users.
func (r *UserRepository) ListActive(ctx context.Context) ([]int64, error) {
	query := "SELECT chat_id FROM users WHERE is_active"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan active users: %w", err)
	}

	return ids, nil
}

// GetByChatID retrieves a user by chat ID.
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.User, error) {
	query := `
		SELECT chat_id, username, first_name, last_name, registered_at, is_active
		FROM users
		WHERE chat_id = $1
	`

	var (
		user                          entities.User
		username, firstName, lastName pgtype.Text
	)
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&user.ChatID,
		&username,
		&firstName,
		&lastName,
		&user.RegisteredAt,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Username = username.String
	user.FirstName = firstName.String
	user.LastName = lastName.String

	return &user, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
