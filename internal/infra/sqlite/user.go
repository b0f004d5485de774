package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository implements user persistence on SQLite.
type UserRepository struct {
	db       *sql.DB
	calendar entities.Calendar
}

func NewUserRepository(db *sql.DB, calendar entities.Calendar) *UserRepository {
	return &UserRepository{db: db, calendar: calendar}
}

// Upsert inserts a new user or overwrites the profile of an existing one.
// The user is always re-activated; registered_at is kept from the first insert.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE chat_id = ?)", user.ChatID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (chat_id, username, first_name, last_name, registered_at, is_active)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(chat_id) DO UPDATE SET
			username   = excluded.username,
			first_name = excluded.first_name,
			last_name  = excluded.last_name,
			is_active  = 1`,
		user.ChatID,
		nullString(user.Username),
		nullString(user.FirstName),
		nullString(user.LastName),
		r.calendar.Now().UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}

	return !exists, nil
}

// Deactivate turns off the daily broadcast. Unknown chats are left alone.
func (r *UserRepository) Deactivate(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET is_active = 0 WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

// ListActive returns chat IDs of all active users.
func (r *UserRepository) ListActive(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT chat_id FROM users WHERE is_active = 1")
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan active user: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetByChatID retrieves a user by chat ID.
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.User, error) {
	var (
		user                          entities.User
		username, firstName, lastName sql.NullString
		registeredAt                  int64
		active                        int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT chat_id, username, first_name, last_name, registered_at, is_active
		FROM users
		WHERE chat_id = ?`,
		chatID,
	).Scan(&user.ChatID, &username, &firstName, &lastName, &registeredAt, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Username = username.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.RegisteredAt = time.Unix(0, registeredAt).In(r.calendar.Location())
	user.IsActive = active != 0

	return &user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
