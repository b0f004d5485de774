package entities

import "time"

// User represents a bot subscriber.
type User struct {
	ChatID       int64 // Telegram chat ID
	Username     string
	FirstName    string
	LastName     string
	RegisteredAt time.Time
	IsActive     bool // receives the daily broadcast
}

func NewUser(chatID int64, username, firstName, lastName string) *User {
	return &User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
}
