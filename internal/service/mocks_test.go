package service

import (
	"context"
	"errors"
	"sync"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

var errStorage = errors.New("storage unavailable")

// MockUserRepository keeps users in memory.
type MockUserRepository struct {
	mu      sync.Mutex
	users   map[int64]*entities.User
	listErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[int64]*entities.User)}
}

func (m *MockUserRepository) Upsert(_ context.Context, user *entities.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.users[user.ChatID]
	u := *user
	u.IsActive = true
	m.users[user.ChatID] = &u
	return !exists, nil
}

func (m *MockUserRepository) Deactivate(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[chatID]; ok {
		u.IsActive = false
	}
	return nil
}

func (m *MockUserRepository) ListActive(_ context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var ids []int64
	for id, u := range m.users {
		if u.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type sentKey struct {
	chatID int64
	url    string
}

// MockSentArticleRepository is a single-day delivery log.
type MockSentArticleRepository struct {
	mu        sync.Mutex
	rows      map[sentKey]entities.Article
	order     []sentKey
	recordErr error
	checkErr  error
	records   int
}

func NewMockSentArticleRepository() *MockSentArticleRepository {
	return &MockSentArticleRepository{rows: make(map[sentKey]entities.Article)}
}

func (m *MockSentArticleRepository) Record(_ context.Context, chatID int64, article entities.Article) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records++
	if m.recordErr != nil {
		return false, m.recordErr
	}
	k := sentKey{chatID: chatID, url: article.URL}
	if _, ok := m.rows[k]; ok {
		return false, nil
	}
	m.rows[k] = article
	m.order = append(m.order, k)
	return true, nil
}

func (m *MockSentArticleRepository) WasDeliveredToday(_ context.Context, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.checkErr != nil {
		return false, m.checkErr
	}
	for k := range m.rows {
		if k.chatID == chatID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSentArticleRepository) RecentHistory(_ context.Context, chatID int64, limit int) ([]entities.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []entities.HistoryEntry
	for i := len(m.order) - 1; i >= 0 && len(entries) < limit; i-- {
		k := m.order[i]
		if k.chatID != chatID {
			continue
		}
		a := m.rows[k]
		entries = append(entries, entities.HistoryEntry{Title: a.Title, URL: a.URL})
	}
	return entries, nil
}

func (m *MockSentArticleRepository) Stats(_ context.Context, chatID int64) (*entities.UserStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &entities.UserStats{}
	for k := range m.rows {
		if k.chatID == chatID {
			stats.Total++
			stats.LastWeek++
		}
	}
	return stats, nil
}

func (m *MockSentArticleRepository) RandomArticle(_ context.Context, chatID int64) (*entities.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range m.order {
		if k.chatID == chatID {
			a := m.rows[k]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *MockSentArticleRepository) count(chatID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.rows {
		if k.chatID == chatID {
			n++
		}
	}
	return n
}

// MockActionRepository collects logged actions.
type MockActionRepository struct {
	mu      sync.Mutex
	actions []entities.ActionType
	err     error
}

func (m *MockActionRepository) Log(_ context.Context, _ int64, action entities.ActionType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.actions = append(m.actions, action)
	return nil
}

// MockArticleSource returns a fixed sequence of articles, repeating the last one.
type MockArticleSource struct {
	mu       sync.Mutex
	articles []entities.Article
	calls    int
}

func (m *MockArticleSource) FetchRandom(_ context.Context) entities.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.calls
	if i >= len(m.articles) {
		i = len(m.articles) - 1
	}
	m.calls++
	return m.articles[i]
}

func (m *MockArticleSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockNotifier records sent payloads and fails for selected chats.
type MockNotifier struct {
	mu     sync.Mutex
	sent   map[int64][]entities.ArticlePayload
	failOn map[int64]bool
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		sent:   make(map[int64][]entities.ArticlePayload),
		failOn: make(map[int64]bool),
	}
}

func (m *MockNotifier) SendArticle(_ context.Context, chatID int64, payload entities.ArticlePayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[chatID] {
		return errors.New("chat not found")
	}
	m.sent[chatID] = append(m.sent[chatID], payload)
	return nil
}

func (m *MockNotifier) SentTo(chatID int64) []entities.ArticlePayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[chatID]
}
