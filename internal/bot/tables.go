package bot

import (
	"sync"

	"blackjack/internal/history"
	"blackjack/internal/table"

	"github.com/shopspring/decimal"
)

// seat связывает чат с его сессией и столом: у каждой сессии свой шуз.
// mu держит один активный раунд на чат.
type seat struct {
	table   *table.Table
	session *history.Session

	mu      sync.Mutex
	lastBet decimal.Decimal
}

func (s *seat) bet() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBet
}

// Manager хранит активные места по чатам: одна активная сессия на чат,
// новая заменяет старую.
type Manager struct {
	seats map[int64]*seat
	mu    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		seats: make(map[int64]*seat),
	}
}

func (m *Manager) Get(chatID int64) *seat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seats[chatID]
}

func (m *Manager) Set(chatID int64, s *seat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seats[chatID] = s
}

func (m *Manager) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seats, chatID)
}
