package server

import (
	"context"
	"sort"
	"sync"

	"github.com/arjunmehra/folio/internal/interfaces"
	"github.com/arjunmehra/folio/internal/models"
)

// memStorage is an in-memory StorageManager for handler tests.
type memStorage struct {
	mu         sync.Mutex
	users      map[string]*models.User
	portfolios map[string]*models.Portfolio
	holdings   map[string]*models.Holding
	trades     map[string]*models.Trade
	alerts     map[string]*models.Alert
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:      make(map[string]*models.User),
		portfolios: make(map[string]*models.Portfolio),
		holdings:   make(map[string]*models.Holding),
		trades:     make(map[string]*models.Trade),
		alerts:     make(map[string]*models.Alert),
	}
}

func (m *memStorage) Users() interfaces.UserStore           { return (*memUserStore)(m) }
func (m *memStorage) Portfolios() interfaces.PortfolioStore { return (*memPortfolioStore)(m) }
func (m *memStorage) Holdings() interfaces.HoldingStore     { return (*memHoldingStore)(m) }
func (m *memStorage) Trades() interfaces.TradeStore         { return (*memTradeStore)(m) }
func (m *memStorage) Alerts() interfaces.AlertStore         { return (*memAlertStore)(m) }
func (m *memStorage) Close() error                          { return nil }

type memUserStore memStorage

func (s *memUserStore) Save(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *u
	s.users[u.UserID] = &copied
	return nil
}

func (s *memUserStore) Get(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

type memPortfolioStore memStorage

func (s *memPortfolioStore) Save(_ context.Context, p *models.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *p
	s.portfolios[p.ID] = &copied
	return nil
}

func (s *memPortfolioStore) Get(_ context.Context, id string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.portfolios[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (s *memPortfolioStore) ListByUser(_ context.Context, userID string) ([]*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []*models.Portfolio{}
	for _, p := range s.portfolios {
		if p.UserID == userID {
			copied := *p
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *memPortfolioStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.portfolios, id)
	return nil
}

type memHoldingStore memStorage

func (s *memHoldingStore) Save(_ context.Context, h *models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *h
	s.holdings[h.ID] = &copied
	return nil
}

func (s *memHoldingStore) Get(_ context.Context, id string) (*models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.holdings[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, nil
}

func (s *memHoldingStore) ListByPortfolio(_ context.Context, portfolioID string) ([]*models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []*models.Holding{}
	for _, h := range s.holdings {
		if h.PortfolioID == portfolioID {
			copied := *h
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Symbol < list[j].Symbol })
	return list, nil
}

func (s *memHoldingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holdings, id)
	return nil
}

func (s *memHoldingStore) DeleteByPortfolio(_ context.Context, portfolioID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, h := range s.holdings {
		if h.PortfolioID == portfolioID {
			delete(s.holdings, id)
			count++
		}
	}
	return count, nil
}

type memTradeStore memStorage

func (s *memTradeStore) Save(_ context.Context, t *models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *t
	s.trades[t.ID] = &copied
	return nil
}

func (s *memTradeStore) Get(_ context.Context, id string) (*models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.trades[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (s *memTradeStore) ListByPortfolio(_ context.Context, portfolioID string) ([]*models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []*models.Trade{}
	for _, t := range s.trades {
		if t.PortfolioID == portfolioID {
			copied := *t
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TradeDate.Before(list[j].TradeDate) })
	return list, nil
}

func (s *memTradeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trades, id)
	return nil
}

func (s *memTradeStore) DeleteByPortfolio(_ context.Context, portfolioID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, t := range s.trades {
		if t.PortfolioID == portfolioID {
			delete(s.trades, id)
			count++
		}
	}
	return count, nil
}

type memAlertStore memStorage

func (s *memAlertStore) Save(_ context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *a
	s.alerts[a.ID] = &copied
	return nil
}

func (s *memAlertStore) Get(_ context.Context, id string) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.alerts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (s *memAlertStore) ListByUser(_ context.Context, userID string) ([]*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []*models.Alert{}
	for _, a := range s.alerts {
		if a.UserID == userID {
			copied := *a
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *memAlertStore) ListActive(_ context.Context) ([]*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []*models.Alert{}
	for _, a := range s.alerts {
		if a.Status == models.AlertActive {
			copied := *a
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *memAlertStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.alerts, id)
	return nil
}

var _ interfaces.StorageManager = (*memStorage)(nil)
