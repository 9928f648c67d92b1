package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/balance"
)

type store struct {
	mu      sync.Mutex
	records map[string]*balance.Record
	last    uint64
}

func New() balance.Store {
	return &store{
		records: make(map[string]*balance.Record),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make(map[string]*balance.Record)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) Put(_ context.Context, data *balance.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[data.TokenAccount]; ok {
		return balance.ErrAccountExists
	}

	s.last++
	data.Id = s.last
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.records[data.TokenAccount] = &cloned

	return nil
}

func (s *store) Get(_ context.Context, tokenAccount string) (*balance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.records[tokenAccount]; ok {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, balance.ErrAccountNotFound
}

func (s *store) Deposit(_ context.Context, tokenAccount string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.records[tokenAccount]
	if !ok {
		return balance.ErrAccountNotFound
	}

	item.Amount += amount
	item.LastUpdatedAt = time.Now()

	return nil
}

func (s *store) Transfer(_ context.Context, source, destination string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.records[source]
	if !ok {
		return balance.ErrAccountNotFound
	}

	dst, ok := s.records[destination]
	if !ok {
		return balance.ErrAccountNotFound
	}

	if src.Amount < amount {
		return balance.ErrInsufficientFunds
	}

	src.Amount -= amount
	dst.Amount += amount

	now := time.Now()
	src.LastUpdatedAt = now
	dst.LastUpdatedAt = now

	return nil
}
