package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce"
)

type store struct {
	mu      sync.Mutex
	records map[uint64]*nonce.Record
	last    uint64
}

func New() nonce.Store {
	return &store{
		records: make(map[uint64]*nonce.Record),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make(map[uint64]*nonce.Record)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) Put(_ context.Context, data *nonce.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[data.Nonce]; ok {
		return nonce.ErrNonceAlreadyUsed
	}

	s.last++
	data.Id = s.last
	if data.UsedAt.IsZero() {
		data.UsedAt = time.Now()
	}

	cloned := data.Clone()
	s.records[data.Nonce] = &cloned

	return nil
}

func (s *store) Get(_ context.Context, value uint64) (*nonce.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.records[value]; ok {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, nonce.ErrNonceNotFound
}

func (s *store) Count(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.records)), nil
}

func (s *store) DeleteBefore(_ context.Context, t time.Time) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted uint64
	for value, item := range s.records {
		if item.UsedAt.Before(t) {
			delete(s.records, value)
			deleted++
		}
	}
	return deleted, nil
}
