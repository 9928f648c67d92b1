package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/platform"
)

type store struct {
	mu     sync.Mutex
	record *platform.Record
}

func New() platform.Store {
	return &store{}
}

func (s *store) reset() {
	s.mu.Lock()
	s.record = nil
	s.mu.Unlock()
}

func (s *store) Put(_ context.Context, data *platform.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record != nil {
		return platform.ErrAlreadyInitialized
	}

	data.Id = 1
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.record = &cloned

	return nil
}

func (s *store) Get(_ context.Context) (*platform.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return nil, platform.ErrNotInitialized
	}

	cloned := s.record.Clone()
	return &cloned, nil
}

func (s *store) Update(_ context.Context, data *platform.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return platform.ErrNotInitialized
	}

	data.Id = s.record.Id
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.record = &cloned

	return nil
}
