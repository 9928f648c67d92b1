package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/checkin"
)

type store struct {
	mu      sync.Mutex
	records []*checkin.Record
	last    uint64
}

func New() checkin.Store {
	return &store{
		records: make([]*checkin.Record, 0),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*checkin.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) find(eventId, operator string) *checkin.Record {
	for _, item := range s.records {
		if item.EventId == eventId && item.Operator == operator {
			return item
		}
	}
	return nil
}

func (s *store) Put(_ context.Context, data *checkin.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(data.EventId, data.Operator) != nil {
		return checkin.ErrAuthorityExists
	}

	s.last++
	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

func (s *store) Get(_ context.Context, eventId, operator string) (*checkin.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(eventId, operator); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, checkin.ErrAuthorityNotFound
}

func (s *store) Update(_ context.Context, data *checkin.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(data.EventId, data.Operator)
	if item == nil {
		return checkin.ErrAuthorityNotFound
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()
	data.CopyTo(item)

	return nil
}

func (s *store) GetAllByEvent(_ context.Context, eventId string) ([]*checkin.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*checkin.Record, 0)
	for _, item := range s.records {
		if item.EventId == eventId {
			cloned := item.Clone()
			res = append(res, &cloned)
		}
	}

	if len(res) == 0 {
		return nil, checkin.ErrAuthorityNotFound
	}
	return res, nil
}
