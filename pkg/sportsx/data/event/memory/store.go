package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/event"
)

type store struct {
	mu      sync.Mutex
	records []*event.Record
	last    uint64
}

func New() event.Store {
	return &store{
		records: make([]*event.Record, 0),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*event.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) find(eventId string) *event.Record {
	for _, item := range s.records {
		if item.EventId == eventId {
			return item
		}
	}
	return nil
}

func (s *store) Put(_ context.Context, data *event.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(data.EventId) != nil {
		return event.ErrEventExists
	}

	s.last++
	data.Id = s.last
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	cloned := data.Clone()
	s.records = append(s.records, &cloned)

	return nil
}

func (s *store) Get(_ context.Context, eventId string) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(eventId); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, event.ErrEventNotFound
}

func (s *store) Update(_ context.Context, data *event.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(data.EventId)
	if item == nil {
		return event.ErrEventNotFound
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.CopyTo(item)

	return nil
}

func (s *store) GetAllByOrganizer(_ context.Context, organizer string) ([]*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*event.Record, 0)
	for _, item := range s.records {
		if item.Organizer == organizer {
			cloned := item.Clone()
			res = append(res, &cloned)
		}
	}

	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}
