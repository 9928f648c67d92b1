package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/listing"
)

type store struct {
	mu      sync.Mutex
	records []*listing.Record
	last    uint64
}

func New() listing.Store {
	return &store{
		records: make([]*listing.Record, 0),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*listing.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) find(ticket string) *listing.Record {
	for _, item := range s.records {
		if item.Ticket == ticket {
			return item
		}
	}
	return nil
}

func (s *store) Put(_ context.Context, data *listing.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(data.Ticket) != nil {
		return listing.ErrListingExists
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

func (s *store) GetByTicket(_ context.Context, ticket string) (*listing.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(ticket); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, listing.ErrListingNotFound
}

func (s *store) Delete(_ context.Context, ticket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.records {
		if item.Ticket == ticket {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *store) GetAllBySeller(_ context.Context, seller string) ([]*listing.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*listing.Record, 0)
	for _, item := range s.records {
		if item.Seller == seller {
			cloned := item.Clone()
			res = append(res, &cloned)
		}
	}

	if len(res) == 0 {
		return nil, listing.ErrListingNotFound
	}
	return res, nil
}
