package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/database/query"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/ticket"
)

type ById []*ticket.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

type store struct {
	mu      sync.Mutex
	records []*ticket.Record
	last    uint64
}

func New() ticket.Store {
	return &store{
		records: make([]*ticket.Record, 0),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.records = make([]*ticket.Record, 0)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) find(address string) *ticket.Record {
	for _, item := range s.records {
		if item.Address == address {
			return item
		}
	}
	return nil
}

func (s *store) Put(_ context.Context, data *ticket.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.records {
		if item.Address == data.Address || item.TicketId == data.TicketId {
			return ticket.ErrTicketAlreadyMinted
		}
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

func (s *store) Get(_ context.Context, address string) (*ticket.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(address); item != nil {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, ticket.ErrTicketNotFound
}

func (s *store) Update(_ context.Context, data *ticket.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(data.Address)
	if item == nil {
		return ticket.ErrTicketNotFound
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()
	data.CopyTo(item)

	return nil
}

func (s *store) filter(items []*ticket.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*ticket.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*ticket.Record
	for _, item := range items {
		if item.Id > start && direction == query.Ascending {
			res = append(res, item)
		}
		if item.Id < start && direction == query.Descending {
			res = append(res, item)
		}
	}

	if direction == query.Descending {
		sort.Sort(sort.Reverse(ById(res)))
	}

	if len(res) >= int(limit) {
		return res[:limit]
	}

	return res
}

func (s *store) GetAllByOwner(_ context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*ticket.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*ticket.Record, 0)
	for _, item := range s.records {
		if item.Owner == owner {
			cloned := item.Clone()
			items = append(items, &cloned)
		}
	}

	res := s.filter(items, cursor, limit, direction)
	if len(res) == 0 {
		return nil, ticket.ErrTicketNotFound
	}
	return res, nil
}
