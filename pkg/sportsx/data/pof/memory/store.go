package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/pof"
)

type store struct {
	mu       sync.Mutex
	state    *pof.StateRecord
	points   map[string]*pof.PointsRecord
	checkins map[string]*pof.CheckinRecord
	last     uint64
}

func New() pof.Store {
	return &store{
		points:   make(map[string]*pof.PointsRecord),
		checkins: make(map[string]*pof.CheckinRecord),
	}
}

func (s *store) reset() {
	s.mu.Lock()
	s.state = nil
	s.points = make(map[string]*pof.PointsRecord)
	s.checkins = make(map[string]*pof.CheckinRecord)
	s.last = 0
	s.mu.Unlock()
}

func (s *store) PutState(_ context.Context, data *pof.StateRecord) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != nil {
		return pof.ErrStateExists
	}

	s.last++
	data.Id = s.last
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.state = &cloned

	return nil
}

func (s *store) GetState(_ context.Context) (*pof.StateRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, pof.ErrStateNotFound
	}

	cloned := s.state.Clone()
	return &cloned, nil
}

func (s *store) UpdateState(_ context.Context, data *pof.StateRecord) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return pof.ErrStateNotFound
	}

	data.Id = s.state.Id
	data.LastUpdatedAt = time.Now()
	data.CopyTo(s.state)

	return nil
}

func (s *store) PutPoints(_ context.Context, data *pof.PointsRecord) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.points[data.Wallet]; ok {
		return pof.ErrWalletExists
	}

	s.last++
	data.Id = s.last
	data.LastUpdatedAt = time.Now()

	cloned := data.Clone()
	s.points[data.Wallet] = &cloned

	return nil
}

func (s *store) GetPoints(_ context.Context, wallet string) (*pof.PointsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.points[wallet]; ok {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, pof.ErrWalletNotFound
}

func (s *store) AddPoints(_ context.Context, wallet string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.points[wallet]
	if !ok {
		return pof.ErrWalletNotFound
	}

	if delta < 0 {
		deduction := uint64(-delta)
		if item.Points < deduction {
			return pof.ErrInsufficientPoints
		}
		item.Points -= deduction
	} else {
		if item.Points > math.MaxUint64-uint64(delta) {
			item.Points = math.MaxUint64
		} else {
			item.Points += uint64(delta)
		}
	}
	item.LastUpdatedAt = time.Now()

	return nil
}

func (s *store) PutCheckin(_ context.Context, data *pof.CheckinRecord) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checkins[data.Wallet]; ok {
		return pof.ErrCheckinExists
	}

	s.last++
	data.Id = s.last

	cloned := data.Clone()
	s.checkins[data.Wallet] = &cloned

	return nil
}

func (s *store) GetCheckin(_ context.Context, wallet string) (*pof.CheckinRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.checkins[wallet]; ok {
		cloned := item.Clone()
		return &cloned, nil
	}
	return nil, pof.ErrCheckinNotFound
}

func (s *store) UpdateCheckin(_ context.Context, data *pof.CheckinRecord) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.checkins[data.Wallet]
	if !ok {
		return pof.ErrCheckinNotFound
	}

	data.Id = item.Id
	cloned := data.Clone()
	s.checkins[data.Wallet] = &cloned

	return nil
}
