package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/repository"
)

// Store keeps recruitments in process memory. It is meant for local runs and
// tests; nothing survives a restart.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.Recruitment
	seq     map[string]uint64
	next    uint64
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.Recruitment),
		seq:     make(map[string]uint64),
	}
}

func (s *Store) List(ctx context.Context) ([]domain.Recruitment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recruitment, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	// Newest first; insertion order breaks timestamp ties.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out, nil
}

func (s *Store) Create(ctx context.Context, rec *domain.Recruitment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	s.next++
	s.seq[rec.ID] = s.next
	s.records[rec.ID] = *rec
	return nil
}

func (s *Store) UpdatePayout(ctx context.Context, id string, status domain.PayoutStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil
	}
	rec.PaidOut = status
	s.records[id] = rec
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	delete(s.seq, id)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}
