package repository

import (
	"context"
	"sync"
	"time"

	"meeting-notes-backend/internal/summary/domain"

	"github.com/google/uuid"
)

type memorySummaryRepository struct {
	mu        sync.RWMutex
	summaries map[string]domain.Summary
	now       func() time.Time
}

// NewMemorySummaryRepository creates a process-local store for development
// and tests.
func NewMemorySummaryRepository() SummaryRepository {
	return &memorySummaryRepository{
		summaries: make(map[string]domain.Summary),
		now:       time.Now,
	}
}

func (r *memorySummaryRepository) Create(_ context.Context, s *domain.Summary) error {
	now := r.now().UTC()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.EmailsSent == nil {
		s.EmailsSent = []string{}
	}

	r.mu.Lock()
	r.summaries[s.ID] = clone(*s)
	r.mu.Unlock()
	return nil
}

func (r *memorySummaryRepository) FindByID(_ context.Context, id string) (*domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.summaries[id]
	if !ok {
		return nil, errSummaryNotFound()
	}
	out := clone(s)
	return &out, nil
}

func (r *memorySummaryRepository) Update(_ context.Context, id string, u domain.SummaryUpdate) (*domain.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.summaries[id]
	if !ok {
		return nil, errSummaryNotFound()
	}
	if u.EditedSummary != nil {
		s.EditedSummary = *u.EditedSummary
	}
	s.EmailsSent = append(s.EmailsSent, u.AppendEmails...)
	s.UpdatedAt = r.now().UTC()
	r.summaries[id] = clone(s)

	out := clone(s)
	return &out, nil
}

func clone(s domain.Summary) domain.Summary {
	s.EmailsSent = append([]string{}, s.EmailsSent...)
	return s
}
