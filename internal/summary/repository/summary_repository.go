package repository

import (
	"context"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/pkg/apperror"
)

// SummaryRepository persists summary records by id. There is no delete.
// Concurrent updates of one id are last-write-wins for EditedSummary;
// AppendEmails is applied by the store itself.
type SummaryRepository interface {
	// Create assigns ID, CreatedAt and UpdatedAt on s.
	Create(ctx context.Context, s *domain.Summary) error
	FindByID(ctx context.Context, id string) (*domain.Summary, error)
	// Update applies u as a single write and returns the stored record.
	Update(ctx context.Context, id string, u domain.SummaryUpdate) (*domain.Summary, error)
}

func errSummaryNotFound() *apperror.Error {
	return apperror.NotFound("Summary not found")
}
