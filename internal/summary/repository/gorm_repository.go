package repository

import (
	"context"
	"errors"
	"time"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type gormSummaryRepository struct {
	db *gorm.DB
}

// NewGormSummaryRepository creates a Postgres-backed store. Call
// AutoMigrate once before use.
func NewGormSummaryRepository(db *gorm.DB) SummaryRepository {
	return &gormSummaryRepository{db: db}
}

// AutoMigrate creates or updates the summaries table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Summary{})
}

func (r *gormSummaryRepository) Create(ctx context.Context, s *domain.Summary) error {
	s.ID = uuid.New().String()
	if s.EmailsSent == nil {
		s.EmailsSent = pq.StringArray{}
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return apperror.Internal("Failed to save summary", err)
	}
	return nil
}

func (r *gormSummaryRepository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	var s domain.Summary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSummaryNotFound()
		}
		return nil, apperror.Internal("Failed to load summary", err)
	}
	return &s, nil
}

func (r *gormSummaryRepository) Update(ctx context.Context, id string, u domain.SummaryUpdate) (*domain.Summary, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if u.EditedSummary != nil {
		updates["edited_summary"] = *u.EditedSummary
	}
	if len(u.AppendEmails) > 0 {
		updates["emails_sent"] = gorm.Expr("array_cat(emails_sent, ?)", pq.StringArray(u.AppendEmails))
	}

	var s domain.Summary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Summary{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&s).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSummaryNotFound()
		}
		return nil, apperror.Internal("Failed to update summary", err)
	}
	return &s, nil
}
