package repository

import (
	"context"
	"errors"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// StatusRepository defines persistence operations for statuses.
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, id uint) (*models.Status, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Status, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Status, error)
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository returns a new StatusRepository implementation.
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	if err := r.db.WithContext(ctx).Create(status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, id uint) (*models.Status, error) {
	var status models.Status
	if err := r.db.WithContext(ctx).Preload("User").First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Status", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &status, nil
}

func (r *statusRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Status{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *statusRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&statuses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return statuses, nil
}

// ListByAuthors is the feed query's second phase: filter statuses by the
// already-resolved author ID set. Ordered newest first with the ID as a
// stable tiebreak so pagination never straddles equal timestamps.
func (r *statusRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]models.Status, error) {
	if len(authorIDs) == 0 {
		return []models.Status{}, nil
	}

	var statuses []models.Status
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&statuses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return statuses, nil
}
