package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

// StatusService provides status posting and deletion.
type StatusService struct {
	statusRepo repository.StatusRepository
	isAdmin    AdminChecker
}

// NewStatusService returns a new StatusService.
func NewStatusService(statusRepo repository.StatusRepository, isAdmin AdminChecker) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		isAdmin:    isAdmin,
	}
}

// Create posts a new status for the user.
func (s *StatusService) Create(ctx context.Context, userID uint, content string) (*models.Status, error) {
	if err := validation.ValidateStatusContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	status := &models.Status{
		Content: content,
		UserID:  userID,
	}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}
	return s.statusRepo.GetByID(ctx, status.ID)
}

// Delete removes a status. Owners may delete their own; admins may delete any.
func (s *StatusService) Delete(ctx context.Context, actorID, statusID uint) error {
	status, err := s.statusRepo.GetByID(ctx, statusID)
	if err != nil {
		return err
	}

	if status.UserID != actorID {
		admin, adminErr := s.isAdmin(ctx, actorID)
		if adminErr != nil {
			return adminErr
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own statuses")
		}
	}

	return s.statusRepo.Delete(ctx, statusID)
}
