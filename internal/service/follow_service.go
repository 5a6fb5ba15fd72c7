package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// FollowService provides social-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates edges from follower to each target. Already-followed targets
// are left untouched; following twice is not an error. Self-follow is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return models.NewValidationError("At least one target user is required")
	}

	for _, id := range targetIDs {
		if id == followerID {
			return models.NewValidationError("Cannot follow yourself")
		}
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return s.followRepo.Create(ctx, followerID, targetIDs)
}

// Unfollow removes edges from follower to each target. Missing edges are a
// no-op, not an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return models.NewValidationError("At least one target user is required")
	}
	return s.followRepo.Delete(ctx, followerID, targetIDs)
}

// IsFollowing reports whether a follow edge from follower to target exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, followerID, targetID)
}

// Followers returns the users following userID, newest edges first.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

// Followings returns the users userID follows, newest edges first.
func (s *FollowService) Followings(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followings(ctx, userID, limit, offset)
}

// Counts returns follower and following totals for a profile page.
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, followings int64, err error) {
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followings, err = s.followRepo.CountFollowings(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, followings, nil
}
