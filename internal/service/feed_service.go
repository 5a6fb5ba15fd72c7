package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// FeedService derives a viewer's timeline from the social graph.
type FeedService struct {
	followRepo repository.FollowRepository
	statusRepo repository.StatusRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(followRepo repository.FollowRepository, statusRepo repository.StatusRepository) *FeedService {
	return &FeedService{
		followRepo: followRepo,
		statusRepo: statusRepo,
	}
}

// Feed returns one page of the viewer's timeline: statuses authored by the
// users the viewer follows plus the viewer's own, newest first. The author ID
// set is resolved first because statuses do not join the follow table; edge
// changes therefore apply from this read onward, never retroactively to
// statuses an author posted while still followed.
func (s *FeedService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Status, error) {
	ids, err := s.followRepo.FollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, viewerID)

	return s.statusRepo.ListByAuthors(ctx, ids, limit, offset)
}
