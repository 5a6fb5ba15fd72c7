package repository

import (
	"context"

	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for the social graph.
type FollowRepository interface {
	Create(ctx context.Context, followerID uint, followedIDs []uint) error
	Delete(ctx context.Context, followerID uint, followedIDs []uint) error
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowedIDs(ctx context.Context, followerID uint) ([]uint, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	Followings(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowings(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts one edge per target. ON CONFLICT DO NOTHING on the
// (follower_id, followed_id) unique index makes the operation idempotent:
// concurrent or repeated follows of the same pair leave exactly one edge
// and report success.
func (r *followRepository) Create(ctx context.Context, followerID uint, followedIDs []uint) error {
	if len(followedIDs) == 0 {
		return nil
	}

	edges := make([]models.Follow, 0, len(followedIDs))
	for _, id := range followedIDs {
		edges = append(edges, models.Follow{FollowerID: followerID, FollowedID: id})
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
			DoNothing: true,
		}).
		Create(&edges).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the edges from follower to each target. Missing edges are a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID uint, followedIDs []uint) error {
	if len(followedIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id IN ?", followerID, followedIDs).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// FollowedIDs returns the IDs of every user the follower follows, ordered for
// deterministic query shapes downstream.
func (r *followRepository) FollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("followed_id ASC").
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followed_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Followings(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followed_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowings(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
