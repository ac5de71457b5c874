package store

import (
	"context"
	"errors"

	"hangouts/backend/internal/errs"
	"hangouts/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationStore maintains follow edges, pending friend requests and the
// mirrored friendship pairs between users.
type RelationStore struct {
	db *gorm.DB
}

func NewRelationStore(db *gorm.DB) *RelationStore {
	return &RelationStore{db: db}
}

// Follow creates a directed follow edge. Following a user twice is an error,
// not a no-op.
func (s *RelationStore) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return errs.Errorf(errs.EINVALIDARG, "You cannot follow yourself.")
	}

	var followee models.User
	if err := s.db.WithContext(ctx).First(&followee, followeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}

	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
		}
		return err
	}
	return nil
}

// Unfollow deletes the follow edge.
func (s *RelationStore) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "You don't follow this user.")
	}
	return nil
}

// IsFollowing reports whether a follows b.
func (s *RelationStore) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", a, b).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SendFriendRequest creates a pending friend request from requester to target.
func (s *RelationStore) SendFriendRequest(ctx context.Context, requesterID, targetID uint) (*models.FriendRequest, error) {
	if requesterID == targetID {
		return nil, errs.Errorf(errs.EINVALIDARG, "You cannot send a friend request to yourself.")
	}

	var target models.User
	if err := s.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "Target user not found.")
		}
		return nil, err
	}

	friends, err := s.AreFriends(ctx, requesterID, targetID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, errs.Errorf(errs.ECONFLICT, "You are already friends with this user.")
	}

	request := models.FriendRequest{RequesterID: requesterID, TargetID: targetID}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Errorf(errs.ECONFLICT, "A friend request to this user is already pending.")
		}
		return nil, err
	}
	request.Target = target
	return &request, nil
}

// CancelFriendRequest deletes a pending request. Only its requester or its
// target may remove it.
func (s *RelationStore) CancelFriendRequest(ctx context.Context, requestID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND (requester_id = ? OR target_id = ?)", requestID, userID, userID).
		Delete(&models.FriendRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "Pending request not found.")
	}
	return nil
}

// AcceptFriendRequest atomically deletes the pending request and creates the
// mirrored friendship pair. Only the request's target may accept. Each insert
// is guarded by an existence check so accepting while the mirror already
// exists never double-creates or recurses.
func (s *RelationStore) AcceptFriendRequest(ctx context.Context, requestID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.FriendRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND target_id = ?", requestID, userID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Pending request not found.")
			}
			return err
		}

		if err := tx.Delete(&request).Error; err != nil {
			return err
		}

		pairs := [2]models.Friendship{
			{UserID: request.RequesterID, FriendID: request.TargetID},
			{UserID: request.TargetID, FriendID: request.RequesterID},
		}
		for _, edge := range pairs {
			var existing models.Friendship
			err := tx.Where("user_id = ? AND friend_id = ?", edge.UserID, edge.FriendID).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Unfriend destroys both directions of a friendship in one transaction.
// Destroying the mirror never triggers a re-create.
func (s *RelationStore) Unfriend(ctx context.Context, a, b uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
			Delete(&models.Friendship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.Errorf(errs.ENOTFOUND, "You are not friends with this user.")
		}
		return nil
	})
}

// AreFriends reports whether a friendship exists between the two users.
func (s *RelationStore) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowers returns the users following userID.
func (s *RelationStore) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var edges []models.Follow
	err := s.db.WithContext(ctx).
		Where("followee_id = ?", userID).
		Preload("Follower").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Follower)
	}
	return users, nil
}

// ListFollowing returns the users userID follows.
func (s *RelationStore) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var edges []models.Follow
	err := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Preload("Followee").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Followee)
	}
	return users, nil
}

// ListFriends returns userID's friends. Reading one direction is enough
// because every friendship is stored mirrored.
func (s *RelationStore) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var edges []models.Friendship
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Friend").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Friend)
	}
	return users, nil
}

// ListPendingOutgoing returns requests userID has sent.
func (s *RelationStore) ListPendingOutgoing(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("requester_id = ?", userID).
		Preload("Target").
		Find(&requests).Error
	return requests, err
}

// ListPendingIncoming returns requests awaiting userID's answer.
func (s *RelationStore) ListPendingIncoming(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("target_id = ?", userID).
		Preload("Requester").
		Find(&requests).Error
	return requests, err
}

// RelationCounts carries the follower/following/friend totals for a profile.
type RelationCounts struct {
	Followers int64
	Following int64
	Friends   int64
}

// Counts returns the relation totals for a user.
func (s *RelationStore) Counts(ctx context.Context, userID uint) (RelationCounts, error) {
	var counts RelationCounts
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&counts.Followers).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&counts.Following).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&models.Friendship{}).Where("user_id = ?", userID).Count(&counts.Friends).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
