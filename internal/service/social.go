package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type FollowService struct {
	Repo     repository.Repository
	Notifier *Notifier
	Logger   *zap.Logger
}

func (s *FollowService) Follow(ctx context.Context, follower *models.Profile, targetID string) error {
	if s == nil || s.Repo == nil {
		return ErrNotFound
	}
	if follower == nil {
		return ErrInvalid
	}
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return ErrInvalid
	}
	if targetID == follower.ID {
		return ErrSelfAction
	}

	target, err := s.Repo.GetProfileByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}

	already, err := s.Repo.FollowExists(ctx, follower.ID, targetID)
	if err != nil {
		return err
	}
	if err := s.Repo.InsertFollow(ctx, &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: targetID,
	}); err != nil {
		return err
	}
	if !already {
		s.Notifier.Notify(ctx, targetID,
			models.NotificationKindFollow,
			follower.DisplayName+" followed you",
			"",
			map[string]any{"follower_id": follower.ID})
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if s == nil || s.Repo == nil {
		return ErrNotFound
	}
	_, err := s.Repo.DeleteFollow(ctx, followerID, targetID)
	return err
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	if s == nil || s.Repo == nil {
		return false, nil
	}
	return s.Repo.FollowExists(ctx, followerID, targetID)
}

type ReferralService struct {
	Repo      repository.Repository
	Notifier  *Notifier
	Logger    *zap.Logger
	LinkBase  string
	Threshold int
}

// Link is the shareable invite URL for a profile.
func (s *ReferralService) Link(profile *models.Profile) string {
	if profile == nil {
		return ""
	}
	base := strings.TrimRight(s.LinkBase, "/")
	if base == "" {
		base = "https://tradeflex.app/r"
	}
	return base + "/" + profile.ReferralCode
}

type ReferralStatus struct {
	Code      string `json:"code"`
	Link      string `json:"link"`
	Count     int64  `json:"count"`
	Threshold int    `json:"threshold"`
}

func (s *ReferralService) Status(ctx context.Context, profile *models.Profile) (ReferralStatus, error) {
	var out ReferralStatus
	if s == nil || s.Repo == nil || profile == nil {
		return out, ErrNotFound
	}
	count, err := s.Repo.CountReferralsByReferrer(ctx, profile.ID)
	if err != nil {
		return out, err
	}
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = 3
	}
	return ReferralStatus{
		Code:      profile.ReferralCode,
		Link:      s.Link(profile),
		Count:     count,
		Threshold: threshold,
	}, nil
}

// Claim credits the code's owner for referring the caller. A user can be
// referred once, ever, and never by themselves.
func (s *ReferralService) Claim(ctx context.Context, claimant *models.Profile, code string) error {
	if s == nil || s.Repo == nil {
		return ErrNotFound
	}
	if claimant == nil {
		return ErrInvalid
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrInvalid
	}

	referrer, err := s.Repo.GetProfileByReferralCode(ctx, code)
	if err != nil {
		return err
	}
	if referrer == nil {
		return ErrNotFound
	}
	if referrer.ID == claimant.ID {
		return ErrSelfAction
	}

	existing, err := s.Repo.GetReferralByReferredID(ctx, claimant.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyClaimed
	}

	if err := s.Repo.InsertReferral(ctx, &models.Referral{
		ReferrerID: referrer.ID,
		ReferredID: claimant.ID,
		Code:       code,
	}); err != nil {
		return err
	}

	count, err := s.Repo.CountReferralsByReferrer(ctx, referrer.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("referral count after claim failed", zap.Error(err))
		}
		count = 0
	}
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = 3
	}

	title := claimant.DisplayName + " joined with your invite"
	body := fmt.Sprintf("%d of %d referrals toward Pro", count, threshold)
	if count >= int64(threshold) {
		body = "You unlocked Pro with your referrals"
	}
	s.Notifier.Notify(ctx, referrer.ID, models.NotificationKindReferral, title, body,
		map[string]any{"referred_id": claimant.ID, "count": count})
	return nil
}
