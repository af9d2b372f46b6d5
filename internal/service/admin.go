package service

import (
	"context"
	"time"

	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type AdminService struct {
	Repo repository.Repository
}

type AdminStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalFlexes         int64 `json:"total_flexes"`
	FlexesLast24h       int64 `json:"flexes_last_24h"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	OracleVotes         int64 `json:"oracle_votes"`
}

func (s *AdminService) Stats(ctx context.Context) (AdminStats, error) {
	var out AdminStats
	if s == nil || s.Repo == nil {
		return out, ErrNotFound
	}
	var err error
	if out.TotalUsers, err = s.Repo.CountProfiles(ctx); err != nil {
		return out, err
	}
	if out.TotalFlexes, err = s.Repo.CountFlexesSince(ctx, time.Time{}); err != nil {
		return out, err
	}
	if out.FlexesLast24h, err = s.Repo.CountFlexesSince(ctx, time.Now().UTC().Add(-24*time.Hour)); err != nil {
		return out, err
	}
	if out.ActiveSubscriptions, err = s.Repo.CountActiveSubscriptions(ctx); err != nil {
		return out, err
	}
	if out.OracleVotes, err = s.Repo.CountOracleVotes(ctx); err != nil {
		return out, err
	}
	return out, nil
}

type AdminUser struct {
	models.Profile
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionPlan   string `json:"subscription_plan,omitempty"`
}

func (s *AdminService) ListUsers(ctx context.Context, params repository.ListProfilesParams) ([]AdminUser, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, ErrNotFound
	}
	items, err := s.Repo.ListProfiles(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountProfiles(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminUser, 0, len(items))
	for _, p := range items {
		row := AdminUser{Profile: p, SubscriptionStatus: "none"}
		sub, err := s.Repo.GetSubscriptionByUserID(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		if sub != nil {
			row.SubscriptionStatus = sub.Status
			row.SubscriptionPlan = sub.Plan
		}
		out = append(out, row)
	}
	return out, total, nil
}
