package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradeflex/internal/auth"
	"tradeflex/internal/models"
	"tradeflex/internal/repository"
)

type ProfileService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Ensure provisions a profile row on first contact and returns it afterwards.
// Display names are derived from the email local part; collisions get a short
// random suffix.
func (s *ProfileService) Ensure(ctx context.Context, claims auth.Claims) (*models.Profile, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	userID := strings.TrimSpace(claims.UserID())
	if userID == "" {
		return nil, ErrInvalid
	}

	existing, err := s.Repo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	name := strings.TrimSpace(claims.DisplayName)
	if name == "" {
		name = displayNameFromEmail(claims.Email)
	}
	if taken, err := s.Repo.GetProfileByDisplayName(ctx, name); err != nil {
		return nil, err
	} else if taken != nil {
		name = fmt.Sprintf("%s_%s", name, uuid.NewString()[:4])
	}

	profile := &models.Profile{
		ID:           userID,
		Email:        strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName:  name,
		AvatarEmoji:  "🦍",
		ReferralCode: newReferralCode(),
	}
	if err := s.Repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("profile provisioned",
			zap.String("user_id", userID),
			zap.String("display_name", profile.DisplayName))
	}
	return profile, nil
}

// GetByIDOrName resolves a public profile path segment, which holds either a
// user id or a display name.
func (s *ProfileService) GetByIDOrName(ctx context.Context, key string) (*models.Profile, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalid
	}
	profile, err := s.Repo.GetProfileByID(ctx, key)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		if profile, err = s.Repo.GetProfileByDisplayName(ctx, key); err != nil {
			return nil, err
		}
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	AvatarEmoji *string `json:"avatar_emoji"`
	Bio         *string `json:"bio"`
}

func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*models.Profile, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	updates := map[string]any{}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" || len(name) > 50 {
			return nil, ErrInvalid
		}
		taken, err := s.Repo.GetProfileByDisplayName(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken != nil && taken.ID != userID {
			return nil, ErrInvalid
		}
		updates["display_name"] = name
	}
	if in.AvatarEmoji != nil {
		updates["avatar_emoji"] = strings.TrimSpace(*in.AvatarEmoji)
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > 280 {
			return nil, ErrInvalid
		}
		updates["bio"] = bio
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetProfileByID(ctx, userID)
}

// ProfileStats is the public profile page payload.
type ProfileStats struct {
	TotalFlexes int64  `json:"total_flexes"`
	Wins        int64  `json:"wins"`
	Losses      int64  `json:"losses"`
	WinRate     string `json:"win_rate"`
	BestPercent string `json:"best_percent"`
	TotalAmount string `json:"total_amount"`
	Followers   int64  `json:"followers"`
	Following   int64  `json:"following"`
}

func (s *ProfileService) Stats(ctx context.Context, userID string) (ProfileStats, error) {
	var out ProfileStats
	if s == nil || s.Repo == nil {
		return out, ErrNotFound
	}
	stats, err := s.Repo.UserTradeStats(ctx, userID)
	if err != nil {
		return out, err
	}
	out.TotalFlexes = stats.TotalFlexes
	out.Wins = stats.Wins
	out.Losses = stats.Losses
	out.BestPercent = stats.BestPercent.StringFixed(2)
	out.TotalAmount = stats.TotalAmount.StringFixed(2)
	out.WinRate = "0.00"
	if stats.TotalFlexes > 0 {
		out.WinRate = fmt.Sprintf("%.2f", float64(stats.Wins)/float64(stats.TotalFlexes)*100)
	}
	if out.Followers, err = s.Repo.CountFollowers(ctx, userID); err != nil {
		return out, err
	}
	if out.Following, err = s.Repo.CountFollowing(ctx, userID); err != nil {
		return out, err
	}
	return out, nil
}

func displayNameFromEmail(email string) string {
	local := strings.ToLower(strings.TrimSpace(email))
	if at := strings.IndexByte(local, '@'); at > 0 {
		local = local[:at]
	}
	local = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, local)
	if local == "" {
		local = "trader"
	}
	if len(local) > 30 {
		local = local[:30]
	}
	return local
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
