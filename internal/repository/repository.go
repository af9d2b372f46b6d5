package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradeflex/internal/models"
)

type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Profiles
	UpsertProfile(ctx context.Context, item *models.Profile) error
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByDisplayName(ctx context.Context, name string) (*models.Profile, error)
	GetProfileByReferralCode(ctx context.Context, code string) (*models.Profile, error)
	ListProfiles(ctx context.Context, params ListProfilesParams) ([]models.Profile, error)
	CountProfiles(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]any) error

	// Flexes
	InsertFlex(ctx context.Context, item *models.Flex) error
	GetFlexByID(ctx context.Context, id string) (*models.Flex, error)
	ListFlexes(ctx context.Context, params ListFlexesParams) ([]models.Flex, error)
	CountFlexes(ctx context.Context, params ListFlexesParams) (int64, error)
	CountFlexesSince(ctx context.Context, since time.Time) (int64, error)
	ListTopFlexes(ctx context.Context, params LeaderboardParams) ([]LeaderboardEntry, error)
	TickerPositionCounts(ctx context.Context, since time.Time, limit int) ([]TickerPositionRow, error)
	UserTradeStats(ctx context.Context, userID string) (TradeStats, error)

	// Community
	InsertPost(ctx context.Context, item *models.CommunityPost) error
	GetPostByID(ctx context.Context, id string) (*models.CommunityPost, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]models.CommunityPost, error)
	CountPosts(ctx context.Context, params ListPostsParams) (int64, error)
	LikePost(ctx context.Context, id string) (int, error)
	LikeComment(ctx context.Context, id string) (int, error)
	InsertComment(ctx context.Context, item *models.CommunityComment) error
	ListComments(ctx context.Context, postID string, limit, offset int) ([]models.CommunityComment, error)

	// Oracle
	UpsertOracleVote(ctx context.Context, item *models.OracleVote) error
	GetOracleVote(ctx context.Context, userID, pollDate string) (*models.OracleVote, error)
	OracleTally(ctx context.Context, pollDate string) (OracleTally, error)
	CountOracleVotes(ctx context.Context) (int64, error)

	// Subscriptions
	UpsertSubscription(ctx context.Context, item *models.Subscription) error
	GetSubscriptionByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	GetSubscriptionByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, userID, status string, periodEnd *time.Time) error
	ExpireLapsedSubscriptions(ctx context.Context, now time.Time) (int64, error)
	CountActiveSubscriptions(ctx context.Context) (int64, error)

	// Notifications
	InsertNotification(ctx context.Context, item *models.Notification) error
	ListNotifications(ctx context.Context, params ListNotificationsParams) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)
	MarkNotificationsRead(ctx context.Context, userID string, ids []uint64) (int64, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	PurgeReadNotifications(ctx context.Context, before time.Time) (int64, error)

	// Follows
	InsertFollow(ctx context.Context, item *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID string) (int64, error)
	FollowExists(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)

	// Referrals
	InsertReferral(ctx context.Context, item *models.Referral) error
	GetReferralByReferredID(ctx context.Context, referredID string) (*models.Referral, error)
	CountReferralsByReferrer(ctx context.Context, referrerID string) (int64, error)
}

type ListProfilesParams struct {
	Limit   int
	Offset  int
	Search  *string
	OrderBy string
	Asc     *bool
}

type ListFlexesParams struct {
	Limit      int
	Offset     int
	UserID     *string
	Ticker     *string
	Position   *string
	Instrument *string
	Since      *time.Time
	OrderBy    string
	Asc        *bool
}

type LeaderboardParams struct {
	Limit int
	Since *time.Time
	// Losers flips the sort so the board shows the biggest drawdowns.
	Losers bool
}

// LeaderboardEntry joins a flex with its author's display fields.
type LeaderboardEntry struct {
	FlexID      string
	UserID      string
	DisplayName string
	AvatarEmoji string
	Ticker      string
	Instrument  string
	Position    string
	PnLPercent  decimal.Decimal
	PnLAmount   *decimal.Decimal
	CreatedAt   time.Time
}

type TickerPositionRow struct {
	Ticker   string
	Position string
	Count    int64
}

// TradeStats aggregates a user's closed flexes for the profile page.
type TradeStats struct {
	TotalFlexes int64
	Wins        int64
	Losses      int64
	BestPercent decimal.Decimal
	TotalAmount decimal.Decimal
}

type ListPostsParams struct {
	Limit     int
	Offset    int
	Ticker    *string
	Sentiment *string
	UserID    *string
	// Sort is "new" (default) or "hot" (likes, then recency).
	Sort string
}

type OracleTally struct {
	PollDate string
	Bullish  int64
	Bearish  int64
}

type ListNotificationsParams struct {
	Limit      int
	Offset     int
	UserID     string
	UnreadOnly bool
}
