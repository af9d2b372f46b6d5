package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradeflex/internal/card"
	"tradeflex/internal/entitlement"
	"tradeflex/internal/feed"
	"tradeflex/internal/models"
	"tradeflex/internal/pnl"
	"tradeflex/internal/repository"
)

type FlexService struct {
	Repo         repository.Repository
	Logger       *zap.Logger
	Hub          *feed.Hub
	Renderer     *card.Renderer
	Entitlements *entitlement.Resolver
	Brand        string
}

type CreateFlexInput struct {
	Ticker     string `json:"ticker"`
	Instrument string `json:"instrument"`
	Position   string `json:"position"`
	EntryPrice string `json:"entry_price"`
	ExitPrice  string `json:"exit_price"`
	Quantity   string `json:"quantity"`
	Status     string `json:"status"`

	OptionStrike string `json:"option_strike"`
	OptionExpiry string `json:"option_expiry"`
	OptionSide   string `json:"option_side"`

	Emoji string `json:"emoji"`
}

// Create computes the P&L once at insert time and freezes it on the row.
func (s *FlexService) Create(ctx context.Context, userID string, in CreateFlexInput) (*models.Flex, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}

	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" || len(ticker) > 16 {
		return nil, ErrInvalid
	}

	instrument := strings.ToLower(strings.TrimSpace(in.Instrument))
	if instrument == "" {
		instrument = models.InstrumentStock
	}
	if instrument != models.InstrumentStock && instrument != models.InstrumentOption {
		return nil, ErrInvalid
	}

	position := strings.ToLower(strings.TrimSpace(in.Position))
	if position != models.PositionLong && position != models.PositionShort {
		return nil, ErrInvalid
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.TradeStatusClosed
	}
	if status != models.TradeStatusOpen && status != models.TradeStatusClosed {
		return nil, ErrInvalid
	}

	entry := pnl.ParseAmount(in.EntryPrice)
	exit := pnl.ParseAmount(in.ExitPrice)
	quantity := pnl.ParseAmount(in.Quantity)

	result := pnl.Compute(pnl.Input{
		Instrument: instrument,
		Position:   position,
		EntryPrice: entry,
		ExitPrice:  exit,
		Quantity:   quantity,
	})

	item := &models.Flex{
		ID:         uuid.NewString(),
		UserID:     userID,
		Ticker:     ticker,
		Instrument: instrument,
		Position:   position,
		EntryPrice: entry,
		ExitPrice:  exit,
		Quantity:   quantity,
		Status:     status,
		PnLPercent: result.Percent,
		PnLAmount:  result.Amount,
	}

	if instrument == models.InstrumentOption {
		if strike := pnl.ParseAmount(in.OptionStrike); strike.Sign() > 0 {
			item.OptionStrike = &strike
		}
		if side := strings.ToLower(strings.TrimSpace(in.OptionSide)); side == "call" || side == "put" {
			item.OptionSide = &side
		}
		if expiry, err := time.Parse("2006-01-02", strings.TrimSpace(in.OptionExpiry)); err == nil {
			item.OptionExpiry = &expiry
		}
	}

	if emoji := strings.TrimSpace(in.Emoji); emoji != "" {
		item.Emoji = &emoji
	}

	if err := s.Repo.InsertFlex(ctx, item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("flex created",
			zap.String("flex_id", item.ID),
			zap.String("ticker", item.Ticker),
			zap.String("pnl_percent", item.PnLPercent.StringFixed(2)))
	}

	s.publish(ctx, item)
	return item, nil
}

func (s *FlexService) publish(ctx context.Context, item *models.Flex) {
	if s.Hub == nil {
		return
	}
	display := "anon"
	avatar := ""
	if profile, err := s.Repo.GetProfileByID(ctx, item.UserID); err == nil && profile != nil {
		display = profile.DisplayName
		avatar = profile.AvatarEmoji
	}
	s.Hub.Publish(feed.Item{
		FlexID:      item.ID,
		DisplayName: display,
		AvatarEmoji: avatar,
		Ticker:      item.Ticker,
		Position:    item.Position,
		Instrument:  item.Instrument,
		PnLPercent:  item.PnLPercent,
		PnLAmount:   item.PnLAmount,
		CreatedAt:   item.CreatedAt,
	})
}

func (s *FlexService) Get(ctx context.Context, id string) (*models.Flex, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrNotFound
	}
	item, err := s.Repo.GetFlexByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *FlexService) List(ctx context.Context, params repository.ListFlexesParams) ([]models.Flex, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, ErrNotFound
	}
	items, err := s.Repo.ListFlexes(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountFlexes(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CardPNG renders the shareable card for a flex. The watermark follows the
// owner's tier, not the viewer's.
func (s *FlexService) CardPNG(ctx context.Context, flexID string) (png []byte, filename string, err error) {
	if s == nil || s.Repo == nil || s.Renderer == nil {
		return nil, "", ErrNotFound
	}
	item, err := s.Repo.GetFlexByID(ctx, flexID)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", ErrNotFound
	}

	pro := false
	if s.Entitlements != nil {
		email := ""
		if profile, perr := s.Repo.GetProfileByID(ctx, item.UserID); perr == nil && profile != nil {
			email = profile.Email
		}
		status, rerr := s.Entitlements.Resolve(ctx, item.UserID, email)
		if rerr != nil && s.Logger != nil {
			s.Logger.Warn("entitlement lookup failed, rendering free card",
				zap.String("flex_id", flexID), zap.Error(rerr))
		}
		pro = status.IsPro()
	}

	layout := card.BuildLayout(s.snapshot(item, pro))
	png, err = s.Renderer.Render(layout)
	if err != nil {
		return nil, "", err
	}
	return png, card.Filename(s.Brand, item.Ticker, item.PnLPercent), nil
}

func (s *FlexService) snapshot(item *models.Flex, pro bool) card.Snapshot {
	var amount *decimal.Decimal
	if item.PnLAmount != nil {
		a := *item.PnLAmount
		amount = &a
	}
	return card.Snapshot{
		Brand:        s.Brand,
		Ticker:       item.Ticker,
		Percent:      item.PnLPercent,
		Amount:       amount,
		EntryPrice:   item.EntryPrice,
		ExitPrice:    item.ExitPrice,
		Instrument:   item.Instrument,
		Position:     item.Position,
		Status:       item.Status,
		OptionStrike: item.OptionStrike,
		OptionExpiry: item.OptionExpiry,
		OptionSide:   item.OptionSide,
		Emoji:        item.Emoji,
		Pro:          pro,
	}
}
