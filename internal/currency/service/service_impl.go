package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	"github.com/facturio/facturio/internal/orgcontext"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  currencydomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  currencydomain.Repository
}

func New(p Params) currencydomain.Service {
	return &Service{
		log:   p.Log.Named("currency.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req currencydomain.CreateRequest) (*currencydomain.Currency, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, currencydomain.ErrInvalidOrganization
	}

	now := time.Now().UTC()
	currency := currencydomain.Currency{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Symbol:        strings.TrimSpace(req.Symbol),
		ExchangeRate:  decimal.NewFromInt(1),
		DecimalPlaces: 2,
		IsDefault:     req.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.ExchangeRate != nil {
		currency.ExchangeRate = *req.ExchangeRate
	}
	if req.DecimalPlaces != nil {
		currency.DecimalPlaces = *req.DecimalPlaces
	}

	if err := currency.Validate(); err != nil {
		return nil, err
	}

	if currency.IsDefault {
		if err := s.repo.ClearDefault(ctx, orgID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, &currency); err != nil {
		return nil, err
	}

	return &currency, nil
}

func (s *Service) List(ctx context.Context) ([]currencydomain.Currency, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, currencydomain.ErrInvalidOrganization
	}
	return s.repo.List(ctx, orgID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*currencydomain.Currency, error) {
	orgID, currencyID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	currency, err := s.repo.FindByID(ctx, orgID, currencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, currencydomain.ErrNotFound
	}
	return currency, nil
}

func (s *Service) Update(ctx context.Context, req currencydomain.UpdateRequest) (*currencydomain.Currency, error) {
	orgID, currencyID, err := s.scope(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	currency, err := s.repo.FindByID(ctx, orgID, currencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, currencydomain.ErrNotFound
	}

	if req.Symbol != nil {
		currency.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.ExchangeRate != nil {
		currency.ExchangeRate = *req.ExchangeRate
	}
	if req.DecimalPlaces != nil {
		currency.DecimalPlaces = *req.DecimalPlaces
	}
	currency.UpdatedAt = time.Now().UTC()

	if err := currency.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *Service) SetDefault(ctx context.Context, id string) (*currencydomain.Currency, error) {
	orgID, currencyID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	currency, err := s.repo.FindByID(ctx, orgID, currencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, currencydomain.ErrNotFound
	}

	if err := s.repo.ClearDefault(ctx, orgID); err != nil {
		return nil, err
	}

	currency.IsDefault = true
	currency.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return 0, 0, currencydomain.ErrInvalidOrganization
	}

	currencyID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, currencydomain.ErrInvalidID
	}
	return orgID, currencyID, nil
}
