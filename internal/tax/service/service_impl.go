package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/orgcontext"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  taxdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  taxdomain.Repository
}

func New(p Params) taxdomain.Service {
	return &Service{
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.Tax, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, taxdomain.ErrInvalidOrganization
	}

	now := time.Now().UTC()
	tax := taxdomain.Tax{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      strings.TrimSpace(req.Name),
		IsFixed:   req.IsFixed,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Rate != nil {
		tax.Rate = *req.Rate
	}
	if req.Amount != nil {
		tax.Amount = *req.Amount
	}
	if req.IsEnabled != nil {
		tax.IsEnabled = *req.IsEnabled
	}

	if err := tax.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &tax); err != nil {
		return nil, err
	}

	return &tax, nil
}

func (s *Service) List(ctx context.Context, req taxdomain.ListRequest) ([]taxdomain.Tax, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, taxdomain.ErrInvalidOrganization
	}

	return s.repo.List(ctx, orgID, taxdomain.ListFilter{
		Name:      strings.TrimSpace(req.Name),
		IsEnabled: req.IsEnabled,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*taxdomain.Tax, error) {
	orgID, taxID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	tax, err := s.repo.FindByID(ctx, orgID, taxID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, taxdomain.ErrNotFound
	}
	return tax, nil
}

func (s *Service) Update(ctx context.Context, req taxdomain.UpdateRequest) (*taxdomain.Tax, error) {
	orgID, taxID, err := s.scope(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	tax, err := s.repo.FindByID(ctx, orgID, taxID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, taxdomain.ErrNotFound
	}

	if req.Name != nil {
		tax.Name = strings.TrimSpace(*req.Name)
	}
	if req.Rate != nil {
		tax.Rate = *req.Rate
	}
	if req.Amount != nil {
		tax.Amount = *req.Amount
	}
	tax.UpdatedAt = time.Now().UTC()

	if err := tax.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxdomain.Tax, error) {
	orgID, taxID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	tax, err := s.repo.FindByID(ctx, orgID, taxID)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, taxdomain.ErrNotFound
	}

	tax.IsEnabled = false
	tax.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// RateFor exposes the effective rate of a tax as a line-arithmetic pair.
// Fixed taxes contribute a flat amount, percentage taxes a rate.
func RateFor(tax *taxdomain.Tax) (rate, fixed decimal.Decimal) {
	if tax == nil || !tax.IsEnabled {
		return decimal.Zero, decimal.Zero
	}
	if tax.IsFixed {
		return decimal.Zero, tax.Amount
	}
	return tax.Rate, decimal.Zero
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return 0, 0, taxdomain.ErrInvalidOrganization
	}

	taxID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, taxdomain.ErrInvalidID
	}
	return orgID, taxID, nil
}
