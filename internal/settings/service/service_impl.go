package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	"github.com/facturio/facturio/internal/orgcontext"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Base currency used when an org has not configured a default.
var fallbackCurrency = currencydomain.Currency{
	Code:          "TND",
	Symbol:        "DT",
	ExchangeRate:  decimal.NewFromInt(1),
	DecimalPlaces: 3,
	IsDefault:     true,
}

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	CurrencyRepo currencydomain.Repository
	TaxRepo      taxdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	currencyRepo currencydomain.Repository
	taxRepo      taxdomain.Repository
}

func New(p Params) settingsdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("settings.service"),
		genID:        p.GenID,
		currencyRepo: p.CurrencyRepo,
		taxRepo:      p.TaxRepo,
	}
}

func (s *Service) Resolve(ctx context.Context, orgID snowflake.ID) (settingsdomain.Defaults, error) {
	if orgID == 0 {
		return settingsdomain.Defaults{}, settingsdomain.ErrInvalidOrganization
	}

	defaults := settingsdomain.Defaults{Currency: fallbackCurrency}

	currency, err := s.currencyRepo.FindDefault(ctx, orgID)
	if err != nil {
		return settingsdomain.Defaults{}, err
	}
	if currency != nil {
		defaults.Currency = *currency
	}

	row, err := s.find(ctx, orgID)
	if err != nil {
		return settingsdomain.Defaults{}, err
	}
	if row == nil {
		return defaults, nil
	}

	defaults.StampDutyEnabled = row.StampDutyEnabled
	defaults.StampDutyAmount = row.StampDutyAmount

	if row.DefaultTaxID != nil {
		tax, err := s.taxRepo.FindByID(ctx, orgID, *row.DefaultTaxID)
		if err != nil {
			return settingsdomain.Defaults{}, err
		}
		// a deleted or disabled default tax resolves to no tax
		if tax != nil && tax.IsEnabled {
			defaults.DefaultTax = tax
		}
	}

	return defaults, nil
}

func (s *Service) Get(ctx context.Context) (*settingsdomain.OrgSettings, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, settingsdomain.ErrInvalidOrganization
	}

	row, err := s.find(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = s.emptySettings(orgID)
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, req settingsdomain.UpdateRequest) (*settingsdomain.OrgSettings, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, settingsdomain.ErrInvalidOrganization
	}

	row, err := s.find(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inserted := false
	if row == nil {
		row = s.emptySettings(orgID)
		row.CreatedAt = now
		inserted = true
	}

	if req.CompanyName != nil {
		row.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.CompanyAddress != nil {
		row.CompanyAddress = strings.TrimSpace(*req.CompanyAddress)
	}
	if req.CompanyEmail != nil {
		row.CompanyEmail = strings.TrimSpace(*req.CompanyEmail)
	}
	if req.CompanyPhone != nil {
		row.CompanyPhone = strings.TrimSpace(*req.CompanyPhone)
	}
	if req.FiscalID != nil {
		row.FiscalID = strings.TrimSpace(*req.FiscalID)
	}
	if req.LogoURL != nil {
		row.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.DefaultTaxID != nil {
		row.DefaultTaxID = req.DefaultTaxID
	}
	if req.StampDutyEnabled != nil {
		row.StampDutyEnabled = *req.StampDutyEnabled
	}
	if req.StampDutyAmount != nil {
		if req.StampDutyAmount.Sign() < 0 {
			return nil, settingsdomain.ErrInvalidStampDuty
		}
		row.StampDutyAmount = *req.StampDutyAmount
	}
	row.UpdatedAt = now

	if inserted {
		if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
			return nil, err
		}
		return row, nil
	}

	if err := s.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, row.ID).
		Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) find(ctx context.Context, orgID snowflake.ID) (*settingsdomain.OrgSettings, error) {
	var row settingsdomain.OrgSettings
	err := s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *Service) emptySettings(orgID snowflake.ID) *settingsdomain.OrgSettings {
	now := time.Now().UTC()
	return &settingsdomain.OrgSettings{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
