package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	currencyrepo "github.com/facturio/facturio/internal/currency/repository"
	"github.com/facturio/facturio/internal/orgcontext"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	taxrepo "github.com/facturio/facturio/internal/tax/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func setup(t *testing.T) (*gorm.DB, settingsdomain.Service, *snowflake.Node, snowflake.ID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&settingsdomain.OrgSettings{},
		&currencydomain.Currency{},
		&taxdomain.Tax{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		CurrencyRepo: currencyrepo.NewRepository(db),
		TaxRepo:      taxrepo.NewRepository(db),
	})

	return db, svc, node, node.Generate()
}

func TestResolve_FallsBackToBaseCurrency(t *testing.T) {
	_, svc, _, orgID := setup(t)

	defaults, err := svc.Resolve(context.Background(), orgID)
	require.NoError(t, err)

	assert.Equal(t, "TND", defaults.Currency.Code)
	assert.Equal(t, "DT", defaults.Currency.Symbol)
	assert.EqualValues(t, 3, defaults.Currency.DecimalPlaces)
	assert.Nil(t, defaults.DefaultTax)
	assert.False(t, defaults.StampDutyEnabled)
}

func TestResolve_UsesConfiguredDefaults(t *testing.T) {
	db, svc, node, orgID := setup(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))
	now := time.Now().UTC()

	eur := currencydomain.Currency{
		ID: node.Generate(), OrgID: orgID,
		Code: "EUR", Symbol: "€",
		ExchangeRate: dec("3.3"), DecimalPlaces: 2, IsDefault: true,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, currencyrepo.NewRepository(db).Create(ctx, &eur))

	tva := taxdomain.Tax{
		ID: node.Generate(), OrgID: orgID, Name: "TVA 19%",
		Rate: dec("19"), IsEnabled: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, taxrepo.NewRepository(db).Create(ctx, &tva))

	enabled := true
	amount := dec("1.000")
	_, err := svc.Update(ctx, settingsdomain.UpdateRequest{
		DefaultTaxID:     &tva.ID,
		StampDutyEnabled: &enabled,
		StampDutyAmount:  &amount,
	})
	require.NoError(t, err)

	defaults, err := svc.Resolve(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", defaults.Currency.Code)
	require.NotNil(t, defaults.DefaultTax)
	assert.Equal(t, tva.ID, defaults.DefaultTax.ID)
	assert.True(t, defaults.StampDutyEnabled)
	assert.True(t, defaults.StampDutyAmount.Equal(dec("1")))
}

func TestResolve_DisabledDefaultTaxResolvesToNone(t *testing.T) {
	db, svc, node, orgID := setup(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))
	now := time.Now().UTC()

	taxes := taxrepo.NewRepository(db)
	old := taxdomain.Tax{
		ID: node.Generate(), OrgID: orgID, Name: "TVA 18%",
		Rate: dec("18"), IsEnabled: false, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, taxes.Create(ctx, &old))

	_, err := svc.Update(ctx, settingsdomain.UpdateRequest{DefaultTaxID: &old.ID})
	require.NoError(t, err)

	defaults, err := svc.Resolve(ctx, orgID)
	require.NoError(t, err)
	assert.Nil(t, defaults.DefaultTax)
}

func TestUpdate_UpsertsAndValidates(t *testing.T) {
	_, svc, _, orgID := setup(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	name := "Facturio SARL"
	row, err := svc.Update(ctx, settingsdomain.UpdateRequest{CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Facturio SARL", row.CompanyName)

	fiscal := "1234567/A/M/000"
	row, err = svc.Update(ctx, settingsdomain.UpdateRequest{FiscalID: &fiscal})
	require.NoError(t, err)
	assert.Equal(t, "Facturio SARL", row.CompanyName, "partial update keeps earlier fields")
	assert.Equal(t, "1234567/A/M/000", row.FiscalID)

	negative := dec("-1")
	_, err = svc.Update(ctx, settingsdomain.UpdateRequest{StampDutyAmount: &negative})
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidStampDuty)
}

func TestGet_WithoutRowReturnsEmptySettings(t *testing.T) {
	_, svc, _, orgID := setup(t)
	ctx := orgcontext.WithOrgID(context.Background(), int64(orgID))

	row, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, orgID, row.OrgID)
	assert.Empty(t, row.CompanyName)

	_, err = svc.Get(context.Background())
	assert.ErrorIs(t, err, settingsdomain.ErrInvalidOrganization)
}
