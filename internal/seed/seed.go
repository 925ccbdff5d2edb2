// Package seed bootstraps the default tenant so a fresh install is
// usable without manual setup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	organizationdomain "github.com/facturio/facturio/internal/organization/domain"
	pkgdb "github.com/facturio/facturio/pkg/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultOrgName = "Main"
	defaultOrgSlug = "main"
)

// EnsureMainOrg seeds the default organization for startup bootstrap.
func EnsureMainOrg(db *gorm.DB) error {
	return ensure(db, 0)
}

// EnsureMainOrgWithID seeds the default organization under a fixed ID,
// so DEFAULT_ORG in the environment and the database agree.
func EnsureMainOrgWithID(db *gorm.DB, orgID int64) error {
	return ensure(db, snowflake.ID(orgID))
}

func ensure(db *gorm.DB, orgID snowflake.ID) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := ensureMainOrgTx(ctx, tx, node, orgID)
		if err != nil {
			return err
		}
		return ensureBaseCurrencyTx(ctx, tx, node, org.ID)
	})
}

func ensureMainOrgTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID) (*organizationdomain.Organization, error) {
	var org organizationdomain.Organization
	err := tx.WithContext(ctx).
		Where("slug = ?", defaultOrgSlug).
		First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if orgID == 0 {
		orgID = node.Generate()
	}
	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        orgID,
		Name:      defaultOrgName,
		Slug:      defaultOrgSlug,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		// another instance may have seeded concurrently
		if pkgdb.IsDuplicateKeyErr(err) {
			err = tx.WithContext(ctx).Where("slug = ?", defaultOrgSlug).First(&org).Error
			if err == nil {
				return &org, nil
			}
		}
		return nil, err
	}
	return &org, nil
}

// ensureBaseCurrencyTx seeds the base currency so documents can be
// created before any currency is configured.
func ensureBaseCurrencyTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&currencydomain.Currency{}).
		Where("org_id = ?", orgID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	base := currencydomain.Currency{
		ID:            node.Generate(),
		OrgID:         orgID,
		Code:          "TND",
		Symbol:        "DT",
		ExchangeRate:  decimal.NewFromInt(1),
		DecimalPlaces: 3,
		IsDefault:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return tx.WithContext(ctx).Create(&base).Error
}
