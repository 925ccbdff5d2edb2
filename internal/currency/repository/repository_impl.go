package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) currencydomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, currency *currencydomain.Currency) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO currencies (
			id, org_id, code, symbol, exchange_rate, decimal_places, is_default, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		currency.ID,
		currency.OrgID,
		currency.Code,
		currency.Symbol,
		currency.ExchangeRate,
		currency.DecimalPlaces,
		currency.IsDefault,
		currency.CreatedAt,
		currency.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, orgID, id snowflake.ID) (*currencydomain.Currency, error) {
	var currency currencydomain.Currency
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, org_id, code, symbol, exchange_rate, decimal_places, is_default, created_at, updated_at
		 FROM currencies
		 WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&currency).Error
	if err != nil {
		return nil, err
	}
	if currency.ID == 0 {
		return nil, nil
	}
	return &currency, nil
}

func (r *repository) FindDefault(ctx context.Context, orgID snowflake.ID) (*currencydomain.Currency, error) {
	var currency currencydomain.Currency
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, org_id, code, symbol, exchange_rate, decimal_places, is_default, created_at, updated_at
		 FROM currencies
		 WHERE org_id = ? AND is_default = true
		 ORDER BY id ASC
		 LIMIT 1`,
		orgID,
	).Scan(&currency).Error
	if err != nil {
		return nil, err
	}
	if currency.ID == 0 {
		return nil, nil
	}
	return &currency, nil
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID) ([]currencydomain.Currency, error) {
	var items []currencydomain.Currency
	err := r.db.WithContext(ctx).
		Model(&currencydomain.Currency{}).
		Where("org_id = ?", orgID).
		Order("code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, currency *currencydomain.Currency) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE currencies
		 SET symbol = ?, exchange_rate = ?, decimal_places = ?, is_default = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		currency.Symbol,
		currency.ExchangeRate,
		currency.DecimalPlaces,
		currency.IsDefault,
		currency.UpdatedAt,
		currency.OrgID,
		currency.ID,
	).Error
}

func (r *repository) ClearDefault(ctx context.Context, orgID snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE currencies SET is_default = false WHERE org_id = ?`,
		orgID,
	).Error
}
