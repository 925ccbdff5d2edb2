package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tax *taxdomain.Tax) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO taxes (
			id, org_id, name, rate, is_fixed, amount, is_enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tax.ID,
		tax.OrgID,
		tax.Name,
		tax.Rate,
		tax.IsFixed,
		tax.Amount,
		tax.IsEnabled,
		tax.CreatedAt,
		tax.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, orgID, id snowflake.ID) (*taxdomain.Tax, error) {
	var tax taxdomain.Tax
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, org_id, name, rate, is_fixed, amount, is_enabled, created_at, updated_at
		 FROM taxes
		 WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&tax).Error
	if err != nil {
		return nil, err
	}
	if tax.ID == 0 {
		return nil, nil
	}
	return &tax, nil
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID, filter taxdomain.ListFilter) ([]taxdomain.Tax, error) {
	var items []taxdomain.Tax
	stmt := r.db.WithContext(ctx).
		Model(&taxdomain.Tax{}).
		Where("org_id = ?", orgID)

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	if err := stmt.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, tax *taxdomain.Tax) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE taxes
		 SET name = ?, rate = ?, is_fixed = ?, amount = ?, is_enabled = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		tax.Name,
		tax.Rate,
		tax.IsFixed,
		tax.Amount,
		tax.IsEnabled,
		tax.UpdatedAt,
		tax.OrgID,
		tax.ID,
	).Error
}
