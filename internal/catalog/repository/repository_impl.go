package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) catalogdomain.Repository {
	return &repository{db: db}
}

func (r *repository) CreateProduct(ctx context.Context, product *catalogdomain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) FindProduct(ctx context.Context, orgID, id snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context, orgID snowflake.ID) ([]catalogdomain.Product, error) {
	var items []catalogdomain.Product
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateProduct(ctx context.Context, product *catalogdomain.Product) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", product.OrgID, product.ID).
		Save(product).Error
}

func (r *repository) DeleteProduct(ctx context.Context, orgID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&catalogdomain.Product{}).Error
}

func (r *repository) CreateClient(ctx context.Context, client *catalogdomain.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repository) FindClient(ctx context.Context, orgID, id snowflake.ID) (*catalogdomain.Client, error) {
	var client catalogdomain.Client
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *repository) ListClients(ctx context.Context, orgID snowflake.ID) ([]catalogdomain.Client, error) {
	var items []catalogdomain.Client
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateClient(ctx context.Context, client *catalogdomain.Client) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", client.OrgID, client.ID).
		Save(client).Error
}

func (r *repository) DeleteClient(ctx context.Context, orgID, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&catalogdomain.Client{}).Error
}
