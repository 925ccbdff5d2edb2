package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, query string) ([]Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateClient(ctx context.Context, req ClientRequest) (*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, query string) ([]Client, error)
	UpdateClient(ctx context.Context, id string, req ClientRequest) (*Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type ProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Unit        string           `json:"unit"`
	TaxID       *snowflake.ID    `json:"tax_id,string,omitempty"`
}

type ClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	FiscalID string `json:"fiscal_id"`
}
