package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateProduct(ctx context.Context, product *Product) error
	FindProduct(ctx context.Context, orgID, id snowflake.ID) (*Product, error)
	ListProducts(ctx context.Context, orgID snowflake.ID) ([]Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, orgID, id snowflake.ID) error

	CreateClient(ctx context.Context, client *Client) error
	FindClient(ctx context.Context, orgID, id snowflake.ID) (*Client, error)
	ListClients(ctx context.Context, orgID snowflake.ID) ([]Client, error)
	UpdateClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, orgID, id snowflake.ID) error
}
