package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tax, error)
	List(ctx context.Context, req ListRequest) ([]Tax, error)
	GetByID(ctx context.Context, id string) (*Tax, error)
	Update(ctx context.Context, req UpdateRequest) (*Tax, error)
	Disable(ctx context.Context, id string) (*Tax, error)
}

type CreateRequest struct {
	Name      string           `json:"name"`
	Rate      *decimal.Decimal `json:"rate"`
	IsFixed   bool             `json:"is_fixed"`
	Amount    *decimal.Decimal `json:"amount"`
	IsEnabled *bool            `json:"is_enabled"`
}

type ListRequest struct {
	Name      string
	IsEnabled *bool
}

type UpdateRequest struct {
	ID     string           `json:"id"`
	Name   *string          `json:"name,omitempty"`
	Rate   *decimal.Decimal `json:"rate,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}
