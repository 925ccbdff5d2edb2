package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Currency, error)
	List(ctx context.Context) ([]Currency, error)
	GetByID(ctx context.Context, id string) (*Currency, error)
	Update(ctx context.Context, req UpdateRequest) (*Currency, error)
	SetDefault(ctx context.Context, id string) (*Currency, error)
}

type CreateRequest struct {
	Code          string           `json:"code"`
	Symbol        string           `json:"symbol"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate"`
	DecimalPlaces *int32           `json:"decimal_places"`
	IsDefault     bool             `json:"is_default"`
}

type UpdateRequest struct {
	ID            string           `json:"id"`
	Symbol        *string          `json:"symbol,omitempty"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate,omitempty"`
	DecimalPlaces *int32           `json:"decimal_places,omitempty"`
}
