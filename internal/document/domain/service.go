package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, req ListRequest) ([]Document, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Document, error)
	Transition(ctx context.Context, id string, to Status) (*Document, error)
	Delete(ctx context.Context, id string) error

	// Line editing on a draft. Each call persists the edited collection
	// and returns the document with recomputed totals.
	AddLine(ctx context.Context, id string) (*Document, error)
	SelectLineProduct(ctx context.Context, id string, position int, productID snowflake.ID) (*Document, error)
	PatchLine(ctx context.Context, id string, position int, req LinePatchRequest) (*Document, error)
	RemoveLine(ctx context.Context, id string, position int) (*Document, error)
}

// LineRequest carries the raw fields of one submitted line. Derived
// amounts sent by clients are ignored; totals are always recomputed
// server-side.
type LineRequest struct {
	ProductID       *snowflake.ID    `json:"product_id,string,omitempty"`
	Description     string           `json:"description"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	TaxID           *snowflake.ID    `json:"tax_id,string,omitempty"`
}

type CreateRequest struct {
	Type       Type          `json:"type"`
	ClientID   snowflake.ID  `json:"client_id,string"`
	CurrencyID *snowflake.ID `json:"currency_id,string,omitempty"`
	IssueDate  *time.Time    `json:"issue_date,omitempty"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	Notes      string        `json:"notes"`
	Lines      []LineRequest `json:"lines"`
}

type UpdateRequest struct {
	ClientID   *snowflake.ID `json:"client_id,string,omitempty"`
	CurrencyID *snowflake.ID `json:"currency_id,string,omitempty"`
	IssueDate  *time.Time    `json:"issue_date,omitempty"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
	Lines      []LineRequest `json:"lines"`
}

// LinePatchRequest updates a subset of one line's raw fields. Nil
// fields keep their value. ClearTax removes the tax reference and wins
// over TaxID when both are set.
type LinePatchRequest struct {
	Description     *string          `json:"description,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	TaxID           *snowflake.ID    `json:"tax_id,string,omitempty"`
	ClearTax        bool             `json:"clear_tax,omitempty"`
}

type ListRequest struct {
	Type      Type
	Status    Status
	ClientID  *snowflake.ID
	IssueFrom *time.Time
	IssueTo   *time.Time
}
