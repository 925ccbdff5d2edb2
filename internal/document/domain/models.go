// Package domain contains the parameterized billing document model.
//
// Invoices, quotes and delivery notes share one structure and differ
// only by status vocabulary and a few optional fields, so they are one
// Document type with a Type tag instead of three near-identical models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Type tags the document variant.
type Type string

const (
	TypeInvoice      Type = "invoice"
	TypeQuote        Type = "quote"
	TypeDeliveryNote Type = "delivery_note"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypeQuote, TypeDeliveryNote:
		return true
	}
	return false
}

// Document is one billing document. The currency fields are copied from
// the currency table at creation time and never updated afterwards, so
// currency edits cannot rewrite historical documents.
type Document struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`

	Type   Type   `gorm:"column:doc_type;type:text;not null;index" json:"type"`
	Number string `gorm:"column:doc_number;type:text;not null" json:"number"`

	ClientID snowflake.ID `gorm:"column:client_id;not null;index" json:"client_id"`
	Status   Status       `gorm:"type:text;not null;default:'draft'" json:"status"`

	IssueDate time.Time  `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate   *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`

	CurrencyCode          string `gorm:"column:currency_code;type:char(3);not null" json:"currency_code"`
	CurrencySymbol        string `gorm:"column:currency_symbol;type:text;not null;default:''" json:"currency_symbol"`
	CurrencyDecimalPlaces int32  `gorm:"column:currency_decimal_places;not null;default:2" json:"currency_decimal_places"`

	SubtotalHT decimal.Decimal `gorm:"column:subtotal_ht;type:numeric(16,4);not null;default:0" json:"subtotal_ht"`
	TotalTax   decimal.Decimal `gorm:"column:total_tax;type:numeric(16,4);not null;default:0" json:"total_tax"`
	StampDuty  decimal.Decimal `gorm:"column:stamp_duty;type:numeric(12,4);not null;default:0" json:"stamp_duty"`
	TotalTTC   decimal.Decimal `gorm:"column:total_ttc;type:numeric(16,4);not null;default:0" json:"total_ttc"`

	Notes    string            `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Lines []LineItem `gorm:"-" json:"lines"`
}

func (Document) TableName() string { return "documents" }

// LineItem is one position on a document. Derived amounts (subtotal,
// discount, tax, total) are never stored; they are recomputed from the
// raw fields on demand.
type LineItem struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`
	DocumentID snowflake.ID `gorm:"column:document_id;not null;index" json:"document_id"`

	Position    int           `gorm:"not null" json:"position"`
	ProductID   *snowflake.ID `gorm:"column:product_id;index" json:"product_id,omitempty"`
	Description string        `gorm:"type:text;not null;default:''" json:"description"`

	Quantity        decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(14,4);not null;default:0" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(6,3);not null;default:0" json:"discount_percent"`
	TaxID           *snowflake.ID   `gorm:"column:tax_id" json:"tax_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (LineItem) TableName() string { return "document_lines" }

// Blank reports whether the line carries no meaningful input yet.
func (l LineItem) Blank() bool {
	return l.ProductID == nil && l.Description == "" && l.Quantity.IsZero() && l.UnitPrice.IsZero()
}
