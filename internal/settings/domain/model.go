package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"github.com/shopspring/decimal"
)

// OrgSettings is the company-level configuration row, one per org.
type OrgSettings struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;uniqueIndex" json:"organization_id"`

	CompanyName    string `gorm:"type:text;not null;default:''" json:"company_name"`
	CompanyAddress string `gorm:"type:text;not null;default:''" json:"company_address"`
	CompanyEmail   string `gorm:"type:text;not null;default:''" json:"company_email"`
	CompanyPhone   string `gorm:"type:text;not null;default:''" json:"company_phone"`
	FiscalID       string `gorm:"column:fiscal_id;type:text;not null;default:''" json:"fiscal_id"`
	LogoURL        string `gorm:"column:logo_url;type:text;not null;default:''" json:"logo_url"`

	DefaultTaxID *snowflake.ID `gorm:"column:default_tax_id" json:"default_tax_id,omitempty"`

	StampDutyEnabled bool            `gorm:"column:stamp_duty_enabled;not null;default:false" json:"stamp_duty_enabled"`
	StampDutyAmount  decimal.Decimal `gorm:"column:stamp_duty_amount;type:numeric(12,3);not null;default:0" json:"stamp_duty_amount"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (OrgSettings) TableName() string { return "org_settings" }

// Defaults is the resolved effective configuration for a new document.
//
// Currency is always set: when no default currency is configured the
// resolver falls back to the base currency rather than failing
// document creation.
type Defaults struct {
	Currency   currencydomain.Currency `json:"currency"`
	DefaultTax *taxdomain.Tax          `json:"default_tax,omitempty"`

	StampDutyEnabled bool            `json:"stamp_duty_enabled"`
	StampDutyAmount  decimal.Decimal `json:"stamp_duty_amount"`
}
