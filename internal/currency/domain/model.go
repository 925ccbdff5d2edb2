package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Currency is an org-scoped currency configuration.
//
// Documents copy code, symbol and decimal places at creation time, so
// editing a currency never rewrites historical documents.
type Currency struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`

	Code          string          `gorm:"type:char(3);not null" json:"code"`
	Symbol        string          `gorm:"type:text;not null" json:"symbol"`
	ExchangeRate  decimal.Decimal `gorm:"type:numeric(14,6);not null;default:1" json:"exchange_rate"`
	DecimalPlaces int32           `gorm:"column:decimal_places;not null;default:2" json:"decimal_places"`
	IsDefault     bool            `gorm:"column:is_default;not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Currency) TableName() string { return "currencies" }

func (c *Currency) Validate() error {
	if len(c.Code) != 3 {
		return ErrInvalidCode
	}
	if c.ExchangeRate.Sign() <= 0 {
		return ErrInvalidExchangeRate
	}
	if c.DecimalPlaces < 0 || c.DecimalPlaces > 4 {
		return ErrInvalidDecimalPlaces
	}
	return nil
}
