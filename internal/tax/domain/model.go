package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Tax is an org-scoped tax definition referenced by document lines.
//
// A tax is either percentage-based (Rate, e.g. 19 for 19%) or a fixed
// amount per line (IsFixed + Amount, e.g. stamp duty style charges).
type Tax struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index" json:"organization_id"`

	Name    string          `gorm:"type:text;not null" json:"name"`
	Rate    decimal.Decimal `gorm:"type:numeric(6,3);not null;default:0" json:"rate"`
	IsFixed bool            `gorm:"column:is_fixed;not null;default:false" json:"is_fixed"`
	Amount  decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"amount"`

	IsEnabled bool `gorm:"column:is_enabled;not null;default:true" json:"is_enabled"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tax) TableName() string { return "taxes" }

var hundred = decimal.NewFromInt(100)

func (t *Tax) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.IsFixed {
		if t.Amount.Sign() < 0 {
			return ErrInvalidTaxAmount
		}
		return nil
	}
	if t.Rate.Sign() < 0 || t.Rate.GreaterThan(hundred) {
		return ErrInvalidTaxRate
	}
	return nil
}
