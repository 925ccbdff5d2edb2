package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidStampDuty    = errors.New("invalid_stamp_duty")
)

type Service interface {
	// Resolve projects the effective defaults for a new document.
	// Read-only; incomplete settings fall back to documented defaults.
	Resolve(ctx context.Context, orgID snowflake.ID) (Defaults, error)

	Get(ctx context.Context) (*OrgSettings, error)
	Update(ctx context.Context, req UpdateRequest) (*OrgSettings, error)
}

type UpdateRequest struct {
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyAddress *string `json:"company_address,omitempty"`
	CompanyEmail   *string `json:"company_email,omitempty"`
	CompanyPhone   *string `json:"company_phone,omitempty"`
	FiscalID       *string `json:"fiscal_id,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`

	DefaultTaxID *snowflake.ID `json:"default_tax_id,string,omitempty"`

	StampDutyEnabled *bool            `json:"stamp_duty_enabled,omitempty"`
	StampDutyAmount  *decimal.Decimal `json:"stamp_duty_amount,omitempty"`
}
