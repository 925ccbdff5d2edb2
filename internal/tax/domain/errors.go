package domain

import "errors"

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidTaxRate      = errors.New("invalid_tax_rate")
	ErrInvalidTaxAmount    = errors.New("invalid_tax_amount")
)
