package domain

import "errors"

var (
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidCode          = errors.New("invalid_currency_code")
	ErrInvalidExchangeRate  = errors.New("invalid_exchange_rate")
	ErrInvalidDecimalPlaces = errors.New("invalid_decimal_places")
	ErrNotFound             = errors.New("not_found")
)
