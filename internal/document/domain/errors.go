package domain

import "errors"

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidType         = errors.New("invalid_document_type")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidPosition     = errors.New("invalid_line_position")
	ErrNotFound            = errors.New("not_found")
	ErrClientNotFound      = errors.New("client_not_found")
	ErrProductNotFound     = errors.New("product_not_found")
	ErrTaxNotFound         = errors.New("tax_not_found")
	ErrCurrencyNotFound    = errors.New("currency_not_found")
	ErrEmptyDocument       = errors.New("empty_document")

	// ErrInvalidTransition rejects a lifecycle move the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid_transition")

	// ErrImmutableDocument rejects any mutation of a non-draft document.
	ErrImmutableDocument = errors.New("immutable_document")

	// ErrSubmissionInFlight rejects a second create/update while one is
	// still outstanding for the same draft.
	ErrSubmissionInFlight = errors.New("submission_in_flight")
)
