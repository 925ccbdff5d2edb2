package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Service reserves and previews document numbers.
type Service interface {
	// Reserve atomically issues the next number for (org, docType). It
	// must run inside the caller's transaction so the reservation commits
	// or rolls back together with the document it numbers.
	Reserve(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, docType string, now time.Time) (string, error)

	// Preview renders the number the next reservation would produce
	// without consuming a sequence value.
	Preview(ctx context.Context, docType string) (string, error)

	GetConfig(ctx context.Context, docType string) (*Sequence, error)
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (*Sequence, error)
}

type UpdateConfigRequest struct {
	DocType       string       `json:"doc_type"`
	Prefix        *string      `json:"prefix,omitempty"`
	Suffix        *string      `json:"suffix,omitempty"`
	PaddingDigits *int         `json:"padding_digits,omitempty"`
	NextSeq       *int64       `json:"next_sequence_number,omitempty"`
	ResetPeriod   *ResetPeriod `json:"reset_period,omitempty"`
}
