package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ResetPeriod controls when a document counter restarts at 1.
type ResetPeriod string

const (
	ResetNever    ResetPeriod = "never"
	ResetAnnually ResetPeriod = "annually"
	ResetMonthly  ResetPeriod = "monthly"
)

// PeriodKey renders the period bucket for a point in time.
// Sequences reset when the key changes between two reservations.
func (p ResetPeriod) PeriodKey(t time.Time) string {
	switch p {
	case ResetAnnually:
		return t.UTC().Format("2006")
	case ResetMonthly:
		return t.UTC().Format("2006-01")
	default:
		return ""
	}
}

func (p ResetPeriod) Valid() bool {
	switch p {
	case ResetNever, ResetAnnually, ResetMonthly:
		return true
	}
	return false
}

// Sequence is the numbering state for one (org, document type) pair.
//
// NextSeq is the counter value the next reservation will render.
// LastPeriodKey records the period of the last issued number so a
// rollover resets the counter before issuing.
type Sequence struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"column:org_id;not null;index:ux_seq_org_doctype,unique" json:"organization_id"`

	DocType       string      `gorm:"column:doc_type;type:text;not null;index:ux_seq_org_doctype,unique" json:"doc_type"`
	Prefix        string      `gorm:"type:text;not null;default:''" json:"prefix"`
	Suffix        string      `gorm:"type:text;not null;default:''" json:"suffix"`
	PaddingDigits int         `gorm:"column:padding_digits;not null;default:3" json:"padding_digits"`
	NextSeq       int64       `gorm:"column:next_seq;not null;default:1" json:"next_sequence_number"`
	ResetPeriod   ResetPeriod `gorm:"column:reset_period;type:text;not null;default:'annually'" json:"reset_period"`
	LastPeriodKey string      `gorm:"column:last_period_key;type:text;not null;default:''" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Sequence) TableName() string { return "document_sequences" }

func (s *Sequence) Validate() error {
	if s.DocType == "" {
		return ErrInvalidConfig
	}
	if s.PaddingDigits < 0 || s.PaddingDigits > 12 {
		return ErrInvalidConfig
	}
	if s.NextSeq < 1 {
		return ErrInvalidConfig
	}
	if !s.ResetPeriod.Valid() {
		return ErrInvalidConfig
	}
	return nil
}
