package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) numberingdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindForUpdate(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, docType string) (*numberingdomain.Sequence, error) {
	stmt := tx.WithContext(ctx).
		Model(&numberingdomain.Sequence{}).
		Where("org_id = ? AND doc_type = ?", orgID, docType)

	// sqlite has no row locks; its single-writer transactions already
	// serialize reservations.
	if tx.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq numberingdomain.Sequence
	err := stmt.First(&seq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seq, nil
}

func (r *repository) Insert(ctx context.Context, tx *gorm.DB, seq *numberingdomain.Sequence) error {
	return tx.WithContext(ctx).Create(seq).Error
}

func (r *repository) UpdateCounter(ctx context.Context, tx *gorm.DB, seq *numberingdomain.Sequence) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE document_sequences
		 SET next_seq = ?, last_period_key = ?, updated_at = ?
		 WHERE id = ?`,
		seq.NextSeq,
		seq.LastPeriodKey,
		seq.UpdatedAt,
		seq.ID,
	).Error
}

func (r *repository) Find(ctx context.Context, orgID snowflake.ID, docType string) (*numberingdomain.Sequence, error) {
	var seq numberingdomain.Sequence
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND doc_type = ?", orgID, docType).
		First(&seq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seq, nil
}

func (r *repository) UpdateConfig(ctx context.Context, seq *numberingdomain.Sequence) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE document_sequences
		 SET prefix = ?, suffix = ?, padding_digits = ?, next_seq = ?, reset_period = ?, updated_at = ?
		 WHERE id = ?`,
		seq.Prefix,
		seq.Suffix,
		seq.PaddingDigits,
		seq.NextSeq,
		seq.ResetPeriod,
		seq.UpdatedAt,
		seq.ID,
	).Error
}
