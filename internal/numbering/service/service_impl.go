package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"github.com/facturio/facturio/internal/numbering/format"
	"github.com/facturio/facturio/internal/orgcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default prefixes follow the French document vocabulary of the product:
// facture, devis, bon de sortie.
var defaultPrefixes = map[string]string{
	"invoice":       "FAC-",
	"quote":         "DEV-",
	"delivery_note": "BS-",
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  numberingdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  numberingdomain.Repository
}

func New(p Params) numberingdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("numbering.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Reserve(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, docType string, now time.Time) (string, error) {
	if orgID == 0 {
		return "", numberingdomain.ErrInvalidOrganization
	}

	seq, err := s.repo.FindForUpdate(ctx, tx, orgID, docType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", numberingdomain.ErrUnavailable, err)
	}
	if seq == nil {
		seq = s.defaultSequence(orgID, docType, now)
		if err := s.repo.Insert(ctx, tx, seq); err != nil {
			return "", fmt.Errorf("%w: %v", numberingdomain.ErrUnavailable, err)
		}
	}

	periodKey := seq.ResetPeriod.PeriodKey(now)
	current := seq.NextSeq
	if periodKey != seq.LastPeriodKey {
		current = 1
	}

	number, err := format.Render(seq.Prefix, current, seq.PaddingDigits, seq.Suffix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", numberingdomain.ErrUnavailable, err)
	}

	seq.NextSeq = current + 1
	seq.LastPeriodKey = periodKey
	seq.UpdatedAt = now.UTC()
	if err := s.repo.UpdateCounter(ctx, tx, seq); err != nil {
		return "", fmt.Errorf("%w: %v", numberingdomain.ErrUnavailable, err)
	}

	return number, nil
}

func (s *Service) Preview(ctx context.Context, docType string) (string, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return "", numberingdomain.ErrInvalidOrganization
	}

	seq, err := s.repo.Find(ctx, orgID, docType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", numberingdomain.ErrUnavailable, err)
	}
	if seq == nil {
		seq = s.defaultSequence(orgID, docType, time.Now().UTC())
	}

	current := seq.NextSeq
	if seq.ResetPeriod.PeriodKey(time.Now().UTC()) != seq.LastPeriodKey {
		current = 1
	}

	return format.Render(seq.Prefix, current, seq.PaddingDigits, seq.Suffix)
}

func (s *Service) GetConfig(ctx context.Context, docType string) (*numberingdomain.Sequence, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, numberingdomain.ErrInvalidOrganization
	}

	seq, err := s.repo.Find(ctx, orgID, docType)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, numberingdomain.ErrNotFound
	}
	return seq, nil
}

func (s *Service) UpdateConfig(ctx context.Context, req numberingdomain.UpdateConfigRequest) (*numberingdomain.Sequence, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, numberingdomain.ErrInvalidOrganization
	}

	docType := strings.TrimSpace(req.DocType)
	seq, err := s.repo.Find(ctx, orgID, docType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inserted := false
	if seq == nil {
		seq = s.defaultSequence(orgID, docType, now)
		inserted = true
	}

	if req.Prefix != nil {
		seq.Prefix = *req.Prefix
	}
	if req.Suffix != nil {
		seq.Suffix = *req.Suffix
	}
	if req.PaddingDigits != nil {
		seq.PaddingDigits = *req.PaddingDigits
	}
	if req.NextSeq != nil {
		seq.NextSeq = *req.NextSeq
	}
	if req.ResetPeriod != nil {
		seq.ResetPeriod = *req.ResetPeriod
	}
	seq.UpdatedAt = now

	if err := seq.Validate(); err != nil {
		return nil, err
	}

	if inserted {
		if err := s.repo.Insert(ctx, s.db, seq); err != nil {
			return nil, err
		}
		return seq, nil
	}

	if err := s.repo.UpdateConfig(ctx, seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func (s *Service) defaultSequence(orgID snowflake.ID, docType string, now time.Time) *numberingdomain.Sequence {
	return &numberingdomain.Sequence{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		DocType:       docType,
		Prefix:        defaultPrefixes[docType],
		PaddingDigits: 3,
		NextSeq:       1,
		ResetPeriod:   numberingdomain.ResetAnnually,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
}
