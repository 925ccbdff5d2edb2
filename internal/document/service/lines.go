package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"github.com/facturio/facturio/internal/document/lineitems"
	"github.com/facturio/facturio/internal/money"
	"github.com/facturio/facturio/internal/orgcontext"
	taxservice "github.com/facturio/facturio/internal/tax/service"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddLine appends a blank line to a draft.
func (s *Service) AddLine(ctx context.Context, id string) (*docdomain.Document, error) {
	return s.editLines(ctx, id, func(m *lineitems.Manager) error {
		m.AddBlankLine()
		return nil
	})
}

// SelectLineProduct populates the line at position from the catalog.
// Picking a product already present on another line collapses into that
// line instead of duplicating it.
func (s *Service) SelectLineProduct(ctx context.Context, id string, position int, productID snowflake.ID) (*docdomain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, docdomain.ErrInvalidOrganization
	}

	snapshot, err := s.catalog.ListProducts(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return s.editLines(ctx, id, func(m *lineitems.Manager) error {
		return m.SelectProduct(position, productID, snapshot)
	})
}

// PatchLine updates a subset of one line's raw fields on a draft.
func (s *Service) PatchLine(ctx context.Context, id string, position int, req docdomain.LinePatchRequest) (*docdomain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, docdomain.ErrInvalidOrganization
	}

	patch := lineitems.FieldPatch{
		Description:     req.Description,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
	}
	switch {
	case req.ClearTax:
		var none *snowflake.ID
		patch.TaxID = &none
	case req.TaxID != nil:
		tax, err := s.taxes.FindByID(ctx, orgID, *req.TaxID)
		if err != nil {
			return nil, err
		}
		if tax == nil {
			return nil, docdomain.ErrTaxNotFound
		}
		ref := &tax.ID
		patch.TaxID = &ref
	}

	return s.editLines(ctx, id, func(m *lineitems.Manager) error {
		return m.UpdateField(position, patch)
	})
}

// RemoveLine deletes the line at position; following lines shift up.
func (s *Service) RemoveLine(ctx context.Context, id string, position int) (*docdomain.Document, error) {
	return s.editLines(ctx, id, func(m *lineitems.Manager) error {
		return m.RemoveLine(position)
	})
}

// editLines loads a draft's line collection into a manager, applies one
// edit, recomputes totals and persists the result atomically.
func (s *Service) editLines(ctx context.Context, id string, edit func(m *lineitems.Manager) error) (*docdomain.Document, error) {
	orgID, docID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.FindByID(ctx, orgID, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, docdomain.ErrNotFound
	}
	if !doc.Status.Mutable() {
		return nil, docdomain.ErrImmutableDocument
	}

	items, err := s.repo.FindLines(ctx, orgID, docID)
	if err != nil {
		return nil, err
	}

	manager := lineitems.NewManager(items)
	if err := edit(manager); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lines := manager.Lines()
	for i := range lines {
		if lines[i].ID == 0 {
			lines[i].ID = s.genID.Generate()
			lines[i].CreatedAt = now
		}
		lines[i].OrgID = orgID
		lines[i].DocumentID = docID
	}

	if err := s.recomputeFromItems(ctx, doc, lines); err != nil {
		return nil, err
	}
	doc.UpdatedAt = now

	if err := s.acquire(docID); err != nil {
		return nil, err
	}
	defer s.release(docID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeader(ctx, tx, doc); err != nil {
			return err
		}
		if err := s.repo.DeleteLines(ctx, tx, orgID, docID); err != nil {
			return err
		}
		return s.repo.InsertLines(ctx, tx, lines)
	})
	if err != nil {
		return nil, err
	}

	doc.Lines = lines
	return doc, nil
}

// recomputeFromItems rebuilds the document totals from stored lines.
// Lines without a quantity yet contribute nothing; they are kept in the
// collection but excluded from the arithmetic.
func (s *Service) recomputeFromItems(ctx context.Context, doc *docdomain.Document, items []docdomain.LineItem) error {
	inputs := make([]money.LineInput, 0, len(items))
	for _, item := range items {
		if item.Quantity.IsZero() {
			continue
		}

		rate, fixed := decimal.Zero, decimal.Zero
		if item.TaxID != nil {
			tax, err := s.taxes.FindByID(ctx, doc.OrgID, *item.TaxID)
			if err != nil {
				return err
			}
			if tax == nil {
				return docdomain.ErrTaxNotFound
			}
			rate, fixed = taxservice.RateFor(tax)
		}

		inputs = append(inputs, money.LineInput{
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxRate:         rate,
			TaxFixed:        fixed,
		})
	}

	defaults, err := s.settings.Resolve(ctx, doc.OrgID)
	if err != nil {
		return err
	}
	stampDuty := decimal.Zero
	if doc.Type == docdomain.TypeInvoice && defaults.StampDutyEnabled {
		stampDuty = defaults.StampDutyAmount
	}

	totals, err := money.ComputeTotals(inputs, doc.CurrencyDecimalPlaces, stampDuty)
	if err != nil {
		return err
	}
	doc.SubtotalHT = totals.SubtotalHT
	doc.TotalTax = totals.TotalTax
	doc.StampDuty = totals.StampDuty
	doc.TotalTTC = totals.TotalTTC
	return nil
}
