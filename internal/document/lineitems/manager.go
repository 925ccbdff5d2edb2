// Package lineitems manages the ordered line collection of a draft
// document: add, populate from catalog, edit, remove. Derived amounts
// are never kept here; callers recompute them from the raw fields.
package lineitems

import (
	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	"github.com/facturio/facturio/internal/document/domain"
	"github.com/shopspring/decimal"
)

// Manager holds the working copy of a draft's lines. Insertion order is
// significant and preserved; there is no reordering operation.
type Manager struct {
	lines []domain.LineItem
}

func NewManager(lines []domain.LineItem) *Manager {
	working := make([]domain.LineItem, len(lines))
	copy(working, lines)
	return &Manager{lines: working}
}

// Lines returns the collection with positions renumbered from 0.
func (m *Manager) Lines() []domain.LineItem {
	for i := range m.lines {
		m.lines[i].Position = i
	}
	return m.lines
}

// Len returns the number of lines.
func (m *Manager) Len() int {
	return len(m.lines)
}

// AddBlankLine appends an empty line. No validation happens here; a
// blank line only becomes meaningful once populated.
func (m *Manager) AddBlankLine() {
	m.lines = append(m.lines, domain.LineItem{Position: len(m.lines)})
}

// SelectProduct populates the line at position from the catalog snapshot.
//
// When another line already references the product, that line's quantity
// is incremented by one and its price and description refreshed from the
// snapshot (current catalog price wins); the targeted line is left
// untouched. This keeps one row per product instead of duplicates.
func (m *Manager) SelectProduct(position int, productID snowflake.ID, snapshot []catalogdomain.Product) error {
	if position < 0 || position >= len(m.lines) {
		return domain.ErrInvalidPosition
	}

	product := findProduct(productID, snapshot)
	if product == nil {
		return domain.ErrProductNotFound
	}

	for i := range m.lines {
		if i == position {
			continue
		}
		if m.lines[i].ProductID != nil && *m.lines[i].ProductID == productID {
			m.lines[i].Quantity = m.lines[i].Quantity.Add(decimal.NewFromInt(1))
			m.lines[i].UnitPrice = product.UnitPrice
			m.lines[i].Description = product.Name
			return nil
		}
	}

	id := product.ID
	m.lines[position].ProductID = &id
	m.lines[position].Description = product.Name
	m.lines[position].Quantity = decimal.NewFromInt(1)
	m.lines[position].UnitPrice = product.UnitPrice
	m.lines[position].TaxID = product.TaxID
	return nil
}

// FieldPatch updates a subset of one line's raw fields; nil fields are
// left untouched.
type FieldPatch struct {
	Description     *string
	Quantity        *decimal.Decimal
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	TaxID           **snowflake.ID
}

// UpdateField applies a patch to the line at position. Values are stored
// as given; validation happens when totals are computed.
func (m *Manager) UpdateField(position int, patch FieldPatch) error {
	if position < 0 || position >= len(m.lines) {
		return domain.ErrInvalidPosition
	}

	line := &m.lines[position]
	if patch.Description != nil {
		line.Description = *patch.Description
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		line.UnitPrice = *patch.UnitPrice
	}
	if patch.DiscountPercent != nil {
		line.DiscountPercent = *patch.DiscountPercent
	}
	if patch.TaxID != nil {
		line.TaxID = *patch.TaxID
	}
	return nil
}

// RemoveLine deletes the line at position; following lines shift up.
func (m *Manager) RemoveLine(position int) error {
	if position < 0 || position >= len(m.lines) {
		return domain.ErrInvalidPosition
	}
	m.lines = append(m.lines[:position], m.lines[position+1:]...)
	return nil
}

func findProduct(productID snowflake.ID, snapshot []catalogdomain.Product) *catalogdomain.Product {
	for i := range snapshot {
		if snapshot[i].ID == productID {
			return &snapshot[i]
		}
	}
	return nil
}
