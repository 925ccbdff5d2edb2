package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) docdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, tx *gorm.DB, doc *docdomain.Document) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO documents (
			id, org_id, doc_type, doc_number, client_id, status,
			issue_date, due_date,
			currency_code, currency_symbol, currency_decimal_places,
			subtotal_ht, total_tax, stamp_duty, total_ttc,
			notes, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID,
		doc.OrgID,
		doc.Type,
		doc.Number,
		doc.ClientID,
		doc.Status,
		doc.IssueDate,
		doc.DueDate,
		doc.CurrencyCode,
		doc.CurrencySymbol,
		doc.CurrencyDecimalPlaces,
		doc.SubtotalHT,
		doc.TotalTax,
		doc.StampDuty,
		doc.TotalTTC,
		doc.Notes,
		doc.Metadata,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Error
}

func (r *repository) InsertLines(ctx context.Context, tx *gorm.DB, lines []docdomain.LineItem) error {
	for i := range lines {
		err := tx.WithContext(ctx).Exec(
			`INSERT INTO document_lines (
				id, org_id, document_id, position, product_id, description,
				quantity, unit_price, discount_percent, tax_id, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			lines[i].ID,
			lines[i].OrgID,
			lines[i].DocumentID,
			lines[i].Position,
			lines[i].ProductID,
			lines[i].Description,
			lines[i].Quantity,
			lines[i].UnitPrice,
			lines[i].DiscountPercent,
			lines[i].TaxID,
			lines[i].CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteLines(ctx context.Context, tx *gorm.DB, orgID, documentID snowflake.ID) error {
	return tx.WithContext(ctx).Exec(
		`DELETE FROM document_lines WHERE org_id = ? AND document_id = ?`,
		orgID,
		documentID,
	).Error
}

func (r *repository) UpdateHeader(ctx context.Context, tx *gorm.DB, doc *docdomain.Document) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE documents
		 SET client_id = ?, issue_date = ?, due_date = ?,
		     subtotal_ht = ?, total_tax = ?, stamp_duty = ?, total_ttc = ?,
		     notes = ?, updated_at = ?
		 WHERE org_id = ? AND id = ?`,
		doc.ClientID,
		doc.IssueDate,
		doc.DueDate,
		doc.SubtotalHT,
		doc.TotalTax,
		doc.StampDuty,
		doc.TotalTTC,
		doc.Notes,
		doc.UpdatedAt,
		doc.OrgID,
		doc.ID,
	).Error
}

func (r *repository) FindByID(ctx context.Context, orgID, id snowflake.ID) (*docdomain.Document, error) {
	var doc docdomain.Document
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM documents WHERE org_id = ? AND id = ?`,
		orgID,
		id,
	).Scan(&doc).Error
	if err != nil {
		return nil, err
	}
	if doc.ID == 0 {
		return nil, nil
	}
	return &doc, nil
}

func (r *repository) FindLines(ctx context.Context, orgID, documentID snowflake.ID) ([]docdomain.LineItem, error) {
	var lines []docdomain.LineItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM document_lines
		 WHERE org_id = ? AND document_id = ?
		 ORDER BY position ASC`,
		orgID,
		documentID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID, filter docdomain.ListFilter) ([]docdomain.Document, error) {
	var items []docdomain.Document
	stmt := r.db.WithContext(ctx).
		Model(&docdomain.Document{}).
		Where("org_id = ?", orgID)

	if filter.Type != "" {
		stmt = stmt.Where("doc_type = ?", filter.Type)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		stmt = stmt.Where("client_id = ?", *filter.ClientID)
	}
	if filter.IssueFrom != nil {
		stmt = stmt.Where("issue_date >= ?", *filter.IssueFrom)
	}
	if filter.IssueTo != nil {
		stmt = stmt.Where("issue_date <= ?", *filter.IssueTo)
	}

	if err := stmt.Order("issue_date DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, doc *docdomain.Document) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE documents SET status = ?, updated_at = ? WHERE org_id = ? AND id = ?`,
		doc.Status,
		doc.UpdatedAt,
		doc.OrgID,
		doc.ID,
	).Error
}

func (r *repository) Delete(ctx context.Context, orgID, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM document_lines WHERE org_id = ? AND document_id = ?`, orgID, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM documents WHERE org_id = ? AND id = ?`, orgID, id).Error
	})
}
