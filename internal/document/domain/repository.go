package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Type      Type
	Status    Status
	ClientID  *snowflake.ID
	IssueFrom *time.Time
	IssueTo   *time.Time
}

// Repository persists documents and their lines. Writes that must be
// atomic with number reservation take the caller's transaction.
type Repository interface {
	Insert(ctx context.Context, tx *gorm.DB, doc *Document) error
	InsertLines(ctx context.Context, tx *gorm.DB, lines []LineItem) error
	DeleteLines(ctx context.Context, tx *gorm.DB, orgID, documentID snowflake.ID) error
	UpdateHeader(ctx context.Context, tx *gorm.DB, doc *Document) error

	FindByID(ctx context.Context, orgID, id snowflake.ID) (*Document, error)
	FindLines(ctx context.Context, orgID, documentID snowflake.ID) ([]LineItem, error)
	List(ctx context.Context, orgID snowflake.ID, filter ListFilter) ([]Document, error)
	UpdateStatus(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, orgID, id snowflake.ID) error
}
