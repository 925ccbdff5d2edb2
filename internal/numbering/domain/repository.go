package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// FindForUpdate loads the sequence row inside tx, holding a row lock
	// on dialects that support it so concurrent reservations serialize.
	FindForUpdate(ctx context.Context, tx *gorm.DB, orgID snowflake.ID, docType string) (*Sequence, error)
	Insert(ctx context.Context, tx *gorm.DB, seq *Sequence) error
	UpdateCounter(ctx context.Context, tx *gorm.DB, seq *Sequence) error

	Find(ctx context.Context, orgID snowflake.ID, docType string) (*Sequence, error)
	UpdateConfig(ctx context.Context, seq *Sequence) error
}
