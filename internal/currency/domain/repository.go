package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, currency *Currency) error
	FindByID(ctx context.Context, orgID, id snowflake.ID) (*Currency, error)
	FindDefault(ctx context.Context, orgID snowflake.ID) (*Currency, error)
	List(ctx context.Context, orgID snowflake.ID) ([]Currency, error)
	Update(ctx context.Context, currency *Currency) error
	ClearDefault(ctx context.Context, orgID snowflake.ID) error
}
