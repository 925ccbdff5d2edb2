package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ListFilter struct {
	Name      string
	IsEnabled *bool
}

type Repository interface {
	Create(ctx context.Context, tax *Tax) error
	FindByID(ctx context.Context, orgID, id snowflake.ID) (*Tax, error)
	List(ctx context.Context, orgID snowflake.ID, filter ListFilter) ([]Tax, error)
	Update(ctx context.Context, tax *Tax) error
}
