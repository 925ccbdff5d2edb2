package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	"github.com/facturio/facturio/internal/orgcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, req catalogdomain.ProductRequest) (*catalogdomain.Product, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, catalogdomain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	product := catalogdomain.Product{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Unit:        strings.TrimSpace(req.Unit),
		TaxID:       req.TaxID,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.Sign() < 0 {
			return nil, catalogdomain.ErrInvalidPrice
		}
		product.UnitPrice = *req.UnitPrice
	}

	if err := s.repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error) {
	orgID, productID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindProduct(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, query string) ([]catalogdomain.Product, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, catalogdomain.ErrInvalidOrganization
	}

	items, err := s.repo.ListProducts(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return FilterProducts(query, items), nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req catalogdomain.ProductRequest) (*catalogdomain.Product, error) {
	orgID, productID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindProduct(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalogdomain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		product.Name = name
	}
	product.Description = strings.TrimSpace(req.Description)
	product.Unit = strings.TrimSpace(req.Unit)
	if req.TaxID != nil {
		product.TaxID = req.TaxID
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.Sign() < 0 {
			return nil, catalogdomain.ErrInvalidPrice
		}
		product.UnitPrice = *req.UnitPrice
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	orgID, productID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, orgID, productID)
}

func (s *Service) CreateClient(ctx context.Context, req catalogdomain.ClientRequest) (*catalogdomain.Client, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, catalogdomain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	now := time.Now().UTC()
	client := catalogdomain.Client{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		FiscalID:  strings.TrimSpace(req.FiscalID),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateClient(ctx, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*catalogdomain.Client, error) {
	orgID, clientID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.FindClient(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return client, nil
}

func (s *Service) ListClients(ctx context.Context, query string) ([]catalogdomain.Client, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, catalogdomain.ErrInvalidOrganization
	}

	items, err := s.repo.ListClients(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return FilterClients(query, items), nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, req catalogdomain.ClientRequest) (*catalogdomain.Client, error) {
	orgID, clientID, err := s.scope(ctx, id)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.FindClient(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, catalogdomain.ErrNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		client.Name = name
	}
	client.Email = strings.TrimSpace(req.Email)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Address = strings.TrimSpace(req.Address)
	client.FiscalID = strings.TrimSpace(req.FiscalID)
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	orgID, clientID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteClient(ctx, orgID, clientID)
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return 0, 0, catalogdomain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, catalogdomain.ErrInvalidID
	}
	return orgID, parsed, nil
}
