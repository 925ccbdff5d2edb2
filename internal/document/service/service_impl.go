package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"github.com/facturio/facturio/internal/money"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"github.com/facturio/facturio/internal/orgcontext"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	taxservice "github.com/facturio/facturio/internal/tax/service"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	DB         *gorm.DB
	GenID      *snowflake.Node
	Repo       docdomain.Repository
	Catalog    catalogdomain.Repository
	Taxes      taxdomain.Repository
	Currencies currencydomain.Repository
	Settings   settingsdomain.Service
	Numbering  numberingdomain.Service
}

type Service struct {
	log        *zap.Logger
	db         *gorm.DB
	genID      *snowflake.Node
	repo       docdomain.Repository
	catalog    catalogdomain.Repository
	taxes      taxdomain.Repository
	currencies currencydomain.Repository
	settings   settingsdomain.Service
	numbering  numberingdomain.Service

	// inflight holds one entry per document currently being written, so
	// a double submit cannot race itself into duplicate writes.
	mu       sync.Mutex
	inflight map[snowflake.ID]struct{}
}

func New(p Params) docdomain.Service {
	return &Service{
		log:        p.Log.Named("document.service"),
		db:         p.DB,
		genID:      p.GenID,
		repo:       p.Repo,
		catalog:    p.Catalog,
		taxes:      p.Taxes,
		currencies: p.Currencies,
		settings:   p.Settings,
		numbering:  p.Numbering,
		inflight:   make(map[snowflake.ID]struct{}),
	}
}

func (s *Service) Create(ctx context.Context, req docdomain.CreateRequest) (*docdomain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, docdomain.ErrInvalidOrganization
	}
	if !req.Type.Valid() {
		return nil, docdomain.ErrInvalidType
	}
	if len(req.Lines) == 0 {
		return nil, docdomain.ErrEmptyDocument
	}

	client, err := s.catalog.FindClient(ctx, orgID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, docdomain.ErrClientNotFound
	}

	defaults, err := s.settings.Resolve(ctx, orgID)
	if err != nil {
		return nil, err
	}

	currency := defaults.Currency
	if req.CurrencyID != nil {
		found, err := s.currencies.FindByID(ctx, orgID, *req.CurrencyID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, docdomain.ErrCurrencyNotFound
		}
		currency = *found
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}

	docID := s.genID.Generate()
	lines, inputs, err := s.buildLines(ctx, orgID, docID, defaults, req.Lines, now)
	if err != nil {
		return nil, err
	}

	stampDuty := decimal.Zero
	if req.Type == docdomain.TypeInvoice && defaults.StampDutyEnabled {
		stampDuty = defaults.StampDutyAmount
	}
	totals, err := money.ComputeTotals(inputs, currency.DecimalPlaces, stampDuty)
	if err != nil {
		return nil, err
	}

	doc := &docdomain.Document{
		ID:                    docID,
		OrgID:                 orgID,
		Type:                  req.Type,
		ClientID:              req.ClientID,
		Status:                docdomain.StatusDraft,
		IssueDate:             issueDate,
		DueDate:               req.DueDate,
		CurrencyCode:          currency.Code,
		CurrencySymbol:        currency.Symbol,
		CurrencyDecimalPlaces: currency.DecimalPlaces,
		SubtotalHT:            totals.SubtotalHT,
		TotalTax:              totals.TotalTax,
		StampDuty:             totals.StampDuty,
		TotalTTC:              totals.TotalTTC,
		Notes:                 strings.TrimSpace(req.Notes),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.acquire(docID); err != nil {
		return nil, err
	}
	defer s.release(docID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sequence periods follow the wall clock. A backdated issue date
		// must never reopen an old period and reissue its numbers.
		number, err := s.numbering.Reserve(ctx, tx, orgID, string(req.Type), now)
		if err != nil {
			return err
		}
		doc.Number = number

		if err := s.repo.Insert(ctx, tx, doc); err != nil {
			return err
		}
		return s.repo.InsertLines(ctx, tx, lines)
	})
	if err != nil {
		return nil, err
	}

	doc.Lines = lines
	s.log.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("type", string(doc.Type)),
		zap.String("number", doc.Number),
	)
	return doc, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*docdomain.Document, error) {
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

	doc.Lines, err = s.repo.FindLines(ctx, orgID, docID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) List(ctx context.Context, req docdomain.ListRequest) ([]docdomain.Document, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, docdomain.ErrInvalidOrganization
	}
	if req.Type != "" && !req.Type.Valid() {
		return nil, docdomain.ErrInvalidType
	}

	return s.repo.List(ctx, orgID, docdomain.ListFilter{
		Type:      req.Type,
		Status:    req.Status,
		ClientID:  req.ClientID,
		IssueFrom: req.IssueFrom,
		IssueTo:   req.IssueTo,
	})
}

// Update replaces the draft's editable fields and its full line set,
// then recomputes totals. Non-draft documents are immutable.
func (s *Service) Update(ctx context.Context, id string, req docdomain.UpdateRequest) (*docdomain.Document, error) {
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
	if len(req.Lines) == 0 {
		return nil, docdomain.ErrEmptyDocument
	}

	if req.ClientID != nil {
		client, err := s.catalog.FindClient(ctx, orgID, *req.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, docdomain.ErrClientNotFound
		}
		doc.ClientID = *req.ClientID
	}
	if req.CurrencyID != nil {
		currency, err := s.currencies.FindByID(ctx, orgID, *req.CurrencyID)
		if err != nil {
			return nil, err
		}
		if currency == nil {
			return nil, docdomain.ErrCurrencyNotFound
		}
		doc.CurrencyCode = currency.Code
		doc.CurrencySymbol = currency.Symbol
		doc.CurrencyDecimalPlaces = currency.DecimalPlaces
	}
	if req.IssueDate != nil {
		doc.IssueDate = req.IssueDate.UTC()
	}
	if req.DueDate != nil {
		doc.DueDate = req.DueDate
	}
	if req.Notes != nil {
		doc.Notes = strings.TrimSpace(*req.Notes)
	}

	defaults, err := s.settings.Resolve(ctx, orgID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lines, inputs, err := s.buildLines(ctx, orgID, doc.ID, defaults, req.Lines, now)
	if err != nil {
		return nil, err
	}

	stampDuty := decimal.Zero
	if doc.Type == docdomain.TypeInvoice && defaults.StampDutyEnabled {
		stampDuty = defaults.StampDutyAmount
	}
	// Totals stay in the document's own currency, frozen at creation or
	// re-frozen above by an explicit draft currency change; org default
	// edits never leak in.
	totals, err := money.ComputeTotals(inputs, doc.CurrencyDecimalPlaces, stampDuty)
	if err != nil {
		return nil, err
	}
	doc.SubtotalHT = totals.SubtotalHT
	doc.TotalTax = totals.TotalTax
	doc.StampDuty = totals.StampDuty
	doc.TotalTTC = totals.TotalTTC
	doc.UpdatedAt = now

	if err := s.acquire(doc.ID); err != nil {
		return nil, err
	}
	defer s.release(doc.ID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeader(ctx, tx, doc); err != nil {
			return err
		}
		if err := s.repo.DeleteLines(ctx, tx, orgID, doc.ID); err != nil {
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

func (s *Service) Transition(ctx context.Context, id string, to docdomain.Status) (*docdomain.Document, error) {
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

	if !docdomain.CanTransition(doc.Type, doc.Status, to) {
		if doc.Status.Terminal() {
			return nil, docdomain.ErrImmutableDocument
		}
		return nil, docdomain.ErrInvalidTransition
	}

	if err := s.acquire(doc.ID); err != nil {
		return nil, err
	}
	defer s.release(doc.ID)

	from := doc.Status
	doc.Status = to
	doc.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("document transitioned",
		zap.String("document_id", doc.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return doc, nil
}

// Delete removes a draft and its lines. Numbered non-draft documents
// are never deleted, only cancelled, so the number trail stays intact.
func (s *Service) Delete(ctx context.Context, id string) error {
	orgID, docID, err := s.scope(ctx, id)
	if err != nil {
		return err
	}

	doc, err := s.repo.FindByID(ctx, orgID, docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return docdomain.ErrNotFound
	}
	if !doc.Status.Mutable() {
		return docdomain.ErrImmutableDocument
	}

	if err := s.acquire(docID); err != nil {
		return err
	}
	defer s.release(docID)

	return s.repo.Delete(ctx, orgID, docID)
}

// buildLines validates submitted lines against the catalog and tax
// tables and pairs each persisted line with its arithmetic input. Any
// client-sent derived amount is discarded here.
func (s *Service) buildLines(
	ctx context.Context,
	orgID, docID snowflake.ID,
	defaults settingsdomain.Defaults,
	reqs []docdomain.LineRequest,
	now time.Time,
) ([]docdomain.LineItem, []money.LineInput, error) {
	lines := make([]docdomain.LineItem, 0, len(reqs))
	inputs := make([]money.LineInput, 0, len(reqs))

	for i, req := range reqs {
		if req.ProductID != nil {
			product, err := s.catalog.FindProduct(ctx, orgID, *req.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, docdomain.ErrProductNotFound
			}
		}

		taxID := req.TaxID
		if taxID == nil && defaults.DefaultTax != nil {
			id := defaults.DefaultTax.ID
			taxID = &id
		}

		rate, fixed := decimal.Zero, decimal.Zero
		if taxID != nil {
			tax, err := s.taxes.FindByID(ctx, orgID, *taxID)
			if err != nil {
				return nil, nil, err
			}
			if tax == nil {
				return nil, nil, docdomain.ErrTaxNotFound
			}
			rate, fixed = taxservice.RateFor(tax)
		}

		discount := decimal.Zero
		if req.DiscountPercent != nil {
			discount = *req.DiscountPercent
		}

		input := money.LineInput{
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: discount,
			TaxRate:         rate,
			TaxFixed:        fixed,
		}
		if _, err := money.ComputeLine(input); err != nil {
			return nil, nil, err
		}

		lines = append(lines, docdomain.LineItem{
			ID:              s.genID.Generate(),
			OrgID:           orgID,
			DocumentID:      docID,
			Position:        i,
			ProductID:       req.ProductID,
			Description:     strings.TrimSpace(req.Description),
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice,
			DiscountPercent: discount,
			TaxID:           taxID,
			CreatedAt:       now,
		})
		inputs = append(inputs, input)
	}

	return lines, inputs, nil
}

func (s *Service) acquire(docID snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[docID]; busy {
		return docdomain.ErrSubmissionInFlight
	}
	s.inflight[docID] = struct{}{}
	return nil
}

func (s *Service) release(docID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, docID)
}

func (s *Service) scope(ctx context.Context, id string) (snowflake.ID, snowflake.ID, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return 0, 0, docdomain.ErrInvalidOrganization
	}

	docID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, 0, docdomain.ErrInvalidID
	}
	return orgID, docID, nil
}
