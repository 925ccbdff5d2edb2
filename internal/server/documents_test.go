package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/config"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentService struct {
	createErr    error
	created      *docdomain.Document
	lastCreate   docdomain.CreateRequest
	lineEdits    int
	lastPosition int
	lastPatch    docdomain.LinePatchRequest
}

func (f *fakeDocumentService) Create(ctx context.Context, req docdomain.CreateRequest) (*docdomain.Document, error) {
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeDocumentService) GetByID(ctx context.Context, id string) (*docdomain.Document, error) {
	return nil, docdomain.ErrNotFound
}

func (f *fakeDocumentService) List(ctx context.Context, req docdomain.ListRequest) ([]docdomain.Document, error) {
	return nil, nil
}

func (f *fakeDocumentService) Update(ctx context.Context, id string, req docdomain.UpdateRequest) (*docdomain.Document, error) {
	return nil, docdomain.ErrImmutableDocument
}

func (f *fakeDocumentService) Transition(ctx context.Context, id string, to docdomain.Status) (*docdomain.Document, error) {
	return nil, docdomain.ErrInvalidTransition
}

func (f *fakeDocumentService) Delete(ctx context.Context, id string) error {
	return docdomain.ErrImmutableDocument
}

func (f *fakeDocumentService) AddLine(ctx context.Context, id string) (*docdomain.Document, error) {
	f.lineEdits++
	return f.created, nil
}

func (f *fakeDocumentService) SelectLineProduct(ctx context.Context, id string, position int, productID snowflake.ID) (*docdomain.Document, error) {
	f.lineEdits++
	f.lastPosition = position
	return f.created, nil
}

func (f *fakeDocumentService) PatchLine(ctx context.Context, id string, position int, req docdomain.LinePatchRequest) (*docdomain.Document, error) {
	f.lineEdits++
	f.lastPosition = position
	f.lastPatch = req
	return f.created, nil
}

func (f *fakeDocumentService) RemoveLine(ctx context.Context, id string, position int) (*docdomain.Document, error) {
	f.lineEdits++
	f.lastPosition = position
	return f.created, nil
}

func newTestServer(t *testing.T, docs docdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	s := &Server{
		engine:      engine,
		cfg:         config.Config{DefaultOrgID: 42},
		genID:       node,
		documentSvc: docs,
	}
	s.registerAPIRoutes()
	return s
}

func TestCreateDocument_ReturnsDocument(t *testing.T) {
	fake := &fakeDocumentService{
		created: &docdomain.Document{
			ID:     snowflake.ID(7),
			Type:   docdomain.TypeInvoice,
			Number: "FAC-001",
			Status: docdomain.StatusDraft,
		},
	}
	s := newTestServer(t, fake)

	body := []byte(`{
		"type": "invoice",
		"client_id": "12345",
		"lines": [{"description": "Widget", "quantity": "2", "unit_price": "10.5"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, docdomain.TypeInvoice, fake.lastCreate.Type)
	require.Len(t, fake.lastCreate.Lines, 1)
	assert.True(t, fake.lastCreate.Lines[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, fake.lastCreate.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.5")))

	var resp struct {
		Data docdomain.Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "FAC-001", resp.Data.Number)
}

func TestCreateDocument_BadJSONIsValidationError(t *testing.T) {
	s := newTestServer(t, &fakeDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"empty document is 400", docdomain.ErrEmptyDocument, http.StatusBadRequest, "validation_error"},
		{"client not found is 404", docdomain.ErrClientNotFound, http.StatusNotFound, "not_found"},
		{"immutable document is 409", docdomain.ErrImmutableDocument, http.StatusConflict, "conflict"},
		{"invalid transition is 409", docdomain.ErrInvalidTransition, http.StatusConflict, "conflict"},
		{"submission in flight is 409", docdomain.ErrSubmissionInFlight, http.StatusConflict, "conflict"},
		{"numbering unavailable is 503", numberingdomain.ErrUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeDocumentService{createErr: tt.err})

			body := []byte(`{"type": "invoice", "client_id": "12345", "lines": []}`)
			req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			s.engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantType)
		})
	}
}

func TestTransitionDocument_ConflictOnIllegalMove(t *testing.T) {
	s := newTestServer(t, &fakeDocumentService{})

	body := []byte(`{"status": "paid"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/7/transition", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListDocumentStatuses_PerType(t *testing.T) {
	s := newTestServer(t, &fakeDocumentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/document-statuses?type=quote", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accepted")
	assert.NotContains(t, rec.Body.String(), "paid")
}

func TestLineEditRoutes(t *testing.T) {
	fake := &fakeDocumentService{created: &docdomain.Document{ID: snowflake.ID(7)}}
	s := newTestServer(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/7/lines", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := []byte(`{"quantity": "4", "clear_tax": true}`)
	req = httptest.NewRequest(http.MethodPatch, "/api/documents/7/lines/1", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, fake.lastPosition)
	assert.True(t, fake.lastPatch.ClearTax)
	require.NotNil(t, fake.lastPatch.Quantity)
	assert.True(t, fake.lastPatch.Quantity.Equal(decimal.NewFromInt(4)))

	req = httptest.NewRequest(http.MethodDelete, "/api/documents/7/lines/0", nil)
	rec = httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 3, fake.lineEdits)
}

func TestLineEditRoutes_RejectsBadPosition(t *testing.T) {
	s := newTestServer(t, &fakeDocumentService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/7/lines/abc", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "position")
}

func TestOrgContext_RejectsMalformedHeader(t *testing.T) {
	s := newTestServer(t, &fakeDocumentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("X-Org-ID", "not-a-number")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
