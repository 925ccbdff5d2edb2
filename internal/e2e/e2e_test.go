// Package e2e exercises the full HTTP API against an in-memory
// database: real services, real repositories, no fakes.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	catalogrepo "github.com/facturio/facturio/internal/catalog/repository"
	catalogservice "github.com/facturio/facturio/internal/catalog/service"
	"github.com/facturio/facturio/internal/config"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	currencyrepo "github.com/facturio/facturio/internal/currency/repository"
	currencyservice "github.com/facturio/facturio/internal/currency/service"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	docrepo "github.com/facturio/facturio/internal/document/repository"
	docservice "github.com/facturio/facturio/internal/document/service"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	numberingrepo "github.com/facturio/facturio/internal/numbering/repository"
	numberingservice "github.com/facturio/facturio/internal/numbering/service"
	"github.com/facturio/facturio/internal/server"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	settingsservice "github.com/facturio/facturio/internal/settings/service"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	taxrepo "github.com/facturio/facturio/internal/tax/repository"
	taxservice "github.com/facturio/facturio/internal/tax/service"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	srv   *httptest.Server
	orgID snowflake.ID
}

func startEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&docdomain.Document{},
		&docdomain.LineItem{},
		&catalogdomain.Product{},
		&catalogdomain.Client{},
		&taxdomain.Tax{},
		&currencydomain.Currency{},
		&settingsdomain.OrgSettings{},
		&numberingdomain.Sequence{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	orgID := node.Generate()
	log := zap.NewNop()

	currencies := currencyrepo.NewRepository(db)
	taxes := taxrepo.NewRepository(db)
	catalog := catalogrepo.NewRepository(db)

	settingsSvc := settingsservice.New(settingsservice.Params{
		DB: db, Log: log, GenID: node, CurrencyRepo: currencies, TaxRepo: taxes,
	})
	numberingSvc := numberingservice.New(numberingservice.Params{
		DB: db, Log: log, GenID: node, Repo: numberingrepo.NewRepository(db),
	})
	documentSvc := docservice.New(docservice.Params{
		Log: log, DB: db, GenID: node,
		Repo: docrepo.NewRepository(db), Catalog: catalog, Taxes: taxes,
		Currencies: currencies, Settings: settingsSvc, Numbering: numberingSvc,
	})
	catalogSvc := catalogservice.New(catalogservice.Params{Log: log, GenID: node, Repo: catalog})
	taxSvc := taxservice.New(taxservice.Params{Log: log, GenID: node, Repo: taxes})
	currencySvc := currencyservice.New(currencyservice.Params{Log: log, GenID: node, Repo: currencies})

	engine := gin.New()
	engine.Use(server.ErrorHandlingMiddleware())
	server.NewServer(server.ServerParams{
		Gin:          engine,
		Cfg:          config.Config{DefaultOrgID: int64(orgID)},
		GenID:        node,
		DocumentSvc:  documentSvc,
		CatalogSvc:   catalogSvc,
		TaxSvc:       taxSvc,
		CurrencySvc:  currencySvc,
		SettingsSvc:  settingsSvc,
		NumberingSvc: numberingSvc,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return &env{srv: srv, orgID: orgID}
}

func (e *env) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func data(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	inner, ok := payload["data"].(map[string]any)
	require.True(t, ok, "missing data object in %v", payload)
	return inner
}

func TestInvoiceLifecycle(t *testing.T) {
	e := startEnv(t)

	status, resp := e.do(t, http.MethodPost, "/api/taxes", map[string]any{
		"name": "TVA 19%",
		"rate": "19",
	})
	require.Equal(t, http.StatusOK, status, resp)
	taxID := data(t, resp)["id"].(string)

	status, resp = e.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":       "Hosting",
		"unit_price": "100.000",
		"tax_id":     taxID,
	})
	require.Equal(t, http.StatusOK, status, resp)
	productID := data(t, resp)["id"].(string)

	status, resp = e.do(t, http.MethodPost, "/api/clients", map[string]any{
		"name":      "ACME",
		"fiscal_id": "1234567/A/M/000",
	})
	require.Equal(t, http.StatusOK, status, resp)
	clientID := data(t, resp)["id"].(string)

	status, resp = e.do(t, http.MethodPost, "/api/documents", map[string]any{
		"type":      "invoice",
		"client_id": clientID,
		"lines": []map[string]any{
			{
				"product_id":       productID,
				"description":      "Hosting",
				"quantity":         "3",
				"unit_price":       "100",
				"discount_percent": "10",
				"tax_id":           taxID,
			},
		},
	})
	require.Equal(t, http.StatusOK, status, resp)
	doc := data(t, resp)
	docID := doc["id"].(string)

	assert.Equal(t, "FAC-001", doc["number"])
	assert.Equal(t, "draft", doc["status"])
	assert.Equal(t, "TND", doc["currency_code"])
	assert.Equal(t, "270", doc["subtotal_ht"])
	assert.Equal(t, "51.3", doc["total_tax"])
	assert.Equal(t, "321.3", doc["total_ttc"])

	// numbering preview shows the next free number, not the issued one
	status, resp = e.do(t, http.MethodGet, "/api/numbering/invoice/preview", nil)
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "FAC-002", data(t, resp)["number"])

	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "sent",
	})
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, "sent", data(t, resp)["status"])

	// sent documents are immutable
	status, resp = e.do(t, http.MethodPut, "/api/documents/"+docID, map[string]any{
		"lines": []map[string]any{
			{"description": "Hosting", "quantity": "1", "unit_price": "100"},
		},
	})
	assert.Equal(t, http.StatusConflict, status, resp)

	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "paid",
	})
	require.Equal(t, http.StatusOK, status, resp)

	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "sent",
	})
	assert.Equal(t, http.StatusConflict, status, resp)
}

func TestQuoteUsesItsOwnSequenceAndStatuses(t *testing.T) {
	e := startEnv(t)

	status, resp := e.do(t, http.MethodPost, "/api/clients", map[string]any{"name": "ACME"})
	require.Equal(t, http.StatusOK, status, resp)
	clientID := data(t, resp)["id"].(string)

	status, resp = e.do(t, http.MethodPost, "/api/documents", map[string]any{
		"type":      "quote",
		"client_id": clientID,
		"lines": []map[string]any{
			{"description": "Audit", "quantity": "1", "unit_price": "500"},
		},
	})
	require.Equal(t, http.StatusOK, status, resp)
	doc := data(t, resp)
	assert.Equal(t, "DEV-001", doc["number"])

	docID := doc["id"].(string)
	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "sent",
	})
	require.Equal(t, http.StatusOK, status, resp)

	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "paid",
	})
	assert.Equal(t, http.StatusConflict, status, resp)

	status, resp = e.do(t, http.MethodPost, "/api/documents/"+docID+"/transition", map[string]any{
		"status": "accepted",
	})
	require.Equal(t, http.StatusOK, status, resp)
}

func TestSettingsDriveStampDuty(t *testing.T) {
	e := startEnv(t)

	status, resp := e.do(t, http.MethodPatch, "/api/settings", map[string]any{
		"company_name":       "Facturio SARL",
		"stamp_duty_enabled": true,
		"stamp_duty_amount":  "1.000",
	})
	require.Equal(t, http.StatusOK, status, resp)

	status, resp = e.do(t, http.MethodPost, "/api/clients", map[string]any{"name": "ACME"})
	require.Equal(t, http.StatusOK, status, resp)
	clientID := data(t, resp)["id"].(string)

	status, resp = e.do(t, http.MethodPost, "/api/documents", map[string]any{
		"type":      "invoice",
		"client_id": clientID,
		"lines": []map[string]any{
			{"description": "Forfait", "quantity": "1", "unit_price": "100"},
		},
	})
	require.Equal(t, http.StatusOK, status, resp)
	doc := data(t, resp)
	assert.Equal(t, "1", doc["stamp_duty"])
	assert.Equal(t, "101", doc["total_ttc"])
}

func TestUnknownClientIs404(t *testing.T) {
	e := startEnv(t)

	status, resp := e.do(t, http.MethodPost, "/api/documents", map[string]any{
		"type":      "invoice",
		"client_id": "999999",
		"lines": []map[string]any{
			{"description": "x", "quantity": "1", "unit_price": "1"},
		},
	})
	assert.Equal(t, http.StatusNotFound, status, resp)
}
