package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facturio/facturio/internal/catalog"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	"github.com/facturio/facturio/internal/config"
	"github.com/facturio/facturio/internal/currency"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	"github.com/facturio/facturio/internal/document"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"github.com/facturio/facturio/internal/numbering"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	obslogger "github.com/facturio/facturio/internal/observability/logger"
	obsmetrics "github.com/facturio/facturio/internal/observability/metrics"
	"github.com/facturio/facturio/internal/settings"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/facturio/facturio/internal/tax"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(registerGin),
	catalog.Module,
	currency.Module,
	document.Module,
	numbering.Module,
	settings.Module,
	tax.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	genID        *snowflake.Node
	documentSvc  docdomain.Service
	catalogSvc   catalogdomain.Service
	taxSvc       taxdomain.Service
	currencySvc  currencydomain.Service
	settingsSvc  settingsdomain.Service
	numberingSvc numberingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	GenID        *snowflake.Node
	DocumentSvc  docdomain.Service
	CatalogSvc   catalogdomain.Service
	TaxSvc       taxdomain.Service
	CurrencySvc  currencydomain.Service
	SettingsSvc  settingsdomain.Service
	NumberingSvc numberingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		genID:        p.GenID,
		documentSvc:  p.DocumentSvc,
		catalogSvc:   p.CatalogSvc,
		taxSvc:       p.TaxSvc,
		currencySvc:  p.CurrencySvc,
		settingsSvc:  p.SettingsSvc,
		numberingSvc: p.NumberingSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.OrgContext())

	// -------- Documents --------
	api.GET("/documents", s.ListDocuments)
	api.POST("/documents", s.CreateDocument)
	api.GET("/documents/:id", s.GetDocumentByID)
	api.PUT("/documents/:id", s.UpdateDocument)
	api.DELETE("/documents/:id", s.DeleteDocument)
	api.POST("/documents/:id/transition", s.TransitionDocument)
	api.POST("/documents/:id/lines", s.AddDocumentLine)
	api.POST("/documents/:id/lines/:position/select-product", s.SelectDocumentLineProduct)
	api.PATCH("/documents/:id/lines/:position", s.PatchDocumentLine)
	api.DELETE("/documents/:id/lines/:position", s.RemoveDocumentLine)
	api.GET("/document-statuses", s.ListDocumentStatuses)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	// -------- Clients --------
	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/:id", s.GetClientByID)
	api.PUT("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	// -------- Taxes --------
	api.GET("/taxes", s.ListTaxes)
	api.POST("/taxes", s.CreateTax)
	api.GET("/taxes/:id", s.GetTaxByID)
	api.PATCH("/taxes/:id", s.UpdateTax)
	api.POST("/taxes/:id/disable", s.DisableTax)

	// -------- Currencies --------
	api.GET("/currencies", s.ListCurrencies)
	api.POST("/currencies", s.CreateCurrency)
	api.GET("/currencies/:id", s.GetCurrencyByID)
	api.PATCH("/currencies/:id", s.UpdateCurrency)
	api.POST("/currencies/:id/set-default", s.SetDefaultCurrency)

	// -------- Settings --------
	api.GET("/settings", s.GetSettings)
	api.PATCH("/settings", s.UpdateSettings)

	// -------- Numbering --------
	api.GET("/numbering/:doc_type", s.GetNumberingConfig)
	api.PATCH("/numbering/:doc_type", s.UpdateNumberingConfig)
	api.GET("/numbering/:doc_type/preview", s.PreviewNumber)
}
