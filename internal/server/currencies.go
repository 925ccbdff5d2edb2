package server

import (
	"net/http"
	"strings"

	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createCurrencyRequest struct {
	Code          string           `json:"code"`
	Symbol        string           `json:"symbol"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate"`
	DecimalPlaces *int32           `json:"decimal_places"`
	IsDefault     bool             `json:"is_default"`
}

type updateCurrencyRequest struct {
	Symbol        *string          `json:"symbol,omitempty"`
	ExchangeRate  *decimal.Decimal `json:"exchange_rate,omitempty"`
	DecimalPlaces *int32           `json:"decimal_places,omitempty"`
}

func (s *Server) CreateCurrency(c *gin.Context) {
	var req createCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.currencySvc.Create(c.Request.Context(), currencydomain.CreateRequest{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Symbol:        strings.TrimSpace(req.Symbol),
		ExchangeRate:  req.ExchangeRate,
		DecimalPlaces: req.DecimalPlaces,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCurrencies(c *gin.Context) {
	resp, err := s.currencySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCurrencyByID(c *gin.Context) {
	resp, err := s.currencySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCurrency(c *gin.Context) {
	var req updateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.currencySvc.Update(c.Request.Context(), currencydomain.UpdateRequest{
		ID:            c.Param("id"),
		Symbol:        req.Symbol,
		ExchangeRate:  req.ExchangeRate,
		DecimalPlaces: req.DecimalPlaces,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SetDefaultCurrency(c *gin.Context) {
	resp, err := s.currencySvc.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
