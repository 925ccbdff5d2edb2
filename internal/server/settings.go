package server

import (
	"net/http"

	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type updateSettingsRequest struct {
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyAddress *string `json:"company_address,omitempty"`
	CompanyEmail   *string `json:"company_email,omitempty"`
	CompanyPhone   *string `json:"company_phone,omitempty"`
	FiscalID       *string `json:"fiscal_id,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`

	DefaultTaxID *string `json:"default_tax_id,omitempty"`

	StampDutyEnabled *bool            `json:"stamp_duty_enabled,omitempty"`
	StampDutyAmount  *decimal.Decimal `json:"stamp_duty_amount,omitempty"`
}

func (s *Server) GetSettings(c *gin.Context) {
	resp, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	defaultTaxID, err := parseOptionalSnowflake(req.DefaultTaxID)
	if err != nil {
		AbortWithError(c, newValidationError("default_tax_id", "invalid_id", "invalid tax id"))
		return
	}

	resp, err := s.settingsSvc.Update(c.Request.Context(), settingsdomain.UpdateRequest{
		CompanyName:      req.CompanyName,
		CompanyAddress:   req.CompanyAddress,
		CompanyEmail:     req.CompanyEmail,
		CompanyPhone:     req.CompanyPhone,
		FiscalID:         req.FiscalID,
		LogoURL:          req.LogoURL,
		DefaultTaxID:     defaultTaxID,
		StampDutyEnabled: req.StampDutyEnabled,
		StampDutyAmount:  req.StampDutyAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
