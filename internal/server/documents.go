package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type documentLineRequest struct {
	ProductID       *string          `json:"product_id,omitempty"`
	Description     string           `json:"description"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	TaxID           *string          `json:"tax_id,omitempty"`
}

type createDocumentRequest struct {
	Type       string                `json:"type"`
	ClientID   string                `json:"client_id"`
	CurrencyID *string               `json:"currency_id,omitempty"`
	IssueDate  *time.Time            `json:"issue_date,omitempty"`
	DueDate    *time.Time            `json:"due_date,omitempty"`
	Notes      string                `json:"notes"`
	Lines      []documentLineRequest `json:"lines"`
}

type updateDocumentRequest struct {
	ClientID   *string               `json:"client_id,omitempty"`
	CurrencyID *string               `json:"currency_id,omitempty"`
	IssueDate  *time.Time            `json:"issue_date,omitempty"`
	DueDate    *time.Time            `json:"due_date,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
	Lines      []documentLineRequest `json:"lines"`
}

type selectLineProductRequest struct {
	ProductID string `json:"product_id"`
}

type patchLineRequest struct {
	Description     *string          `json:"description,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	TaxID           *string          `json:"tax_id,omitempty"`
	ClearTax        bool             `json:"clear_tax,omitempty"`
}

type transitionDocumentRequest struct {
	Status string `json:"status"`
}

func (s *Server) CreateDocument(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, err := parseSnowflake(req.ClientID)
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_id", "invalid client id"))
		return
	}
	currencyID, err := parseOptionalSnowflake(req.CurrencyID)
	if err != nil {
		AbortWithError(c, newValidationError("currency_id", "invalid_id", "invalid currency id"))
		return
	}
	lines, err := toLineRequests(req.Lines)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.documentSvc.Create(c.Request.Context(), docdomain.CreateRequest{
		Type:       docdomain.Type(strings.TrimSpace(req.Type)),
		ClientID:   clientID,
		CurrencyID: currencyID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		Lines:      lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var query struct {
		Type      string `form:"type"`
		Status    string `form:"status"`
		ClientID  string `form:"client_id"`
		IssueFrom string `form:"issue_from"`
		IssueTo   string `form:"issue_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, err := parseOptionalSnowflake(optionalString(query.ClientID))
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_id", "invalid client id"))
		return
	}
	issueFrom, err := parseOptionalDate(query.IssueFrom)
	if err != nil {
		AbortWithError(c, newValidationError("issue_from", "invalid_date", "invalid date"))
		return
	}
	issueTo, err := parseOptionalDate(query.IssueTo)
	if err != nil {
		AbortWithError(c, newValidationError("issue_to", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), docdomain.ListRequest{
		Type:      docdomain.Type(strings.TrimSpace(query.Type)),
		Status:    docdomain.Status(strings.TrimSpace(query.Status)),
		ClientID:  clientID,
		IssueFrom: issueFrom,
		IssueTo:   issueTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	resp, err := s.documentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDocument(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, err := parseOptionalSnowflake(req.ClientID)
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_id", "invalid client id"))
		return
	}
	currencyID, err := parseOptionalSnowflake(req.CurrencyID)
	if err != nil {
		AbortWithError(c, newValidationError("currency_id", "invalid_id", "invalid currency id"))
		return
	}
	lines, err := toLineRequests(req.Lines)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.documentSvc.Update(c.Request.Context(), c.Param("id"), docdomain.UpdateRequest{
		ClientID:   clientID,
		CurrencyID: currencyID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		Lines:      lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TransitionDocument(c *gin.Context) {
	var req transitionDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.Transition(c.Request.Context(), c.Param("id"), docdomain.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDocument(c *gin.Context) {
	if err := s.documentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) AddDocumentLine(c *gin.Context) {
	resp, err := s.documentSvc.AddLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SelectDocumentLineProduct(c *gin.Context) {
	position, err := parsePosition(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req selectLineProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	productID, err := parseSnowflake(req.ProductID)
	if err != nil {
		AbortWithError(c, newValidationError("product_id", "invalid_id", "invalid product id"))
		return
	}

	resp, err := s.documentSvc.SelectLineProduct(c.Request.Context(), c.Param("id"), position, productID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PatchDocumentLine(c *gin.Context) {
	position, err := parsePosition(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req patchLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	taxID, err := parseOptionalSnowflake(req.TaxID)
	if err != nil {
		AbortWithError(c, newValidationError("tax_id", "invalid_id", "invalid tax id"))
		return
	}

	resp, err := s.documentSvc.PatchLine(c.Request.Context(), c.Param("id"), position, docdomain.LinePatchRequest{
		Description:     req.Description,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		TaxID:           taxID,
		ClearTax:        req.ClearTax,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveDocumentLine(c *gin.Context) {
	position, err := parsePosition(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.documentSvc.RemoveLine(c.Request.Context(), c.Param("id"), position)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDocumentStatuses(c *gin.Context) {
	docType := docdomain.Type(strings.TrimSpace(c.Query("type")))
	if docType != "" && !docType.Valid() {
		AbortWithError(c, docdomain.ErrInvalidType)
		return
	}
	if docType == "" {
		docType = docdomain.TypeInvoice
	}

	c.JSON(http.StatusOK, gin.H{"data": docdomain.StatusesFor(docType)})
}

func toLineRequests(lines []documentLineRequest) ([]docdomain.LineRequest, error) {
	out := make([]docdomain.LineRequest, 0, len(lines))
	for _, line := range lines {
		productID, err := parseOptionalSnowflake(line.ProductID)
		if err != nil {
			return nil, newValidationError("product_id", "invalid_id", "invalid product id")
		}
		taxID, err := parseOptionalSnowflake(line.TaxID)
		if err != nil {
			return nil, newValidationError("tax_id", "invalid_id", "invalid tax id")
		}
		out = append(out, docdomain.LineRequest{
			ProductID:       productID,
			Description:     line.Description,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxID:           taxID,
		})
	}
	return out, nil
}

func parsePosition(c *gin.Context) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(c.Param("position")))
	if err != nil || position < 0 {
		return 0, newValidationError("position", "invalid_position", "invalid line position")
	}
	return position, nil
}

func parseSnowflake(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

func parseOptionalSnowflake(raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalString(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

func parseOptionalDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
