package server

import (
	"net/http"
	"strings"

	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	"github.com/gin-gonic/gin"
)

type updateNumberingRequest struct {
	Prefix        *string `json:"prefix,omitempty"`
	Suffix        *string `json:"suffix,omitempty"`
	PaddingDigits *int    `json:"padding_digits,omitempty"`
	NextSeq       *int64  `json:"next_sequence_number,omitempty"`
	ResetPeriod   *string `json:"reset_period,omitempty"`
}

func (s *Server) GetNumberingConfig(c *gin.Context) {
	resp, err := s.numberingSvc.GetConfig(c.Request.Context(), strings.TrimSpace(c.Param("doc_type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateNumberingConfig(c *gin.Context) {
	var req updateNumberingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var resetPeriod *numberingdomain.ResetPeriod
	if req.ResetPeriod != nil {
		trimmed := numberingdomain.ResetPeriod(strings.TrimSpace(*req.ResetPeriod))
		resetPeriod = &trimmed
	}

	resp, err := s.numberingSvc.UpdateConfig(c.Request.Context(), numberingdomain.UpdateConfigRequest{
		DocType:       strings.TrimSpace(c.Param("doc_type")),
		Prefix:        req.Prefix,
		Suffix:        req.Suffix,
		PaddingDigits: req.PaddingDigits,
		NextSeq:       req.NextSeq,
		ResetPeriod:   resetPeriod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PreviewNumber(c *gin.Context) {
	number, err := s.numberingSvc.Preview(c.Request.Context(), strings.TrimSpace(c.Param("doc_type")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"number": number}})
}
