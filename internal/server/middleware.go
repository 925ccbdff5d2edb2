package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/facturio/facturio/internal/orgcontext"
	"github.com/gin-gonic/gin"
)

// OrgContext resolves the active organization for the request, from the
// X-Org-ID header or the configured default, and stores it in the
// request context for the services to scope by.
func (s *Server) OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := s.cfg.DefaultOrgID

		if header := strings.TrimSpace(c.GetHeader("X-Org-ID")); header != "" {
			parsed, err := snowflake.ParseString(header)
			if err != nil {
				AbortWithError(c, newValidationError("org_id", "invalid_organization", "invalid organization id"))
				return
			}
			orgID = int64(parsed)
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
