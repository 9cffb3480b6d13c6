// middleware/decisions.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/warden/audit"
	logger "github.com/dev-mohitbeniwal/warden/logging"
	helper_util "github.com/dev-mohitbeniwal/warden/util/helper"
)

// Decisions serves the recorded decision log over HTTP. Query parameters:
// from and to (RFC3339, defaulting to the last 24 hours), principal (optional
// login filter), and limit/offset for pagination.
func Decisions(auditSvc audit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset, err := helper_util.GetPaginationParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from, to, err := helper_util.GetTimeRangeParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logs, err := auditSvc.QueryDecisions(c.Request.Context(), from, to, c.Query("principal"))
		if err != nil {
			logger.Error("Failed to query decision log",
				zap.Error(err),
				zap.Time("from", from),
				zap.Time("to", to))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query decision log"})
			return
		}

		total := len(logs)
		if offset >= total {
			logs = nil
		} else if offset+limit < total {
			logs = logs[offset : offset+limit]
		} else {
			logs = logs[offset:]
		}

		c.JSON(http.StatusOK, gin.H{
			"total":     total,
			"decisions": logs,
		})
	}
}
