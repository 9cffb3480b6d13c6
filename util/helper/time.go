// util/helper/time.go
package helper_util

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultTimeRange is how far back a time-range query reaches when the from
// parameter is omitted.
const DefaultTimeRange = 24 * time.Hour

// GetTimeRangeParams reads the from and to query parameters as RFC3339
// timestamps. An omitted to defaults to now, an omitted from to one
// DefaultTimeRange before to.
func GetTimeRangeParams(c *gin.Context) (from time.Time, to time.Time, err error) {
	to = time.Now().UTC()
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to timestamp: %w", err)
		}
	}
	from = to.Add(-DefaultTimeRange)
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from timestamp: %w", err)
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must not be after to")
	}
	return from, to, nil
}
