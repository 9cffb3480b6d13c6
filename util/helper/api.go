// util/helper/api.go
package helper_util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// MaxPageSize caps the limit query parameter so one request cannot drain an
// arbitrarily large decision log.
const MaxPageSize = 100

// GetPaginationParams reads the limit and offset query parameters.
func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit: %w", err)
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset: %w", err)
	}
	if limit <= 0 || limit > MaxPageSize {
		return 0, 0, fmt.Errorf("limit must be between 1 and %d", MaxPageSize)
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset cannot be negative")
	}
	return limit, offset, nil
}
