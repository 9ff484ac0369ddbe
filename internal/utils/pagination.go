package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workmatch-api/internal/constants"
)

// PageParams is a 1-based page request
type PageParams struct {
	Page     int
	PageSize int
}

// GetPageParams reads ?page= and ?limit= (or ?page_size=), falling back to defaults for
// missing or out-of-range values
func GetPageParams(c *gin.Context) PageParams {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	size := queryInt(c, "limit", 0)
	if size == 0 {
		size = queryInt(c, "page_size", constants.DefaultPageSize)
	}
	if size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}

	return PageParams{Page: page, PageSize: size}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
