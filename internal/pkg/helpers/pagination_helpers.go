package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/models/dto"
)

// Page bounds shared by every club store. Pages are 1-based.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// normalizePage clamps a page number and a page size into range
func normalizePage(page, size int) (int, int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return page, size
}

// CalculateOffsetLimit turns a page into the offset and limit of a store query
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = normalizePage(page, size)
	return uint64((page - 1) * limit), limit
}

// CalculateSliceIndices returns the [start:end) window of a page over
// totalItems elements. Both bounds are clamped to totalItems.
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	offset, limit := CalculateOffsetLimit(page, size)
	start = min(int(offset), totalItems)
	end = min(start+limit, totalItems)
	return start, end
}

// NewPaginationInfo describes a page of totalItems. An empty listing still
// has one page, and a page past the end is reported as the last one.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	page, size = normalizePage(page, size)

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	current := min(page, totalPages)

	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
		HasNext:     current < totalPages,
		HasPrev:     current > 1,
	}
}

// ParsePaginationParams reads ?page= and ?limit=, falling back to the
// defaults on anything missing or out of range
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = DefaultPage
	}
	size, err = strconv.Atoi(c.Query("limit"))
	if err != nil {
		size = DefaultPageSize
	}
	return normalizePage(page, size)
}
