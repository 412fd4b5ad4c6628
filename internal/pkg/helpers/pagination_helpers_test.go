package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 0, 0, DefaultPageSize},
		{2, MaxPageSize + 1, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		if offset != tt.offset || limit != tt.limit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = %d, %d", tt.page, tt.size, offset, limit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 || info.CurrentPage != 2 || !info.HasNext || !info.HasPrev {
		t.Errorf("info = %+v", info)
	}

	info = NewPaginationInfo(25, 9, 10)
	if info.CurrentPage != 3 || info.HasNext {
		t.Errorf("clamped info = %+v", info)
	}

	info = NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 || info.HasNext || info.HasPrev {
		t.Errorf("empty info = %+v", info)
	}

	info = NewPaginationInfo(0, 4, 0)
	if info.CurrentPage != 1 || info.TotalPages != 1 || info.HasPrev || info.PageSize != DefaultPageSize {
		t.Errorf("empty past end = %+v", info)
	}
}

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		start, end        int
	}{
		{"middle page", 2, 10, 25, 10, 20},
		{"partial last page", 3, 10, 25, 20, 25},
		{"past end", 4, 10, 25, 25, 25},
		{"page zero is first page", 0, 10, 25, 0, 10},
		{"negative page", -3, 10, 25, 0, 10},
		{"zero size uses default", 1, 0, 25, 0, DefaultPageSize},
		{"oversized uses default", 1, MaxPageSize + 1, 25, 0, DefaultPageSize},
		{"empty", 1, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
			if start != tt.start || end != tt.end {
				t.Errorf("CalculateSliceIndices(%d, %d, %d) = [%d:%d], want [%d:%d]",
					tt.page, tt.size, tt.total, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := map[string][2]int{
		"/clubs":                  {1, 10},
		"/clubs?page=3&limit=25":  {3, 25},
		"/clubs?page=-1&limit=x":  {DefaultPage, DefaultPageSize},
		"/clubs?page=2&limit=500": {2, DefaultPageSize},
	}
	for target, want := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)

		page, size := ParsePaginationParams(c)
		if page != want[0] || size != want[1] {
			t.Errorf("%s = %d, %d, want %v", target, page, size, want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("got %v", got)
	}
	if got := ParseDuration("ninety", time.Hour); got != time.Hour {
		t.Errorf("fallback = %v", got)
	}
}
