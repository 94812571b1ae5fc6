package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestCalculateOffsetLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 5, 0, 5},
		{2, 500, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		if offset != tt.offset || limit != tt.limit {
			t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.size, offset, limit, tt.offset, tt.limit)
		}
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Parallel()

	info := NewPaginationInfo(25, 9, 10)
	if info.TotalPages != 3 || info.CurrentPage != 3 {
		t.Fatalf("info = %+v, want 3 pages with current clamped to 3", info)
	}
	if empty := NewPaginationInfo(0, 1, 10); empty.TotalPages != 1 {
		t.Fatalf("empty listing pages = %d, want 1", empty.TotalPages)
	}
}

func TestParseLimitParam(t *testing.T) {
	tests := []struct {
		query string
		limit int
		ok    bool
	}{
		{"", 0, true},
		{"limit=5", 5, true},
		{"limit=0", 0, false},
		{"limit=abc", 0, false},
		{"limit=1000", 0, false},
	}
	for _, tt := range tests {
		limit, ok := ParseLimitParam(testContext(tt.query))
		if limit != tt.limit || ok != tt.ok {
			t.Errorf("ParseLimitParam(%q) = (%d, %v), want (%d, %v)", tt.query, limit, ok, tt.limit, tt.ok)
		}
	}
}
