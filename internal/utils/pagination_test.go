package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, DefaultPageSize},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"page clamped low", "?page=0", 1, DefaultPageSize},
		{"size clamped high", "?limit=10000", 1, MaxPageSize},
		{"size clamped low", "?limit=0", 1, MinPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			params := GetPaginationParams(c)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.PageSize)
		})
	}
}

func TestGetPaginationParamsOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?order=sideways", nil)
	assert.Equal(t, "desc", GetPaginationParams(c).Order)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?order=asc", nil)
	assert.Equal(t, "asc", GetPaginationParams(c).Order)
}

func TestGetSkip(t *testing.T) {
	p := &PaginationParams{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.GetSkip())

	p = &PaginationParams{Page: 4, PageSize: 25}
	assert.Equal(t, 75, p.GetSkip())
}

func TestCreatePaginationMeta(t *testing.T) {
	params := &PaginationParams{Page: 2, PageSize: 10}
	meta := CreatePaginationMeta(params, 35)

	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)
	require.NotNil(t, meta.PreviousPage)
	assert.Equal(t, 1, *meta.PreviousPage)
}

func TestCreatePaginationMetaSinglePage(t *testing.T) {
	params := &PaginationParams{Page: 1, PageSize: 20}
	meta := CreatePaginationMeta(params, 5)

	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PreviousPage)
}
