package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     Pagination
	}{
		{"defaults on zero", 0, 0, Pagination{Page: 1, PageSize: 20}},
		{"defaults on negative", -3, -1, Pagination{Page: 1, PageSize: 20}},
		{"passes through valid", 2, 50, Pagination{Page: 2, PageSize: 50}},
		{"caps page size", 1, 500, Pagination{Page: 1, PageSize: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.pageSize))
		})
	}
}

func TestPaginationLimitOffset(t *testing.T) {
	p := NewPagination(3, 25)

	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())

	first := NewPagination(1, 20)
	assert.Equal(t, 0, first.Offset())
}

func TestNewPageMeta(t *testing.T) {
	p := NewPagination(2, 20)

	meta := NewPageMeta(p, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewPageMeta(p, 0)
	assert.Zero(t, empty.TotalPages)

	exact := NewPageMeta(p, 40)
	assert.Equal(t, 2, exact.TotalPages)
}
