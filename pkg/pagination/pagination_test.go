package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 30, p.Offset())
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Window(items, &PaginationParams{Page: 1, PerPage: 2}))
	assert.Equal(t, []int{5}, Window(items, &PaginationParams{Page: 3, PerPage: 2}))
	assert.Empty(t, Window(items, &PaginationParams{Page: 4, PerPage: 2}))
	assert.Equal(t, items, Window(items, nil))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 15, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
}
