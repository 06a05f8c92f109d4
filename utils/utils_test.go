package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePageParams(t *testing.T) {
	page, size, offset := NormalizePageParams(3, 20, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)
	assert.Equal(t, 40, offset)
}

func TestNormalizePageParamsClampsBadInput(t *testing.T) {
	page, size, offset := NormalizePageParams(0, -5, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 0, offset)

	_, size, _ = NormalizePageParams(1, 5000, 25)
	assert.Equal(t, 25, size)
}

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(45, 2, 10)
	assert.Equal(t, 45, p.TotalItems)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 10, p.PageSize)
}

func TestCreatePaginationEmpty(t *testing.T) {
	p := CreatePagination(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPointerToString(t *testing.T) {
	s := "abc"
	assert.Equal(t, "abc", PointerToString(&s))
	assert.Equal(t, "<nil>", PointerToString(nil))
}
