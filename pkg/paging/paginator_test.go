package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

func TestPaginateThirteenItems(t *testing.T) {
	items := numbers(13)

	first := Paginate(items, 0, 6)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, first.Items)
	assert.False(t, first.CanGoPrev)
	assert.True(t, first.CanGoNext)

	middle := Paginate(items, 1, 6)
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11}, middle.Items)
	assert.True(t, middle.CanGoPrev)
	assert.True(t, middle.CanGoNext)

	last := Paginate(items, 2, 6)
	assert.Equal(t, []int{12}, last.Items)
	assert.True(t, last.CanGoPrev)
	assert.False(t, last.CanGoNext)
	assert.Equal(t, 13, last.TotalItems)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 3, 6)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.Index)
	assert.Empty(t, page.Items)
	assert.False(t, page.CanGoPrev)
	assert.False(t, page.CanGoNext)

	page = Paginate[int](nil, 0, 6)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestPaginateClampsIndex(t *testing.T) {
	items := numbers(7)

	page := Paginate(items, 9, 6)
	assert.Equal(t, 1, page.Index)
	assert.Equal(t, []int{6}, page.Items)

	page = Paginate(items, -4, 6)
	assert.Equal(t, 0, page.Index)
	assert.Len(t, page.Items, 6)
}

func TestPaginateDefaultSize(t *testing.T) {
	page := Paginate(numbers(20), 0, 0)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, 4, page.TotalPages)
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	items := numbers(6)
	page := Paginate(items, 0, 6)
	page.Items[0] = 99
	assert.Equal(t, 0, items[0])
}

func TestNavigationGuards(t *testing.T) {
	items := numbers(13)

	first := Paginate(items, 0, 6)
	assert.Equal(t, 0, first.Prev())
	assert.Equal(t, 1, first.Next())

	last := Paginate(items, 2, 6)
	assert.Equal(t, 2, last.Next())
	assert.Equal(t, 1, last.Prev())

	empty := Paginate([]int{}, 0, 6)
	assert.Equal(t, 0, empty.Next())
	assert.Equal(t, 0, empty.Prev())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 6))
	assert.Equal(t, 1, TotalPages(6, 6))
	assert.Equal(t, 2, TotalPages(7, 6))
	assert.Equal(t, 3, TotalPages(13, 6))
}
