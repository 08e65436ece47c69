package search

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-catalog/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type compareFunc func(a, b types.Product) int

func comparer(key types.SortKey, lang language.Tag) compareFunc {
	switch key {
	case types.SortPriceAsc:
		return func(a, b types.Product) int {
			return a.Price.Cmp(b.Price)
		}
	case types.SortPriceDesc:
		return func(a, b types.Product) int {
			return b.Price.Cmp(a.Price)
		}
	case types.SortRatingDesc:
		return func(a, b types.Product) int {
			return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
		}
	case types.SortAlpha:
		// collators keep internal buffers, one per sort call
		c := collate.New(lang)
		return func(a, b types.Product) int {
			return c.CompareString(a.Title, b.Title)
		}
	}
	return nil
}

// Sort returns a sorted copy of items. Equal elements keep their input order and
// an unset key returns the copy unchanged.
func Sort(items []types.Product, key types.SortKey, lang language.Tag) []types.Product {
	ret := slices.Clone(items)
	if ret == nil {
		ret = []types.Product{}
	}
	if fn := comparer(key, lang); fn != nil {
		slices.SortStableFunc(ret, fn)
	}
	return ret
}
