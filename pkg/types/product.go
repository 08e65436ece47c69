package types

import (
	"github.com/shopspring/decimal"
)

func init() {
	// prices go out as json numbers, the same shape the catalog endpoint uses
	decimal.MarshalJSONWithoutQuotes = true
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a single catalog entry as served by the catalog endpoint.
type Product struct {
	Id          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Catalog is the ordered product list fetched once per session.
// It is treated as immutable after load; derived views copy from it.
type Catalog []Product

// Categories returns the distinct category labels in first-seen order.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{}, 8)
	ret := make([]string, 0, 8)
	for _, p := range c {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		ret = append(ret, p.Category)
	}
	return ret
}
