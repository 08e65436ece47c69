package types

import (
	"errors"
	"strings"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortAlpha      SortKey = "alpha"
)

var ErrInvalidSortKey = errors.New("invalid sort key")

// SortKeys lists the selectable sort keys in display order, unset first.
var SortKeys = []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortAlpha}

var sortAliases = map[string]SortKey{
	"":            SortNone,
	"none":        SortNone,
	"price_asc":   SortPriceAsc,
	"priceasc":    SortPriceAsc,
	"price_desc":  SortPriceDesc,
	"pricedesc":   SortPriceDesc,
	"rating_desc": SortRatingDesc,
	"ratingdesc":  SortRatingDesc,
	"alpha":       SortAlpha,
}

func ParseSortKey(value string) (SortKey, error) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return SortNone, ErrInvalidSortKey
	}
	return key, nil
}

func (s SortKey) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: low to high"
	case SortPriceDesc:
		return "Price: high to low"
	case SortRatingDesc:
		return "Rating"
	case SortAlpha:
		return "A-Z"
	}
	return "Default"
}

// Next cycles through SortKeys, wrapping back to unset.
func (s SortKey) Next() SortKey {
	for i, k := range SortKeys {
		if k == s {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortNone
}
