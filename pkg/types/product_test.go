package types

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/shopspring/decimal"
)

func TestCategoriesFirstSeenOrder(t *testing.T) {
	c := Catalog{
		{Id: 1, Category: "men's clothing"},
		{Id: 2, Category: "jewelery"},
		{Id: 3, Category: "men's clothing"},
		{Id: 4, Category: "electronics"},
		{Id: 5, Category: "jewelery"},
	}
	want := []string{"men's clothing", "jewelery", "electronics"}
	if diff := cmp.Diff(want, c.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoriesEmpty(t *testing.T) {
	got := Catalog{}.Categories()
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non nil slice, got %v", got)
	}
}

func TestProductPriceMarshalsAsNumber(t *testing.T) {
	p := Product{Id: 1, Title: "a", Price: decimal.RequireFromString("109.95")}
	data, err := jsoncompat.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"price":109.95`) {
		t.Errorf("Expected numeric price, got %s", data)
	}
}
