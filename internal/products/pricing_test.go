package products

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	d := dec(t, s)
	return &d
}

func TestResolveUnitPriceVariationWins(t *testing.T) {
	product := &models.Product{BasePrice: dec(t, "50.00")}
	variation := &models.ProductVariation{Price: dec(t, "65.00")}

	price, err := ResolveUnitPrice(product, variation)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !price.Equal(dec(t, "65.00")) {
		t.Fatalf("expected variation price, got %s", price)
	}
}

func TestResolveUnitPriceProductFallback(t *testing.T) {
	product := &models.Product{BasePrice: dec(t, "50.00")}

	price, err := ResolveUnitPrice(product, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !price.Equal(dec(t, "50.00")) {
		t.Fatalf("expected base price, got %s", price)
	}
}

func TestResolveUnitPriceSaleOverridesBase(t *testing.T) {
	product := &models.Product{
		BasePrice: dec(t, "50.00"),
		SalePrice: decPtr(t, "39.99"),
	}

	price, err := ResolveUnitPrice(product, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !price.Equal(dec(t, "39.99")) {
		t.Fatalf("expected sale price, got %s", price)
	}
}

func TestResolveUnitPriceNoSource(t *testing.T) {
	_, err := ResolveUnitPrice(nil, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductCurrentPriceProperty(t *testing.T) {
	withSale := models.Product{BasePrice: dec(t, "80.00"), SalePrice: decPtr(t, "60.00")}
	if !withSale.CurrentPrice().Equal(dec(t, "60.00")) {
		t.Fatalf("current price must equal sale price when set")
	}
	withoutSale := models.Product{BasePrice: dec(t, "80.00")}
	if !withoutSale.CurrentPrice().Equal(dec(t, "80.00")) {
		t.Fatalf("current price must equal base price when no sale price")
	}
}

func TestIsOnSaleRequiresUndercut(t *testing.T) {
	equal := models.Product{BasePrice: dec(t, "80.00"), SalePrice: decPtr(t, "80.00")}
	if equal.IsOnSale() {
		t.Fatal("sale price equal to base must not count as on sale")
	}
	above := models.Product{BasePrice: dec(t, "80.00"), SalePrice: decPtr(t, "90.00")}
	if above.IsOnSale() {
		t.Fatal("sale price above base must not count as on sale")
	}
	below := models.Product{BasePrice: dec(t, "80.00"), SalePrice: decPtr(t, "79.99")}
	if !below.IsOnSale() {
		t.Fatal("sale price below base must count as on sale")
	}
}

func TestVariationDiscountPercent(t *testing.T) {
	variation := models.ProductVariation{
		Price:     dec(t, "100.00"),
		SalePrice: decPtr(t, "75.00"),
	}
	got := VariationDiscountPercent(variation)
	if got.StringFixed(2) != "25.00" {
		t.Fatalf("expected 25.00 got %s", got)
	}
}

func TestDiscountPercentZeroWhenNotOnSale(t *testing.T) {
	product := models.Product{BasePrice: dec(t, "100.00")}
	if !ProductDiscountPercent(product).IsZero() {
		t.Fatal("no sale price must yield zero discount")
	}
}

func TestTotalStockIncludesActiveVariations(t *testing.T) {
	product := models.Product{
		TrackInventory: true,
		StockQuantity:  5,
		Variations: []models.ProductVariation{
			{StockQuantity: 3, IsActive: true},
			{StockQuantity: 7, IsActive: true, IsDeleted: true},
			{StockQuantity: 2, IsActive: false},
		},
	}
	total, tracked := product.TotalStock()
	if !tracked {
		t.Fatal("tracked inventory expected")
	}
	if total != 8 {
		t.Fatalf("expected 8 (own 5 + active variation 3), got %d", total)
	}
}

func TestTotalStockUntracked(t *testing.T) {
	product := models.Product{TrackInventory: false, StockQuantity: 5}
	if _, tracked := product.TotalStock(); tracked {
		t.Fatal("untracked inventory must report unbounded stock")
	}
	if !product.IsInStock() {
		t.Fatal("untracked inventory is always in stock")
	}
	if product.IsLowStock() {
		t.Fatal("untracked inventory is never low stock")
	}
}
