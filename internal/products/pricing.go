package products

import (
	"github.com/shopspring/decimal"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
	"github.com/silverempire/commerce-backend/pkg/money"
)

// ResolveUnitPrice picks the authoritative unit price for a line: the
// variation's current price when a variation is given, otherwise the
// product's. With neither there is no pricing source and the call fails.
func ResolveUnitPrice(product *models.Product, variation *models.ProductVariation) (decimal.Decimal, error) {
	if variation != nil {
		return variation.CurrentPrice(), nil
	}
	if product != nil {
		return product.CurrentPrice(), nil
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "no pricing source: product or variation required")
}

// ProductDiscountPercent derives the sale discount for a product; zero when
// the product is not on sale.
func ProductDiscountPercent(p models.Product) decimal.Decimal {
	if !p.IsOnSale() {
		return decimal.Zero
	}
	return money.DiscountPercent(p.BasePrice, *p.SalePrice)
}

// VariationDiscountPercent derives the sale discount for a variation.
func VariationDiscountPercent(v models.ProductVariation) decimal.Decimal {
	if !v.IsOnSale() {
		return decimal.Zero
	}
	return money.DiscountPercent(v.Price, *v.SalePrice)
}
