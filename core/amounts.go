package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // 4 decimal places for monetary values (0.0001 precision)

// vatRate is the statutory VAT rate applied to the supply price.
var vatRate = decimal.NewFromFloat(0.1)

// Amounts holds the three monetary fields derived from unit price and quantity.
type Amounts struct {
	SupplyPrice float64 `json:"supply_price"`
	VAT         float64 `json:"vat"`
	TotalAmount float64 `json:"total_amount"`
}

// ComputeAmounts derives supply price, VAT and total from unit price and
// quantity. Uses decimal arithmetic to avoid floating-point errors.
//
// Formula:
//
//	supplyPrice = quantity × unitPrice
//	vat         = round(supplyPrice × 0.1)   (half-up, whole currency units)
//	totalAmount = supplyPrice + vat
//
// Negative inputs are clamped to 0 before multiplication. The function is
// pure; it must be called every time either input changes, and the derived
// fields must never be written independently of it.
func ComputeAmounts(unitPrice, quantity float64) Amounts {
	if unitPrice < 0 {
		unitPrice = 0
	}
	if quantity < 0 {
		quantity = 0
	}

	unitPriceDecimal := decimal.NewFromFloat(unitPrice)
	quantityDecimal := decimal.NewFromFloat(quantity)

	supplyDecimal := quantityDecimal.Mul(unitPriceDecimal).Round(monetaryPrecision)
	// decimal.Round rounds half away from zero; supply is non-negative here,
	// so this is standard half-up rounding.
	vatDecimal := supplyDecimal.Mul(vatRate).Round(0)
	totalDecimal := supplyDecimal.Add(vatDecimal)

	supplyPrice, _ := supplyDecimal.Float64()
	vat, _ := vatDecimal.Float64()
	totalAmount, _ := totalDecimal.Float64()

	return Amounts{
		SupplyPrice: supplyPrice,
		VAT:         vat,
		TotalAmount: totalAmount,
	}
}

// ApplyAmountsToNotice recomputes the notice's derived monetary fields from
// the given unit price and quantity, keeping all five fields consistent.
func ApplyAmountsToNotice(notice *BiddingNotice, unitPrice, quantity float64) {
	amounts := ComputeAmounts(unitPrice, quantity)
	notice.UnitPrice = unitPrice
	notice.Quantity = quantity
	notice.SupplyPrice = amounts.SupplyPrice
	notice.VAT = amounts.VAT
	notice.TotalAmount = amounts.TotalAmount
}

// ApplyAmountsToParticipation recomputes a participation's derived monetary
// fields from the given unit price and quantity.
func ApplyAmountsToParticipation(p *Participation, unitPrice, quantity float64) {
	amounts := ComputeAmounts(unitPrice, quantity)
	p.UnitPrice = unitPrice
	p.Quantity = quantity
	p.SupplyPrice = amounts.SupplyPrice
	p.VAT = amounts.VAT
	p.TotalAmount = amounts.TotalAmount
}
