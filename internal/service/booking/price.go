package booking

import (
	"strconv"

	"github.com/naturalclinic/flightbooking/internal/domain"
)

// PriceBreakdown is the derived price display shown at every step.
type PriceBreakdown struct {
	Base         float64 `json:"base"`
	TaxesAndFees float64 `json:"taxesAndFees"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
}

// Breakdown derives taxes and fees as total minus base. An unparsable amount
// counts as zero so a display computation can never block checkout; the
// authoritative charge amount still comes from the offer's total field.
func Breakdown(p domain.Price) PriceBreakdown {
	base := parseAmount(p.Base)
	total := parseAmount(p.Total)
	return PriceBreakdown{
		Base:         base,
		TaxesAndFees: total - base,
		Total:        total,
		Currency:     p.Currency,
	}
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
