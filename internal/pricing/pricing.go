// Package pricing is the single pricing policy shared by the cart summary
// and the checkout summary, so the two can never diverge.
package pricing

import (
	"strconv"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

const (
	// FreeShippingThreshold is strict: a subtotal of exactly 100.00 still
	// pays the flat rate.
	FreeShippingThreshold = 100.0
	FlatShippingRate      = 10.0
	TaxRate               = 0.10
)

// Quote is a fully derived price breakdown. Values keep full float precision;
// round only at display time with FormatAmount.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Subtotal sums price*quantity over the given lines.
func Subtotal(lines []domain.CartLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// QuoteLines derives the full breakdown for a cart.
func QuoteLines(lines []domain.CartLine) Quote {
	return QuoteSubtotal(Subtotal(lines))
}

// QuoteSubtotal derives shipping, tax and total from a subtotal.
func QuoteSubtotal(subtotal float64) Quote {
	shipping := FlatShippingRate
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// FormatAmount renders a monetary value with two decimal places for display.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
