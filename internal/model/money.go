package model

import (
	"fmt"
	"math"
	"strconv"
)

// Cents is a monetary amount in integer cents. It marshals to and from a
// plain JSON number with two decimal places (350 <-> 3.50) so the wire
// format matches what the storefront expects.
type Cents int64

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(c)/100, 'f', 2, 64)), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	*c = Cents(math.Round(f * 100))
	return nil
}

// String formats the amount as a decimal string without a currency symbol.
func (c Cents) String() string {
	return strconv.FormatFloat(float64(c)/100, 'f', 2, 64)
}

// Mul scales the amount by an item quantity.
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}

// TaxAt computes tax at the given rate in basis points, rounding half up.
// 1000 cents at 800bp yields 80 cents.
func (c Cents) TaxAt(basisPoints int64) Cents {
	return Cents((int64(c)*basisPoints + 5000) / 10000)
}
