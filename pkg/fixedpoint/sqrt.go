package fixedpoint

import (
	"math"

	"github.com/shopspring/decimal"
)

const maxSqrtIterations = 100

var two = decimal.NewFromInt(2)

// sqrtDecimal runs newton iterations seeded with the float64 estimate until the
// result is stable at prec+2 decimal places. Roots smaller than 10^-(prec+2)
// come back as zero.
func sqrtDecimal(d decimal.Decimal, prec int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}

	x := d
	if f, _ := d.Float64(); f > 0 && !math.IsInf(f, 0) {
		if est := math.Sqrt(f); est > 0 && !math.IsInf(est, 0) {
			x = decimal.NewFromFloat(est)
		}
	}

	work := prec + 2
	for i := 0; i < maxSqrtIterations; i++ {
		next := x.Add(d.DivRound(x, work)).DivRound(two, work)
		if next.IsZero() {
			// the root is below the working precision, so it rounds to zero
			return next.Round(prec)
		}
		if next.Equal(x) {
			break
		}
		x = next
	}

	return x.Round(prec)
}
