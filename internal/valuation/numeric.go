package valuation

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func roundPtr(v *float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	r := Round(*v, places)
	return &r
}

// ToRef flattens a keys+metal amount into refined metal. It is nil when the
// rate is unusable or the result is not a finite number.
func ToRef(keys, metal, keyRef float64) *float64 {
	if !finite(keyRef) || keyRef <= 0 {
		return nil
	}
	ref := keys*keyRef + metal
	if !finite(ref) {
		return nil
	}
	return &ref
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToKeys converts refined metal into keys, 0 when the rate is unusable.
func ToKeys(ref, keyRef float64) float64 {
	if keyRef <= 0 {
		return 0
	}
	return ref / keyRef
}

// SplitKeysRef expresses a refined total as whole keys plus leftover refined.
// Non-finite inputs split to zero; the key count saturates at math.MaxInt32.
func SplitKeysRef(totalRef, keyRef float64) (int, float64) {
	if !finite(totalRef) || !finite(keyRef) || keyRef <= 0 {
		return 0, 0
	}
	total := decimal.NewFromFloat(totalRef)
	rate := decimal.NewFromFloat(keyRef)
	keys := total.Div(rate).Floor()
	if limit := decimal.NewFromInt(math.MaxInt32); keys.GreaterThan(limit) {
		keys = limit
	}
	rest := total.Sub(keys.Mul(rate))
	return int(keys.IntPart()), rest.InexactFloat64()
}
