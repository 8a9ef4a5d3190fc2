package report

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Display-only currencies for TF2 amounts.
const (
	CurrencyRef  = "REF"
	CurrencyKeys = "KEYS"
)

func init() {
	money.AddCurrency(CurrencyRef, "ref", "1 $", ".", ",", refFraction)
	money.AddCurrency(CurrencyKeys, "keys", "1 $", ".", ",", keysFraction)
}

const (
	refFraction  = 2
	keysFraction = 4
)

// amount converts v to minor units, rounding half away from zero.
func amount(v float64, fraction int32, code string) *money.Money {
	minor := decimal.NewFromFloat(v).Shift(fraction).Round(0).IntPart()
	return money.New(minor, code)
}

// FormatRef renders a refined metal amount, e.g. "1,234.56 ref".
func FormatRef(v float64) string {
	return amount(v, refFraction, CurrencyRef).Display()
}

// FormatKeys renders a key amount, e.g. "3.5000 keys".
func FormatKeys(v float64) string {
	return amount(v, keysFraction, CurrencyKeys).Display()
}

// FormatOptionalRef renders "-" for unpriced values.
func FormatOptionalRef(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatRef(*v)
}

func FormatOptionalKeys(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatKeys(*v)
}

// FormatTotal renders a split total as "<n> keys + <m> ref".
func FormatTotal(keysPart int, refPart float64) string {
	return strconv.Itoa(keysPart) + " keys + " + FormatRef(refPart)
}
