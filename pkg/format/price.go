// Package format renders values the way the marketplace UI displays them.
package format

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice renders a price with dot thousands separators. Whole
// amounts carry no decimals; others carry two, after a comma.
//
//	FormatPrice(10000)   == "10.000"
//	FormatPrice(1234.56) == "1.234,56"
func FormatPrice(price float64) string {
	if price == math.Trunc(price) {
		return group(strconv.FormatFloat(price, 'f', 0, 64))
	}

	s := strconv.FormatFloat(price, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	return group(intPart) + "," + frac
}

func group(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
