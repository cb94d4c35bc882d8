package util

import (
	"fmt"
	"strconv"
)

// FormatIDR renders an amount as Indonesian rupiah with dot thousand
// separators and no decimals, e.g. 50000 -> "Rp 50.000".
func FormatIDR(amount float64) string {
	n := int64(amount)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return fmt.Sprintf("%sRp %s", sign, string(out))
}
