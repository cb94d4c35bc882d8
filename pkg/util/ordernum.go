package util

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GenerateOrderNumber produces a human-readable order number such as
// "ORD-20250830-4821". Uniqueness is guaranteed by the unique index on
// orders.order_number; collisions (roughly 1 in 9000 per day) surface as a
// duplicate-key error and the caller retries.
func GenerateOrderNumber() string {
	suffix := 1000 + rand.Intn(9000)
	return fmt.Sprintf("ORD-%s-%d", time.Now().Format("20060102"), suffix)
}

// SanitizePhone strips everything except digits and a single leading plus.
func SanitizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the phone is digits with an optional leading
// plus, 8 to 15 digits long.
func ValidPhone(phone string) bool {
	digits := phone
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
