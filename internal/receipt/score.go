package receipt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score computes the point total for a receipt. It is pure: the same
// receipt always yields the same total, and scoring a valid receipt
// cannot fail. All rules are additive:
//
//   - 1 point per alphanumeric rune in the retailer name
//   - 50 points for a whole-dollar total
//   - 25 points when the total is a multiple of 0.25
//   - 5 points per pair of items
//   - ceil(price * 0.2) points per item whose trimmed description
//     length is divisible by 3
//   - 6 points when the purchase day of month is odd
//   - 10 points for purchases between 14:00 inclusive and 16:00 exclusive
func Score(r *Receipt) int64 {
	var points int64

	for _, c := range r.Retailer {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			points++
		}
	}

	if r.TotalCents%100 == 0 {
		points += 50
	}

	if r.TotalCents%25 == 0 {
		points += 25
	}

	points += 5 * int64(len(r.Items)/2)

	for _, it := range r.Items {
		trimmed := strings.TrimSpace(it.Description)
		if utf8.RuneCountInString(trimmed)%3 == 0 {
			// price * 0.2 in dollars is priceCents / 500. Integer
			// ceil-division keeps the arithmetic exact; a trimmed-to-empty
			// description qualifies and contributes ceil(0 * 0.2) = 0.
			points += ceilDiv(it.PriceCents, 500)
		}
	}

	if r.PurchaseDate.Day()%2 == 1 {
		points += 6
	}

	if h := r.PurchaseTime.Hour(); h >= 14 && h < 16 {
		points += 10
	}

	return points
}

// ceilDiv divides a by b rounding toward positive infinity.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}

	return q
}
