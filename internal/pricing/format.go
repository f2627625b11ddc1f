package pricing

import (
	"strconv"
	"strings"
)

// FormatCurrency renders an øre amount using Norwegian conventions:
// space-separated thousands, comma decimal separator, trailing "kr".
func FormatCurrency(amount Money) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	kroner := amount / 100
	ore := amount % 100

	grouped := groupThousands(strconv.FormatInt(kroner, 10))
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte(',')
	if ore < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(ore, 10))
	b.WriteString(" kr")
	return b.String()
}

// FormatPercent renders a whole percent value with a trailing "%".
func FormatPercent(percent int32) string {
	return strconv.FormatInt(int64(percent), 10) + " %"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
