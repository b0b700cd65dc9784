package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber groups digits by thousands: 1234567 -> "1 234 567".
func FormatNumber(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var sb strings.Builder
	sb.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatProgress renders collection progress as "owned/total (pct%)".
func FormatProgress(owned, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d/0", owned)
	}
	return fmt.Sprintf("%d/%d (%d%%)", owned, total, owned*100/total)
}

func Ptr[T any](v T) *T {
	return &v
}
