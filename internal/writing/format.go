package writing

import (
	"fmt"
	"time"
)

// FormatDate renders t as "2024년 3월 5일" using t's own calendar fields.
// The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// FormatDateIn is FormatDate after converting t to loc. A nil loc leaves t as is.
func FormatDateIn(t time.Time, loc *time.Location) string {
	if t.IsZero() || loc == nil {
		return FormatDate(t)
	}
	return FormatDate(t.In(loc))
}
