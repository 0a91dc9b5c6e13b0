package utils

import (
	"fmt"
	"time"
)

// isoLayout matches the millisecond UTC form clients already parse, e.g. 2025-09-24T08:12:00.000Z.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func NowISO() string { return FormatISO(time.Now()) }

// FormatUptime renders a duration as "1h02m03s" for the health endpoint.
func FormatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}
