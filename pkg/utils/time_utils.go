package utils

import "time"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FormatTimestamp renders a record timestamp the way the results export does.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseBirthdate accepts the YYYY-MM-DD wire format.
func ParseBirthdate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
