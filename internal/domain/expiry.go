package domain

import "time"

// DateLayout is the storage format for day-granular expiry dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC. Expiry dates carry no time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OpenedExpiry returns the expiry date an item gets when it is opened:
// opening halves the remaining shelf life, floored at one day. With more
// than one day left the new expiry is today + max(1, daysLeft/2); with one
// day or less (including the past) the expiry is left as is. A nil expiry
// stays nil.
func OpenedExpiry(now time.Time, expiry *time.Time) *time.Time {
	if expiry == nil {
		return nil
	}
	today := DateOnly(now)
	daysLeft := int(DateOnly(*expiry).Sub(today) / (24 * time.Hour))
	if daysLeft <= 1 {
		return expiry
	}
	half := daysLeft / 2
	if half < 1 {
		half = 1
	}
	d := today.AddDate(0, 0, half)
	return &d
}
