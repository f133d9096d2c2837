package utils

import "time"

const (
	Day  = 24 * time.Hour
	Week = 7 * Day

	// DefaultReminderLimit caps how many pending reminders a single user may hold.
	DefaultReminderLimit = 10

	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/93.0.0.0 Safari/537.36"
)
