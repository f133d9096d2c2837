package model

import (
	"errors"
	"fmt"
	"time"
)

type (
	// Reminder is a single pending reminder. It is never edited in place;
	// it is created once and removed when it fires or gets deleted.
	Reminder struct {
		Time      time.Time // absolute fire time, UTC
		UserID    int64
		Username  string // display name snapshot at creation time
		ChatID    int64
		ThreadID  int64 // forum topic of the originating message, 0 outside forums
		MessageID int64 // originating message, 0 if unknown
		Text      string
	}

	ReminderService interface {
		AddReminder(reminder Reminder) error
		RemindersOfUser(userID int64) []Reminder
		DeleteReminderOfUser(userID int64, ordinal int) (Reminder, error)
	}

	// ReminderNotifier delivers a fired reminder. Delivery is best-effort:
	// a returned error is logged and the reminder is consumed regardless.
	ReminderNotifier interface {
		Notify(reminder Reminder) error
	}
)

var ErrReminderInPast = errors.New("reminder time is not in the future")

// ReminderLimitError is returned when a user already holds the maximum
// number of pending reminders.
type ReminderLimitError struct {
	Count int
	Limit int
}

func (e *ReminderLimitError) Error() string {
	return fmt.Sprintf("reminder limit reached: %d/%d", e.Count, e.Limit)
}

// OrdinalError is returned when a deletion ordinal is outside the user's
// current 1-based listing.
type OrdinalError struct {
	Count int
}

func (e *OrdinalError) Error() string {
	return fmt.Sprintf("ordinal out of range: user has %d reminders", e.Count)
}
