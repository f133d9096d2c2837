package reminders

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Each numeric component of a relative duration is capped, in its own unit,
// to reject pathological input like "99999999999999s".
const maxAmount = 1_000_000

var (
	ErrNoTimeSpec     = errors.New("no time specification found")
	ErrEmptyText      = errors.New("reminder text is empty")
	ErrAmountTooLarge = errors.New("duration component too large")
	ErrInvalidDate    = errors.New("invalid date or time")
)

type relativeUnit struct {
	names    []string // longest first, matching is greedy
	duration time.Duration
}

var relativeUnits = []relativeUnit{
	{[]string{"days", "day", "d"}, 24 * time.Hour},
	{[]string{"hours", "hour", "h"}, time.Hour},
	{[]string{"minutes", "minute", "mins", "min", "m"}, time.Minute},
	{[]string{"seconds", "second", "secs", "sec", "s"}, time.Second},
}

// parseRelative parses input of the form "5d 3h 2m 1s text..." into an
// absolute time relative to now plus the trailing reminder text. The four
// units are optional but fixed in order; at least one must be present.
// The text must be separated from the duration by whitespace.
func parseRelative(input string, now time.Time) (time.Time, string, error) {
	rest := strings.TrimSpace(input)

	var total time.Duration
	matchedAny := false

	for _, unit := range relativeUnits {
		trimmed := strings.TrimLeft(rest, " \t")

		digits := leadingDigits(trimmed)
		if digits == "" {
			continue
		}

		after := trimmed[len(digits):]
		// A single space between amount and unit is fine ("5 days").
		after = strings.TrimPrefix(after, " ")

		name := matchUnitName(after, unit.names)
		if name == "" {
			continue
		}

		tail := after[len(name):]
		if tail != "" && !isUnitBoundary(tail[0]) {
			continue
		}

		if len(digits) > 7 {
			return time.Time{}, "", ErrAmountTooLarge
		}
		amount, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return time.Time{}, "", ErrAmountTooLarge
		}
		if amount > maxAmount {
			return time.Time{}, "", ErrAmountTooLarge
		}

		total += time.Duration(amount) * unit.duration
		matchedAny = true
		rest = tail
	}

	if !matchedAny {
		return time.Time{}, "", ErrNoTimeSpec
	}

	if rest != "" && !isWhitespace(rest[0]) {
		return time.Time{}, "", ErrNoTimeSpec
	}

	text := strings.TrimSpace(rest)
	if text == "" {
		return time.Time{}, "", ErrEmptyText
	}

	return now.UTC().Add(total), text, nil
}

var (
	datePattern = regexp.MustCompile(`^(?:(\d{4})-)?(\d{2})-(\d{2})`)
	timePattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?`)
)

// parseAbsolute parses input of the form "[YYYY-]MM-DD [HH:MM[:SS]] text..."
// into an absolute UTC time plus the trailing reminder text. At least a
// complete date or a complete time must be present; omitted parts default
// to now. Whether the result lies in the future is not checked here.
func parseAbsolute(input string, now time.Time) (time.Time, string, error) {
	now = now.UTC()

	rest := strings.TrimLeft(input, " \t")

	year, month, day := fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", now.Month()), fmt.Sprintf("%02d", now.Day())
	hour, minute, second := "00", "00", "00"

	hasDate := false
	if m := datePattern.FindStringSubmatch(rest); m != nil {
		tail := rest[len(m[0]):]
		if tail == "" || isWhitespace(tail[0]) {
			hasDate = true
			if m[1] != "" {
				year = m[1]
			}
			month, day = m[2], m[3]
			rest = strings.TrimLeft(tail, " \t")
		}
	}

	hasTime := false
	if m := timePattern.FindStringSubmatch(rest); m != nil {
		tail := rest[len(m[0]):]
		if tail == "" || isWhitespace(tail[0]) {
			hasTime = true
			hour, minute = m[1], m[2]
			if m[3] != "" {
				second = m[3]
			}
			rest = tail
		}
	}

	if !hasDate && !hasTime {
		return time.Time{}, "", ErrNoTimeSpec
	}

	text := strings.TrimSpace(rest)
	if text == "" {
		return time.Time{}, "", ErrEmptyText
	}

	when, err := time.Parse(
		"2006-01-02 15:04:05",
		fmt.Sprintf("%s-%s-%s %s:%s:%s", year, month, day, hour, minute, second),
	)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}

	return when, text, nil
}

func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}

func matchUnitName(s string, names []string) string {
	for _, name := range names {
		if strings.HasPrefix(s, name) {
			return name
		}
	}
	return ""
}

// A unit token ends at whitespace or at the next amount ("5d3h").
func isUnitBoundary(c byte) bool {
	return isWhitespace(c) || (c >= '0' && c <= '9')
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
