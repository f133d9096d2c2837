package reminders

import (
	"errors"
	"testing"
	"time"
)

var parseNow = time.Date(2021, 4, 15, 12, 0, 0, 0, time.UTC)

func TestParseRelative(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTime time.Time
		wantText string
	}{
		{
			name:     "seconds only",
			input:    "30s drink water",
			wantTime: parseNow.Add(30 * time.Second),
			wantText: "drink water",
		},
		{
			name:     "all units short",
			input:    "5d 3h 2m 1s remind me of this",
			wantTime: parseNow.Add(5*24*time.Hour + 3*time.Hour + 2*time.Minute + time.Second),
			wantText: "remind me of this",
		},
		{
			name:     "all units long",
			input:    "1day 1hour 1min 1second remind me of this",
			wantTime: parseNow.Add(24*time.Hour + time.Hour + time.Minute + time.Second),
			wantText: "remind me of this",
		},
		{
			name:     "plural units",
			input:    "5days 3hours 2mins 420seconds remind me of this",
			wantTime: parseNow.Add(5*24*time.Hour + 3*time.Hour + 2*time.Minute + 420*time.Second),
			wantText: "remind me of this",
		},
		{
			name:     "no spaces between tokens",
			input:    "5d3h2m1s msg",
			wantTime: parseNow.Add(5*24*time.Hour + 3*time.Hour + 2*time.Minute + time.Second),
			wantText: "msg",
		},
		{
			name:     "space between amount and unit",
			input:    "5 days msg",
			wantTime: parseNow.Add(5 * 24 * time.Hour),
			wantText: "msg",
		},
		{
			name:     "skipped middle units",
			input:    "2d 10s msg",
			wantTime: parseNow.Add(2*24*time.Hour + 10*time.Second),
			wantText: "msg",
		},
		{
			name:     "component at the bound",
			input:    "1000000s msg",
			wantTime: parseNow.Add(1000000 * time.Second),
			wantText: "msg",
		},
		{
			name:     "extra whitespace survives",
			input:    "  1h   msg with   spaces  ",
			wantTime: parseNow.Add(time.Hour),
			wantText: "msg with   spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTime, gotText, err := parseRelative(tt.input, parseNow)
			if err != nil {
				t.Fatalf("parseRelative(%q): %v", tt.input, err)
			}
			if !gotTime.Equal(tt.wantTime) {
				t.Errorf("time: want %v, got %v", tt.wantTime, gotTime)
			}
			if gotText != tt.wantText {
				t.Errorf("text: want %q, got %q", tt.wantText, gotText)
			}
		})
	}
}

func TestParseRelativeFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrNoTimeSpec},
		{"no units", "just some text", ErrNoTimeSpec},
		{"number without unit", "42 msg", ErrNoTimeSpec},
		{"unknown unit", "5x msg", ErrNoTimeSpec},
		{"missing text", "5d", ErrEmptyText},
		{"whitespace text", "5d    ", ErrEmptyText},
		{"component above bound", "1000001s msg", ErrAmountTooLarge},
		{"absurdly long amount", "99999999999999999999d msg", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseRelative(tt.input, parseNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseRelative(%q): want %v, got %v", tt.input, tt.wantErr, err)
			}
		})
	}
}

func TestParseAbsolute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTime time.Time
		wantText string
	}{
		{
			name:     "full date and time",
			input:    "2021-04-20 04:20:00 remind me of this",
			wantTime: time.Date(2021, 4, 20, 4, 20, 0, 0, time.UTC),
			wantText: "remind me of this",
		},
		{
			name:     "date and time without seconds",
			input:    "2021-04-20 04:20 remind me of this",
			wantTime: time.Date(2021, 4, 20, 4, 20, 0, 0, time.UTC),
			wantText: "remind me of this",
		},
		{
			name:     "date without year",
			input:    "04-20 04:20 msg",
			wantTime: time.Date(2021, 4, 20, 4, 20, 0, 0, time.UTC),
			wantText: "msg",
		},
		{
			name:     "date only",
			input:    "2021-12-24 msg",
			wantTime: time.Date(2021, 12, 24, 0, 0, 0, 0, time.UTC),
			wantText: "msg",
		},
		{
			name:     "time only defaults to today",
			input:    "18:30 msg",
			wantTime: time.Date(2021, 4, 15, 18, 30, 0, 0, time.UTC),
			wantText: "msg",
		},
		{
			name:     "time with seconds",
			input:    "18:30:45 msg",
			wantTime: time.Date(2021, 4, 15, 18, 30, 45, 0, time.UTC),
			wantText: "msg",
		},
		{
			name:     "text keeps embedded newlines",
			input:    "18:30 first line\nsecond line",
			wantTime: time.Date(2021, 4, 15, 18, 30, 0, 0, time.UTC),
			wantText: "first line\nsecond line",
		},
		{
			name:     "past times parse fine",
			input:    "2020-01-01 00:00 msg",
			wantTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			wantText: "msg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTime, gotText, err := parseAbsolute(tt.input, parseNow)
			if err != nil {
				t.Fatalf("parseAbsolute(%q): %v", tt.input, err)
			}
			if !gotTime.Equal(tt.wantTime) {
				t.Errorf("time: want %v, got %v", tt.wantTime, gotTime)
			}
			if gotText != tt.wantText {
				t.Errorf("text: want %q, got %q", tt.wantText, gotText)
			}
		})
	}
}

func TestParseAbsoluteFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty input", "", ErrNoTimeSpec},
		{"no date or time", "just some text", ErrNoTimeSpec},
		{"incomplete time", "18 msg", ErrNoTimeSpec},
		{"glued text after time", "18:30msg", ErrNoTimeSpec},
		{"missing text", "2021-04-20 18:30", ErrEmptyText},
		{"nonexistent day", "02-30 msg", ErrInvalidDate},
		{"nonexistent month", "13-01 msg", ErrInvalidDate},
		{"hour out of range", "25:00 msg", ErrInvalidDate},
		{"minute out of range", "12:61 msg", ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseAbsolute(tt.input, parseNow)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseAbsolute(%q): want %v, got %v", tt.input, tt.wantErr, err)
			}
		})
	}
}
