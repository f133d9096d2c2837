package vod

import (
	"testing"
	"time"
)

func TestUptime(t *testing.T) {
	now := time.Date(2019, 1, 5, 15, 17, 30, 0, time.UTC)

	got, err := uptime("2019-01-05T13:17:30Z", now)
	if err != nil {
		t.Fatalf("uptime: %v", err)
	}
	if got != 2*time.Hour {
		t.Errorf("want 2h, got %v", got)
	}

	if _, err := uptime("not a timestamp", now); err == nil {
		t.Error("expected error for malformed timestamp")
	}

	// Clock skew must not produce a negative uptime.
	got, err = uptime("2019-01-05T16:00:00Z", now)
	if err != nil {
		t.Fatalf("uptime: %v", err)
	}
	if got != 0 {
		t.Errorf("want 0 for future start time, got %v", got)
	}
}

func TestMatchStreams(t *testing.T) {
	streams := []Stream{
		{Channel: Channel{DisplayName: "Rotterdam08"}},
		{Channel: Channel{DisplayName: "BurnySc2"}},
		{Channel: Channel{DisplayName: "burny_banana"}},
	}

	if got := matchStreams("rott", streams); len(got) != 1 || got[0].Channel.DisplayName != "Rotterdam08" {
		t.Errorf("rott: unexpected matches %v", got)
	}

	if got := matchStreams("burny", streams); len(got) != 2 {
		t.Errorf("burny: want 2 matches, got %d", len(got))
	}

	if got := matchStreams("nobody", streams); len(got) != 0 {
		t.Errorf("nobody: want no matches, got %d", len(got))
	}
}
