package ladder

import (
	"testing"
	"time"
)

func TestParseDotNetDate(t *testing.T) {
	got, ok := parseDotNetDate("/Date(1610000000000)/")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	want := time.UnixMilli(1610000000000).UTC()
	if !got.Equal(want) {
		t.Errorf("want %v, got %v", want, got)
	}

	for _, invalid := range []string{"", "/Date()/", "/Date(-1000)/", "garbage"} {
		if _, ok := parseDotNetDate(invalid); ok {
			t.Errorf("expected %q not to parse", invalid)
		}
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2021, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"empty", "", ""},
		{"negative timestamp", "/Date(-62135596800000)/", ""},
		// 2021-01-10 06:00 UTC, minus the 6h offset = 00:00, 12 hours ago
		{"hours", "/Date(1610258400000)/", "12h"},
		// 2020-12-31 06:00 UTC, minus the 6h offset = 252 hours ago
		{"days above 100 hours", "/Date(1609394400000)/", "10d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ago(tt.date, now); got != tt.want {
				t.Errorf("ago(%q): want %q, got %q", tt.date, tt.want, got)
			}
		})
	}
}

func TestLeagueShort(t *testing.T) {
	gm := Player{League: "grandmaster", Rank: 12, Tier: 1}
	if got := gm.LeagueShort(); got != "G12" {
		t.Errorf("grandmaster: want G12, got %s", got)
	}

	master := Player{League: "master", Rank: 12, Tier: 2}
	if got := master.LeagueShort(); got != "M2" {
		t.Errorf("master: want M2, got %s", got)
	}
}

func TestFullDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   string
	}{
		{
			name:   "clan and differing display name",
			player: Player{ClanTag: "zelos", AccountName: "Burny", DisplayName: "BurnySc2"},
			want:   "[zelos]Burny (Burn",
		},
		{
			name:   "display name equals account name",
			player: Player{AccountName: "Burny", DisplayName: "Burny"},
			want:   "Burny",
		},
		{
			name:   "no clan",
			player: Player{AccountName: "Rotterdam"},
			want:   "Rotterdam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.FullDisplayName(); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
