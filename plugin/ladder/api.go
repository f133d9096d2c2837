package ladder

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/utils/httpUtils"
)

const (
	apiUrl    = "http://sc2unmasked.com/API/Player"
	searchUrl = "http://sc2unmasked.com/Search"

	maxResults = 15
)

type (
	Response struct {
		Players []Player `json:"players"`
	}

	Player struct {
		ClanTag     string `json:"clan_tag"`
		AccountName string `json:"acc_name"`
		DisplayName string `json:"display_name"`
		Server      string `json:"server"`
		Race        string `json:"race"`
		League      string `json:"league"`
		Rank        int    `json:"rank"`
		Tier        int    `json:"tier"`
		Mmr         int    `json:"mmr"`
		Wins        int    `json:"wins"`
		Losses      int    `json:"losses"`
		StreamName  string `json:"stream_name"`
		LastPlayed  string `json:"last_played"`
		LastOnline  string `json:"last_online"`
	}
)

var leagueLetters = map[string]string{
	"grandmaster": "G",
	"master":      "M",
	"diamond":     "D",
	"platinum":    "P",
	"gold":        "G",
	"silver":      "S",
	"bronze":      "B",
}

func searchPlayers(query string) ([]Player, error) {
	requestUrl, err := url.Parse(apiUrl)
	if err != nil {
		return nil, err
	}

	q := requestUrl.Query()
	q.Set("q", query)
	q.Set("results", strconv.Itoa(maxResults))
	requestUrl.RawQuery = q.Encode()

	var response Response
	err = httpUtils.MakeRequest(httpUtils.RequestOptions{
		URL:      requestUrl.String(),
		Response: &response,
	})
	if err != nil {
		return nil, err
	}

	return response.Players, nil
}

// parseDotNetDate parses the "/Date(1610000000000)/" millisecond timestamps
// the API returns. Negative timestamps are treated as absent.
func parseDotNetDate(s string) (time.Time, bool) {
	s = strings.TrimPrefix(s, "/Date(")
	s = strings.TrimSuffix(s, ")/")

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}, false
	}

	return time.UnixMilli(ms).UTC(), true
}

// LeagueShort compresses league and rank into a short column value like "M1".
// Grandmasters show their ladder rank, everyone else their tier.
func (p *Player) LeagueShort() string {
	rankOrTier := p.Tier
	if p.League == "grandmaster" {
		rankOrTier = p.Rank
	}
	return fmt.Sprintf("%s%d", leagueLetters[p.League], rankOrTier)
}

func (p *Player) FullDisplayName() string {
	var sb strings.Builder
	if p.ClanTag != "" {
		sb.WriteString(fmt.Sprintf("[%s]", p.ClanTag))
	}
	sb.WriteString(p.AccountName)
	if p.DisplayName != "" && p.DisplayName != p.AccountName {
		sb.WriteString(fmt.Sprintf(" (%s)", p.DisplayName))
	}

	name := sb.String()
	if len(name) > 18 {
		name = name[:18]
	}
	return name
}

// LastPlayedAgo is the age of the player's last ranked game, like "10d" or "5h".
func (p *Player) LastPlayedAgo(now time.Time) string {
	return ago(p.LastPlayed, now)
}

// LastStreamedAgo is the age of the player's last stream, like "10d" or "5h".
func (p *Player) LastStreamedAgo(now time.Time) string {
	return ago(p.LastOnline, now)
}

func ago(dotNetDate string, now time.Time) string {
	if dotNetDate == "" {
		return ""
	}

	t, ok := parseDotNetDate(dotNetDate)
	if !ok {
		return ""
	}

	// The API timestamps are shifted by six hours from UTC.
	// TODO: verify against the upstream timezone instead of hardcoding the offset
	t = t.Add(-6 * time.Hour)

	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	hours := int(diff.Hours())
	if hours >= 100 {
		return fmt.Sprintf("%dd", hours/24)
	}
	return fmt.Sprintf("%dh", hours)
}
