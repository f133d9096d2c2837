package ladder

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("ladder")

// Queries per message are capped to keep the bot from hammering the API.
const maxQueries = 5

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (*Plugin) Name() string {
	return "ladder"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "mmr",
			Description: "<Name> - Spieler in der SC2-Rangliste suchen",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/mmr(?:@%s)? (?P<query>.+)$`, botInfo.Username)),
			HandlerFunc: p.OnMmr,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/mmr(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.OnMmrUsage,
		},
	}
}

func (p *Plugin) OnMmrUsage(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	_, err := c.EffectiveMessage.Reply(b,
		"<b>Benutzung:</b> <code>/mmr Name</code> oder <code>/mmr Name1 Name2 Name3</code>",
		utils.DefaultSendOptions())
	return err
}

func (p *Plugin) OnMmr(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	queries := strings.Fields(c.NamedMatches["query"])
	if len(queries) > maxQueries {
		_, err := c.EffectiveMessage.Reply(b,
			fmt.Sprintf("❌ Maximal %d Namen pro Nachricht.", maxQueries),
			utils.DefaultSendOptions())
		return err
	}

	now := time.Now().UTC()
	var sb strings.Builder

	for _, query := range queries {
		players, err := searchPlayers(query)
		if err != nil {
			guid := xid.New().String()
			log.Err(err).
				Str("guid", guid).
				Str("query", query).
				Msg("Failed to search players")
			sb.WriteString(fmt.Sprintf("❌ Fehler bei der Suche nach <code>%s</code>.%s\n", utils.Escape(query), utils.EmbedGUID(guid)))
			continue
		}

		if len(players) == 0 {
			sb.WriteString(fmt.Sprintf("Kein Spieler mit dem Namen <code>%s</code> gefunden.\n", utils.Escape(query)))
			continue
		}

		sb.WriteString(formatPlayers(query, players, now))
	}

	_, err := c.EffectiveMessage.Reply(b, sb.String(), utils.DefaultSendOptions())
	return err
}

func formatPlayers(query string, players []Player, now time.Time) string {
	var sb strings.Builder

	searchLink := fmt.Sprintf("%s?q=%s", searchUrl, url.QueryEscape(query))
	sb.WriteString(
		fmt.Sprintf("<a href=\"%s\">%d Ergebnisse für %s</a> (LP: zuletzt gespielt, LS: zuletzt gestreamt)\n",
			searchLink,
			len(players),
			utils.Escape(query),
		),
	)

	sb.WriteString("<pre>")
	sb.WriteString(fmt.Sprintf("%-8s %5s %9s %4s %4s %s\n", "S-R-L", "MMR", "W/L", "LP", "LS", "Name"))
	for _, player := range players {
		sb.WriteString(utils.Escape(formatPlayerRow(&player, now)))
		sb.WriteString("\n")
	}
	sb.WriteString("</pre>\n")

	return sb.String()
}

func formatPlayerRow(player *Player, now time.Time) string {
	return fmt.Sprintf("%-8s %5d %9s %4s %4s %s",
		fmt.Sprintf("%s %s %s", strings.ToUpper(player.Server), strings.ToUpper(player.Race), player.LeagueShort()),
		player.Mmr,
		fmt.Sprintf("%d-%d", player.Wins, player.Losses),
		player.LastPlayedAgo(now),
		player.LastStreamedAgo(now),
		player.FullDisplayName(),
	)
}
