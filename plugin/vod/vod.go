package vod

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
	"github.com/sosodev/duration"
)

var log = logger.New("vod")

const maxQueries = 5

type Plugin struct {
	clientID string
}

func New(clientID string) *Plugin {
	return &Plugin{
		clientID: clientID,
	}
}

func (*Plugin) Name() string {
	return "vod"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "vod",
			Description: "<Name> - Livestream mit VOD-Zeitstempel suchen",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/vod(?:@%s)? (?P<query>.+)$`, botInfo.Username)),
			HandlerFunc: p.OnVod,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/vod(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.OnVodUsage,
		},
	}
}

func (p *Plugin) OnVodUsage(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	_, err := c.EffectiveMessage.Reply(b,
		"<b>Benutzung:</b> <code>/vod Name</code> oder <code>/vod Name1 Name2 Name3</code>",
		utils.DefaultSendOptions())
	return err
}

func (p *Plugin) OnVod(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	queries := strings.Fields(c.NamedMatches["query"])
	if len(queries) > maxQueries {
		_, err := c.EffectiveMessage.Reply(b,
			fmt.Sprintf("❌ Maximal %d Namen pro Nachricht.", maxQueries),
			utils.DefaultSendOptions())
		return err
	}

	streams, err := fetchStreams(p.clientID)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Msg("Failed to fetch streams")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	now := time.Now().UTC()
	var sb strings.Builder

	for _, query := range queries {
		matches := matchStreams(query, streams)

		if len(matches) == 0 {
			sb.WriteString(fmt.Sprintf("Kein Livestream für <code>%s</code> gefunden.\n", utils.Escape(query)))
			continue
		}

		if len(matches) > 1 {
			sb.WriteString(fmt.Sprintf("Zu viele (%d) Streams für <code>%s</code> gefunden.\n", len(matches), utils.Escape(query)))
			continue
		}

		sb.WriteString(p.formatStream(&matches[0], now))
	}

	_, err = c.EffectiveMessage.Reply(b, sb.String(), utils.DefaultSendOptions())
	return err
}

func (p *Plugin) formatStream(stream *Stream, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(
		fmt.Sprintf("<b><a href=\"%s\">%s</a></b>\n",
			stream.Channel.Url,
			utils.Escape(stream.Channel.DisplayName),
		),
	)

	streamUptime, err := uptime(stream.CreatedAt, now)
	if err != nil {
		log.Err(err).
			Str("created_at", stream.CreatedAt).
			Str("channel", stream.Channel.Name).
			Msg("Failed to parse stream start time")
	} else {
		sb.WriteString(fmt.Sprintf("🕒 Uptime: %s\n", utils.HumanizeDuration(duration.FromTimeDuration(streamUptime.Round(time.Second)))))
	}

	sb.WriteString(fmt.Sprintf("👥 Zuschauer: %d\n", stream.Viewers))

	vodLink, err := latestVodLink(p.clientID, stream.Channel.Name, streamUptime)
	if err != nil {
		log.Err(err).
			Str("channel", stream.Channel.Name).
			Msg("Failed to fetch latest VOD")
		vodLink = ""
	}

	if vodLink == "" {
		sb.WriteString("Keine Aufzeichnungen verfügbar.\n")
	} else {
		sb.WriteString(fmt.Sprintf("📼 <a href=\"%s\">VOD mit aktuellem Zeitstempel</a>\n", vodLink))
	}

	return sb.String()
}
