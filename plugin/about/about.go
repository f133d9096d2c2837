package about

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

var log = logger.New("about")

type Plugin struct {
	text string
}

func New() *Plugin {
	var sb strings.Builder
	sb.WriteString("<b>Ladderbot</b>")

	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Err(err).Msg("Failed to read build info")
		return &Plugin{text: sb.String()}
	}

	if versionInfo.Revision != "" {
		sb.WriteString(fmt.Sprintf("\n<code>%s</code>", versionInfo.Revision))
		if versionInfo.DirtyBuild {
			sb.WriteString(" (dirty)")
		}
		if !versionInfo.LastCommit.IsZero() {
			sb.WriteString(fmt.Sprintf("\n<i>Committed on %s</i>", versionInfo.LastCommit.Format("02.01.2006, 15:04:05 Uhr")))
		}
	}

	sb.WriteString(fmt.Sprintf("\nGebaut mit %s (%s/%s)", versionInfo.GoVersion, versionInfo.GoOS, versionInfo.GoArch))

	return &Plugin{text: sb.String()}
}

func (*Plugin) Name() string {
	return "about"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "about",
			Description: "Informationen über den Bot",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/(?:about|start)(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.OnAbout,
		},
	}
}

func (p *Plugin) OnAbout(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	_, err := c.EffectiveMessage.Reply(b, p.text, utils.DefaultSendOptions())
	return err
}
