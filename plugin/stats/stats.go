package stats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/model"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
)

var log = logger.New("stats")

type Plugin struct {
	chatsUsersService model.ChatsUsersService
}

func New(chatsUsersService model.ChatsUsersService) *Plugin {
	return &Plugin{
		chatsUsersService: chatsUsersService,
	}
}

func (*Plugin) Name() string {
	return "stats"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return nil
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/stats(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.OnStats,
			GroupOnly:   true,
		},
	}
}

func (p *Plugin) OnStats(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	users, err := p.chatsUsersService.GetAllUsersWithMsgCount(c.EffectiveChat)
	if err != nil {
		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("chat_id", c.EffectiveChat.Id).
			Msg("Failed to get chat stats")
		_, err := c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Fehler beim Abrufen der Statistiken.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	if len(users) == 0 {
		_, err := c.EffectiveMessage.Reply(b, "<i>Es wurden noch keine Statistiken erstellt.</i>", utils.DefaultSendOptions())
		return err
	}

	var sb strings.Builder
	totalCount := int64(0)

	for _, user := range users {
		totalCount += user.MsgCount
		sb.WriteString(
			fmt.Sprintf("<b>%s:</b> %s\n",
				utils.Escape(user.GetFullName()),
				utils.FormatThousand(user.MsgCount),
			),
		)
	}

	sb.WriteString("==============\n")
	sb.WriteString(fmt.Sprintf("<b>TOTAL:</b> %s", utils.FormatThousand(totalCount)))

	_, err = c.EffectiveMessage.Reply(b, sb.String(), utils.DefaultSendOptions())
	return err
}
