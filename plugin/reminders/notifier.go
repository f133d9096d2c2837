package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/model"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/Brawl345/ladderbot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

type telegramNotifier struct {
	bot *gotgbot.Bot
}

// NewNotifier delivers fired reminders to the chat they were created in.
func NewNotifier(bot *gotgbot.Bot) *telegramNotifier {
	return &telegramNotifier{bot: bot}
}

func (n *telegramNotifier) Notify(reminder model.Reminder) error {
	var sb strings.Builder
	sb.WriteString(
		fmt.Sprintf("🔔 %s, du wolltest an Folgendes erinnert werden:\n%s",
			tgUtils.Mention(reminder.UserID, utils.Escape(reminder.Username)),
			utils.Escape(reminder.Text),
		),
	)

	if reminder.MessageID != 0 {
		if link := tgUtils.MessageLink(reminder.ChatID, reminder.MessageID); link != "" {
			sb.WriteString(
				fmt.Sprintf("\n<a href=\"%s\">Zur ursprünglichen Nachricht</a>", link),
			)
		}
	}

	_, err := n.bot.SendMessage(reminder.ChatID, sb.String(), &gotgbot.SendMessageOpts{
		MessageThreadId: reminder.ThreadID,
		ParseMode:       gotgbot.ParseModeHTML,
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: true,
		},
		// A hung delivery must not stall the tick loop.
		RequestOpts: &gotgbot.RequestOpts{
			Timeout: 10 * time.Second,
		},
	})
	return err
}
