package bot

import (
	"fmt"
	"strings"

	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// https://twin.sh/articles/35/how-to-add-colors-to-your-console-terminal-output-in-go
var (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	green = "\033[32m"
	cyan  = "\033[36m"
)

func printUser(user *gotgbot.User) string {
	var sb strings.Builder
	sb.WriteString(
		fmt.Sprintf(
			"%s%s%s",
			bold,
			red,
			user.FirstName,
		),
	)

	if user.LastName != "" {
		sb.WriteString(" ")
		sb.WriteString(user.LastName)
	}

	sb.WriteString(reset)

	if user.Username != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s(@%s)%s",
				red,
				user.Username,
				reset,
			),
		)
	}

	return sb.String()
}

// PrintMessage echoes an incoming message to the console, for running the
// bot in a terminal with PRINT_MSGS set.
func PrintMessage(c *ext.Context) {
	msg := c.EffectiveMessage
	if msg == nil {
		return
	}

	var sb strings.Builder

	var msgTime string
	if msg.EditDate != 0 {
		msgTime = utils.TimestampToTime(msg.EditDate).Format("15:04:05")
	} else {
		msgTime = utils.TimestampToTime(msg.Date).Format("15:04:05")
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s[%v]",
			cyan,
			msgTime,
		),
	)

	if msg.Chat.Title != "" {
		sb.WriteString(
			fmt.Sprintf(
				" %s:",
				msg.Chat.Title,
			),
		)
	}

	sb.WriteString(reset)

	if msg.From != nil {
		sb.WriteString(
			fmt.Sprintf(
				" %s",
				printUser(msg.From),
			),
		)
	}

	sb.WriteString(
		fmt.Sprintf(
			"%s >>> %s",
			cyan,
			reset,
		),
	)

	if msg.EditDate != 0 {
		sb.WriteString(
			fmt.Sprintf(
				"%s(editiert) %s",
				green,
				reset,
			),
		)
	}

	if msg.Text != "" {
		sb.WriteString(msg.Text)
	} else if msg.Caption != "" {
		sb.WriteString(msg.Caption)
	}

	fmt.Println(sb.String())
}
