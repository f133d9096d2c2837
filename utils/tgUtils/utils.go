package tgUtils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
)

func AnyText(message *gotgbot.Message) string {
	text := message.Text
	if message.Text == "" {
		text = message.Caption
	}
	return text
}

func IsAdmin(user *gotgbot.User) bool {
	adminId, _ := strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64)
	return adminId == user.Id
}

func FromGroup(message gotgbot.MaybeInaccessibleMessage) bool {
	return message.GetChat().Type == gotgbot.ChatTypeGroup || message.GetChat().Type == gotgbot.ChatTypeSupergroup
}

func IsPrivate(message *gotgbot.Message) bool {
	return message.Chat.Type == gotgbot.ChatTypePrivate
}

func IsReply(message *gotgbot.Message) bool {
	return message.ReplyToMessage != nil
}

func Mention(userID int64, name string) string {
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, name)
}

// MessageLink builds a t.me deep link to a message in a supergroup or channel.
// Private chats and basic groups have no public message links; it returns ""
// for those.
func MessageLink(chatID, messageID int64) string {
	const supergroupPrefix = "-100"

	id := strconv.FormatInt(chatID, 10)
	if !strings.HasPrefix(id, supergroupPrefix) {
		return ""
	}

	return fmt.Sprintf("https://t.me/c/%s/%d", strings.TrimPrefix(id, supergroupPrefix), messageID)
}

type ReactionFallbackOpts struct {
	Fallback        string
	SendMessageOpts *gotgbot.SendMessageOpts
}

// AddRectionWithFallback adds a reaction to a message. If reactions are disabled, a Fallback message is sent instead
func AddRectionWithFallback(b *gotgbot.Bot, message *gotgbot.Message, emoji string, opts *ReactionFallbackOpts) error {
	_, err := message.SetReaction(b, &gotgbot.SetMessageReactionOpts{
		Reaction: []gotgbot.ReactionType{
			gotgbot.ReactionTypeEmoji{
				Emoji: emoji,
			},
		},
	})

	var telegramErr *gotgbot.TelegramError
	if err != nil && errors.As(err, &telegramErr) && telegramErr.Description == ErrReactionInvalid {
		fallback := opts.Fallback
		if fallback == "" {
			fallback = emoji
		}

		sendMessageOpts := opts.SendMessageOpts
		if sendMessageOpts == nil {
			sendMessageOpts = utils.DefaultSendOptions()
		}

		_, err = message.Reply(b, fallback, sendMessageOpts)
	}

	return err
}
