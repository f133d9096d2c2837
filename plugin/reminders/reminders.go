package reminders

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/model"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/xid"
	"github.com/sosodev/duration"
)

var log = logger.New("reminders")

const remindInUsage = `<b>Benutzung:</b> <code>/remind_in &lt;Zeit&gt; &lt;Text&gt;</code>
Beispiele:
<code>/remind_in 5d 3h 2m 1s Erinnere mich daran</code>
<code>/remind_in 1day 1hour 1min 1second Erinnere mich daran</code>
<code>/remind_in 30m Pizza aus dem Ofen holen</code>`

const remindAtUsage = `<b>Benutzung:</b> <code>/remind_at [Datum] [Uhrzeit] &lt;Text&gt;</code> (UTC)
Beispiele:
<code>/remind_at 2021-04-20 04:20:00 Erinnere mich daran</code>
<code>/remind_at 04-20 04:20 Erinnere mich daran</code>
<code>/remind_at 2021-04-20 Erinnere mich daran</code>
<code>/remind_at 04:20 Erinnere mich daran</code>`

type Plugin struct {
	reminderService model.ReminderService
}

func New(reminderService model.ReminderService) *Plugin {
	return &Plugin{
		reminderService: reminderService,
	}
}

func (p *Plugin) Name() string {
	return "reminders"
}

func (p *Plugin) Commands() []gotgbot.BotCommand {
	return []gotgbot.BotCommand{
		{
			Command:     "remind_in",
			Description: "<Dauer> <Text> - Erinnerung in relativer Zeit speichern",
		},
		{
			Command:     "remind_at",
			Description: "<Datum/Uhrzeit> <Text> - Erinnerung zu festem Zeitpunkt speichern",
		},
		{
			Command:     "reminders",
			Description: "Alle Erinnerungen anzeigen",
		},
		{
			Command:     "remind_delete",
			Description: "<Nummer> - Erinnerung löschen",
		},
	}
}

func (p *Plugin) Handlers(botInfo *gotgbot.User) []plugin.Handler {
	return []plugin.Handler{
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?is)^/remind_in(?:@%s)? (?P<args>.+)$`, botInfo.Username)),
			HandlerFunc: p.onRemindIn,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/remind_in(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onRemindInUsage,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?is)^/remind_at(?:@%s)? (?P<args>.+)$`, botInfo.Username)),
			HandlerFunc: p.onRemindAt,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/remind_at(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onRemindAtUsage,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/reminders(?:@%s)?$`, botInfo.Username)),
			HandlerFunc: p.onListReminders,
		},
		&plugin.CommandHandler{
			Trigger:     regexp.MustCompile(fmt.Sprintf(`(?i)^/remind_delete(?:@%s)?(?: (?P<ordinal>\d+))?$`, botInfo.Username)),
			HandlerFunc: p.onDeleteReminder,
		},
	}
}

func (p *Plugin) onRemindIn(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	remindTime, text, err := parseRelative(c.NamedMatches["args"], time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrAmountTooLarge) {
			_, err := c.EffectiveMessage.Reply(b, "❌ Die Zeitangabe ist zu groß.", utils.DefaultSendOptions())
			return err
		}
		_, err := c.EffectiveMessage.Reply(b, remindInUsage, utils.DefaultSendOptions())
		return err
	}

	return p.addReminder(b, c, remindTime, text)
}

func (p *Plugin) onRemindInUsage(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	_, err := c.EffectiveMessage.Reply(b, remindInUsage, utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onRemindAt(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	remindTime, text, err := parseAbsolute(c.NamedMatches["args"], time.Now().UTC())
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			_, err := c.EffectiveMessage.Reply(b, "❌ Bitte gib ein gültiges Datum bzw. eine gültige Uhrzeit an.", utils.DefaultSendOptions())
			return err
		}
		_, err := c.EffectiveMessage.Reply(b, remindAtUsage, utils.DefaultSendOptions())
		return err
	}

	return p.addReminder(b, c, remindTime, text)
}

func (p *Plugin) onRemindAtUsage(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	_, err := c.EffectiveMessage.Reply(b, remindAtUsage, utils.DefaultSendOptions())
	return err
}

func (p *Plugin) addReminder(b *gotgbot.Bot, c plugin.LadderbotContext, remindTime time.Time, text string) error {
	msg := c.EffectiveMessage

	var threadID int64
	if msg.IsTopicMessage {
		threadID = msg.MessageThreadId
	}

	err := p.reminderService.AddReminder(model.Reminder{
		Time:      remindTime,
		UserID:    c.EffectiveUser.Id,
		Username:  utils.FullName(c.EffectiveUser.FirstName, c.EffectiveUser.LastName),
		ChatID:    c.EffectiveChat.Id,
		ThreadID:  threadID,
		MessageID: msg.MessageId,
		Text:      text,
	})

	if err != nil {
		var limitErr *model.ReminderLimitError
		if errors.As(err, &limitErr) {
			_, err := msg.Reply(b,
				fmt.Sprintf("❌ Du hast bereits %d von %d Erinnerungen gespeichert.", limitErr.Count, limitErr.Limit),
				utils.DefaultSendOptions())
			return err
		}

		if errors.Is(err, model.ErrReminderInPast) {
			_, err := msg.Reply(b, "❌ Der Zeitpunkt liegt in der Vergangenheit.", utils.DefaultSendOptions())
			return err
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("user_id", c.EffectiveUser.Id).
			Msg("Failed to save reminder")
		_, err = msg.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = msg.Reply(b,
		fmt.Sprintf("🔔 Ich erinnere dich in <b>%s</b> an: %s",
			humanizeUntil(remindTime),
			utils.Escape(text),
		),
		utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onListReminders(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	reminders := p.reminderService.RemindersOfUser(c.EffectiveUser.Id)
	if len(reminders) == 0 {
		_, err := c.EffectiveMessage.Reply(b, "Du hast keine Erinnerungen gespeichert.", utils.DefaultSendOptions())
		return err
	}

	var sb strings.Builder
	sb.WriteString("<b>Deine Erinnerungen:</b>\n")
	for i, reminder := range reminders {
		sb.WriteString(
			fmt.Sprintf("<b>%d)</b> %s (in %s): %s\n",
				i+1,
				reminder.Time.Format("02.01.2006, 15:04:05 Uhr UTC"),
				humanizeUntil(reminder.Time),
				utils.Escape(reminder.Text),
			),
		)
	}

	_, err := c.EffectiveMessage.Reply(b, sb.String(), utils.DefaultSendOptions())
	return err
}

func (p *Plugin) onDeleteReminder(b *gotgbot.Bot, c plugin.LadderbotContext) error {
	ordinalStr := c.NamedMatches["ordinal"]
	if ordinalStr == "" {
		_, err := c.EffectiveMessage.Reply(b, "<b>Benutzung:</b> <code>/remind_delete 2</code>", utils.DefaultSendOptions())
		return err
	}

	ordinal, err := strconv.Atoi(ordinalStr)
	if err != nil {
		_, err := c.EffectiveMessage.Reply(b, "❌ Bitte gib eine gültige Nummer an.", utils.DefaultSendOptions())
		return err
	}

	removed, err := p.reminderService.DeleteReminderOfUser(c.EffectiveUser.Id, ordinal)
	if err != nil {
		var ordinalErr *model.OrdinalError
		if errors.As(err, &ordinalErr) {
			if ordinalErr.Count == 0 {
				_, err := c.EffectiveMessage.Reply(b, "❌ Du hast keine Erinnerungen gespeichert.", utils.DefaultSendOptions())
				return err
			}
			_, err := c.EffectiveMessage.Reply(b,
				fmt.Sprintf("❌ Ungültige Nummer, du hast %d Erinnerungen. Wähle eine Zahl zwischen 1 und %d.",
					ordinalErr.Count, ordinalErr.Count),
				utils.DefaultSendOptions())
			return err
		}

		guid := xid.New().String()
		log.Err(err).
			Str("guid", guid).
			Int64("user_id", c.EffectiveUser.Id).
			Msg("Failed to delete reminder")
		_, err = c.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
		return err
	}

	_, err = c.EffectiveMessage.Reply(b,
		fmt.Sprintf("✅ Erinnerung gelöscht: %s", utils.Escape(removed.Text)),
		utils.DefaultSendOptions())
	return err
}

func humanizeUntil(t time.Time) string {
	humanized := utils.HumanizeDuration(duration.FromTimeDuration(time.Until(t).Round(time.Second)))
	if humanized == "" {
		return "0s"
	}
	return humanized
}
