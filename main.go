package main

import (
	"os"
	"strconv"
	"time"

	"github.com/Brawl345/ladderbot/bot"
	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/model/file"
	"github.com/Brawl345/ladderbot/model/sql"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/plugin/about"
	"github.com/Brawl345/ladderbot/plugin/allow"
	"github.com/Brawl345/ladderbot/plugin/ladder"
	"github.com/Brawl345/ladderbot/plugin/manager"
	"github.com/Brawl345/ladderbot/plugin/reminders"
	"github.com/Brawl345/ladderbot/plugin/stats"
	"github.com/Brawl345/ladderbot/plugin/vod"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	_ "github.com/joho/godotenv/autoload"
)

const defaultReminderFile = "data/reminders.json"

var log = logger.New("main")

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Err(err).Msg("Failed to read version info")
	} else {
		log.Info().Msgf("Ladderbot-%s, %v", versionInfo.Revision, versionInfo.LastCommit)
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal().Msg("BOT_TOKEN is not set")
	}

	db, err := sql.New()
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().Msg("Database connection established")

	b, err := gotgbot.NewBot(token, &gotgbot.BotOpts{})
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	log.Info().Msgf("Logged in as @%s (%d)", b.User.Username, b.User.Id)

	userService := sql.NewUserService(db)
	chatService := sql.NewChatService(db)
	chatsUsersService := sql.NewChatsUsersService(db, chatService, userService)
	pluginService := sql.NewPluginService(db)
	chatsPluginsService := sql.NewChatsPluginsService(db, chatService, pluginService)

	allowService, err := sql.NewAllowService(chatService, userService)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	managerService, err := bot.NewManagerService(chatsPluginsService, pluginService)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	reminderFile := os.Getenv("REMINDER_FILE")
	if reminderFile == "" {
		reminderFile = defaultReminderFile
	}

	reminderLimit := utils.DefaultReminderLimit
	if fromEnv, err := strconv.Atoi(os.Getenv("REMINDER_LIMIT")); err == nil && fromEnv > 0 {
		reminderLimit = fromEnv
	}

	reminderService, err := file.NewReminderService(reminderFile, reminderLimit, reminders.NewNotifier(b))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load reminders")
	}

	plugins := []plugin.Plugin{
		about.New(),
		allow.New(allowService),
		ladder.New(),
		manager.New(managerService),
		reminders.New(reminderService),
		stats.New(chatsUsersService),
		vod.New(os.Getenv("TWITCH_CLIENT_ID")),
	}

	for i, plg := range plugins {
		log.Info().Msgf("Registering plugin (%d/%d): %s", i+1, len(plugins), plg.Name())
	}
	managerService.SetPlugins(plugins)

	var commands []gotgbot.BotCommand
	for _, plg := range plugins {
		commands = append(commands, plg.Commands()...)
	}
	if _, err := b.SetMyCommands(commands, nil); err != nil {
		log.Err(err).Msg("Failed to set bot commands")
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Processor:   bot.NewProcessor(allowService, chatsUsersService, managerService, userService),
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	err = updater.StartPolling(b, &ext.PollingOpts{
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			AllowedUpdates: []string{"message", "edited_message"},
			Timeout:        10,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 11 * time.Second,
			},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start polling")
	}

	reminderService.Start()
	defer reminderService.Stop()

	log.Info().Msg("Bot started")

	updater.Idle()
}
