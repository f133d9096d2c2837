package bot

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/model"
	"github.com/Brawl345/ladderbot/plugin"
	"github.com/Brawl345/ladderbot/utils"
	"github.com/Brawl345/ladderbot/utils/tgUtils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/rs/xid"
)

var log = logger.New("bot")

type Processor struct {
	allowService      model.AllowService
	chatsUsersService model.ChatsUsersService
	managerService    model.ManagerService
	userService       model.UserService
	printMessages     bool
}

func NewProcessor(allowService model.AllowService, chatsUsersService model.ChatsUsersService, managerService model.ManagerService, userService model.UserService) *Processor {
	return &Processor{
		allowService:      allowService,
		chatsUsersService: chatsUsersService,
		managerService:    managerService,
		userService:       userService,
		printMessages:     os.Getenv("PRINT_MSGS") != "",
	}
}

func (p *Processor) ProcessUpdate(d *ext.Dispatcher, b *gotgbot.Bot, ctx *ext.Context) error {
	if ctx.Message != nil {

		if ctx.Message.LeftChatMember != nil {
			return p.onUserLeft(ctx)
		}

		if ctx.Message.NewChatMembers != nil {
			return p.onUserJoined(ctx)
		}

		return p.onMessage(b, ctx)
	}

	if ctx.EditedMessage != nil {
		return p.onMessage(b, ctx)
	}

	return nil
}

func (p *Processor) onMessage(b *gotgbot.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	isEdited := msg.EditDate != 0

	if p.printMessages {
		PrintMessage(ctx)
	}

	isAllowed := p.allowService.IsUserAllowed(ctx.EffectiveUser)
	if tgUtils.FromGroup(msg) && !isAllowed {
		isAllowed = p.allowService.IsChatAllowed(ctx.EffectiveChat)
	}

	if !isAllowed {
		log.Debug().Int64("chat_id", ctx.EffectiveChat.Id).Msg("User/Chat is not allowed")
		return nil
	}

	var err error

	if !isEdited {
		if tgUtils.IsPrivate(msg) {
			err = p.userService.Create(ctx.EffectiveUser)
		} else {
			err = p.chatsUsersService.Create(ctx.EffectiveChat, ctx.EffectiveUser)
		}
		if err != nil {
			return err
		}
	}

	text := msg.Caption
	if text == "" {
		text = msg.Text
	}

	for _, plg := range p.managerService.Plugins() {
		plg := plg
		for _, h := range plg.Handlers(&b.User) {
			h := h

			handler, ok := h.(*plugin.CommandHandler)
			if !ok {
				continue
			}

			if isEdited && !handler.HandleEdits {
				continue
			}

			if !tgUtils.FromGroup(msg) && handler.GroupOnly {
				continue
			}

			var matched bool
			var matches []string
			namedMatches := make(map[string]string)

			switch command := handler.Command().(type) {
			case *regexp.Regexp:
				matches = command.FindStringSubmatch(text)
				matched = len(matches) > 0
				if matched {
					for i, name := range matches {
						namedMatches[command.SubexpNames()[i]] = name
					}
				}
			default:
				panic("Unsupported handler type!!")
			}

			if matched {
				log.Printf("Matched plugin '%s': %s (%T)", plg.Name(), handler.Trigger, handler.Trigger)

				// Superuser commands stay reachable even while their plugin is
				// disabled, otherwise a fresh install could never enable anything.
				if !p.managerService.IsPluginEnabled(plg.Name()) && !handler.AdminOnly {
					log.Printf("Plugin %s is disabled globally", plg.Name())
					continue
				}

				if tgUtils.FromGroup(msg) && p.managerService.IsPluginDisabledForChat(ctx.EffectiveChat, plg.Name()) {
					log.Printf("Plugin %s is disabled for this chat", plg.Name())
					continue
				}

				if handler.AdminOnly && !tgUtils.IsAdmin(ctx.EffectiveUser) {
					log.Print("User is not an admin.")
					continue
				}

				go func() {
					defer func() {
						if r := recover(); r != nil {
							guid := xid.New().String()
							log.Err(errors.New("panic")).
								Str("guid", guid).
								Int64("chat_id", ctx.EffectiveChat.Id).
								Int64("user_id", ctx.EffectiveUser.Id).
								Str("text", ctx.EffectiveMessage.Text).
								Str("component", plg.Name()).
								Msgf("%s", r)
							_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
						}
					}()
					err := handler.Run(b, plugin.LadderbotContext{
						Context:      ctx,
						Matches:      matches,
						NamedMatches: namedMatches,
					})
					if err != nil {
						guid := xid.New().String()
						log.Err(err).
							Str("guid", guid).
							Int64("chat_id", ctx.EffectiveChat.Id).
							Int64("user_id", ctx.EffectiveUser.Id).
							Str("text", ctx.EffectiveMessage.Text).
							Str("component", plg.Name()).
							Send()
						_, _ = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("❌ Es ist ein Fehler aufgetreten.%s", utils.EmbedGUID(guid)), utils.DefaultSendOptions())
					}
				}()

			}

		}
	}

	return nil
}

func (p *Processor) onUserJoined(ctx *ext.Context) error {
	return p.chatsUsersService.CreateBatch(ctx.EffectiveChat, &ctx.Message.NewChatMembers)
}

func (p *Processor) onUserLeft(ctx *ext.Context) error {
	if ctx.Message.LeftChatMember.IsBot {
		return nil
	}
	return p.chatsUsersService.Leave(ctx.EffectiveChat, ctx.Message.LeftChatMember)
}
