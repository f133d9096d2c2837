package model

import "github.com/PaulSonOfLars/gotgbot/v2"

type AllowService interface {
	IsUserAllowed(user *gotgbot.User) bool
	IsChatAllowed(chat *gotgbot.Chat) bool
	AllowUser(user *gotgbot.User) error
	DenyUser(user *gotgbot.User) error
	AllowChat(chat *gotgbot.Chat) error
	DenyChat(chat *gotgbot.Chat) error
}
