package tgUtils

const (
	MaxMessageLength = 4096

	ChatMemberStatusCreator       = "creator"
	ChatMemberStatusAdministrator = "administrator"

	ErrBlockedByUser     = "Forbidden: bot was blocked by the user"
	ErrNotStartedByUser  = "Forbidden: bot can't initiate conversation with a user"
	ErrUserIsDeactivated = "Forbidden: user is deactivated"
	ErrReactionInvalid   = "Bad Request: REACTION_INVALID"
)
