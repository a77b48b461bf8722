package database

type FollowStore interface {
	All() ([]Follow, error)
	ListByGuild(guildID string) ([]Follow, error)
	Upsert(guildID, userID, username string) error
	Delete(guildID, userID string) (bool, error)
	UpdateLastGUID(guildID, userID, guid string) error
	Count() (int, error)
}

type BirthdayStore interface {
	Get(guildID, userID string) (*Birthday, error)
	ListByGuild(guildID string) ([]Birthday, error)
	DueOn(month, day int) ([]Birthday, error)
	Upsert(guildID, userID string, month, day int) error
	Delete(guildID, userID string) (bool, error)
	Count() (int, error)
}

// ChannelStore holds per-guild announcement channel overrides. Each notifying
// subsystem gets its own table of the same shape.
type ChannelStore interface {
	Get(guildID string) (string, error)
	Set(guildID, channelID string) error
	Delete(guildID string) error
}
