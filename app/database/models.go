package database

// Follow links a guild member to the Letterboxd profile they follow.
// LastGUID is the watermark: the feed item identifier most recently seen by
// the poller, nil until the first successful poll after a follow.
type Follow struct {
	GuildID  string
	UserID   string
	Username string
	LastGUID *string
}

// Birthday holds a member's month/day. Day is validated against a non-leap
// calendar at the command layer, so a stored record always matches a real
// calendar date in any year.
type Birthday struct {
	GuildID string
	UserID  string
	Month   int
	Day     int
}
