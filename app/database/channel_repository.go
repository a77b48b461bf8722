package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ChannelRepository handles per-guild channel overrides for one notifying
// subsystem. The Letterboxd poller and the birthday notifier each get their
// own instance bound to their own table; both tables share the same shape.
type ChannelRepository struct {
	db    *DB
	table string
}

var _ ChannelStore = (*ChannelRepository)(nil)

func NewChannelRepository(db *DB, table string) *ChannelRepository {
	return &ChannelRepository{db: db, table: table}
}

func (r *ChannelRepository) Get(guildID string) (string, error) {
	var channelID string
	err := r.db.QueryRow(
		fmt.Sprintf(`SELECT channel_id FROM %s WHERE guild_id = ?`, r.table),
		guildID,
	).Scan(&channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query channel override: %w", err)
	}
	return channelID, nil
}

func (r *ChannelRepository) Set(guildID, channelID string) error {
	_, err := r.db.Exec(
		fmt.Sprintf(`INSERT OR REPLACE INTO %s (guild_id, channel_id) VALUES (?, ?)`, r.table),
		guildID, channelID,
	)
	if err != nil {
		return fmt.Errorf("failed to set channel override: %w", err)
	}
	return nil
}

func (r *ChannelRepository) Delete(guildID string) error {
	_, err := r.db.Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE guild_id = ?`, r.table),
		guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete channel override: %w", err)
	}
	return nil
}
