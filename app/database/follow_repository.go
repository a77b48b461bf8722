package database

import (
	"database/sql"
	"fmt"
)

// FollowRepository handles database operations for followed Letterboxd profiles
type FollowRepository struct {
	db *DB
}

var _ FollowStore = (*FollowRepository)(nil)

func NewFollowRepository(db *DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) All() ([]Follow, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, letterboxd_username, last_guid
		FROM letterboxd_users
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query follows: %w", err)
	}
	defer rows.Close()

	return scanFollows(rows)
}

func (r *FollowRepository) ListByGuild(guildID string) ([]Follow, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, letterboxd_username, last_guid
		FROM letterboxd_users
		WHERE guild_id = ?
		ORDER BY letterboxd_username
	`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guild follows: %w", err)
	}
	defer rows.Close()

	return scanFollows(rows)
}

// Upsert creates or replaces the follow for a guild member. Re-following
// resets the watermark so the next poll is a bootstrap poll.
func (r *FollowRepository) Upsert(guildID, userID, username string) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO letterboxd_users (guild_id, user_id, letterboxd_username, last_guid)
		VALUES (?, ?, ?, NULL)
	`, guildID, userID, username)
	if err != nil {
		return fmt.Errorf("failed to upsert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(guildID, userID string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM letterboxd_users WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *FollowRepository) UpdateLastGUID(guildID, userID, guid string) error {
	_, err := r.db.Exec(`
		UPDATE letterboxd_users SET last_guid = ? WHERE guild_id = ? AND user_id = ?
	`, guid, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to update watermark: %w", err)
	}
	return nil
}

func (r *FollowRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM letterboxd_users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}

func scanFollows(rows *sql.Rows) ([]Follow, error) {
	var follows []Follow
	for rows.Next() {
		var f Follow
		if err := rows.Scan(&f.GuildID, &f.UserID, &f.Username, &f.LastGUID); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		follows = append(follows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate follows: %w", err)
	}
	return follows, nil
}
