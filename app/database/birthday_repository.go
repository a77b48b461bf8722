package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// BirthdayRepository handles database operations for birthday records
type BirthdayRepository struct {
	db *DB
}

var _ BirthdayStore = (*BirthdayRepository)(nil)

func NewBirthdayRepository(db *DB) *BirthdayRepository {
	return &BirthdayRepository{db: db}
}

func (r *BirthdayRepository) Get(guildID, userID string) (*Birthday, error) {
	var b Birthday
	err := r.db.QueryRow(`
		SELECT guild_id, user_id, month, day FROM birthdays
		WHERE guild_id = ? AND user_id = ?
	`, guildID, userID).Scan(&b.GuildID, &b.UserID, &b.Month, &b.Day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query birthday: %w", err)
	}
	return &b, nil
}

// ListByGuild returns guild birthdays ordered by (month, day). The rotation
// into upcoming-then-passed happens at the command layer.
func (r *BirthdayRepository) ListByGuild(guildID string) ([]Birthday, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, month, day FROM birthdays
		WHERE guild_id = ?
		ORDER BY month, day
	`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guild birthdays: %w", err)
	}
	defer rows.Close()

	return scanBirthdays(rows)
}

func (r *BirthdayRepository) DueOn(month, day int) ([]Birthday, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, month, day FROM birthdays
		WHERE month = ? AND day = ?
	`, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query due birthdays: %w", err)
	}
	defer rows.Close()

	return scanBirthdays(rows)
}

func (r *BirthdayRepository) Upsert(guildID, userID string, month, day int) error {
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO birthdays (guild_id, user_id, month, day)
		VALUES (?, ?, ?, ?)
	`, guildID, userID, month, day)
	if err != nil {
		return fmt.Errorf("failed to upsert birthday: %w", err)
	}
	return nil
}

func (r *BirthdayRepository) Delete(guildID, userID string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM birthdays WHERE guild_id = ? AND user_id = ?
	`, guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete birthday: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *BirthdayRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM birthdays`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count birthdays: %w", err)
	}
	return count, nil
}

func scanBirthdays(rows *sql.Rows) ([]Birthday, error) {
	var birthdays []Birthday
	for rows.Next() {
		var b Birthday
		if err := rows.Scan(&b.GuildID, &b.UserID, &b.Month, &b.Day); err != nil {
			return nil, fmt.Errorf("failed to scan birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate birthdays: %w", err)
	}
	return birthdays, nil
}
