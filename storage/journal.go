package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// CommandRun is one journaled command invocation.
type CommandRun struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Slot      int       `json:"slot"`
	CharCount int       `json:"charCount"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
}

// SaveRun appends a command run to the journal.
func (db *DB) SaveRun(r *CommandRun) error {
	query := `
		INSERT INTO command_runs (command, slot, char_count, success, detail)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query, r.Command, r.Slot, r.CharCount, r.Success, r.Detail)
	if err != nil {
		return fmt.Errorf("failed to save command run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	r.ID = id
	return nil
}

// GetRuns retrieves journal entries with pagination, newest first.
func (db *DB) GetRuns(limit, offset int) ([]CommandRun, error) {
	query := `
		SELECT id, timestamp, command, slot, char_count, success, detail
		FROM command_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query command runs: %w", err)
	}
	defer rows.Close()

	var runs []CommandRun
	for rows.Next() {
		var r CommandRun
		var detail sql.NullString

		err := rows.Scan(&r.ID, &r.Timestamp, &r.Command, &r.Slot, &r.CharCount, &r.Success, &detail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command run: %w", err)
		}

		if detail.Valid {
			r.Detail = detail.String
		}

		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// DeleteRun deletes a journal entry by ID.
func (db *DB) DeleteRun(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM command_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete command run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("command run not found")
	}

	return nil
}

// GetRunCount returns the total number of journal entries.
func (db *DB) GetRunCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM command_runs").Scan(&count)
	return count, err
}
