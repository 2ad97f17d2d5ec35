package storage

import (
	"fmt"
)

// CommandStats represents journal statistics grouped by command.
type CommandStats struct {
	Command      string `json:"command"`
	TotalRuns    int    `json:"totalRuns"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
	TotalChars   int    `json:"totalChars"`
}

// OverallStats represents overall journal statistics.
type OverallStats struct {
	TotalRuns    int `json:"totalRuns"`
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
	TotalChars   int `json:"totalChars"`
}

// GetOverallStats aggregates the journal for the last N days.
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(char_count), 0)
		FROM command_runs
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var s OverallStats
	err := db.conn.QueryRow(query, days).Scan(&s.TotalRuns, &s.SuccessCount, &s.FailureCount, &s.TotalChars)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}
	return &s, nil
}

// GetCommandStats aggregates the journal per command for the last N days.
func (db *DB) GetCommandStats(days int) ([]CommandStats, error) {
	query := `
		SELECT
			command,
			COUNT(*) as total_runs,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count,
			COALESCE(SUM(char_count), 0) as total_chars
		FROM command_runs
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY command
		ORDER BY total_runs DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query command stats: %w", err)
	}
	defer rows.Close()

	var stats []CommandStats
	for rows.Next() {
		var s CommandStats
		err := rows.Scan(&s.Command, &s.TotalRuns, &s.SuccessCount, &s.FailureCount, &s.TotalChars)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
