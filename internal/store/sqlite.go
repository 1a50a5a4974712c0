package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"reefopoly/internal/game"

	_ "modernc.org/sqlite"
)

// SQLiteArchive persists finished matches and their full event logs for
// replay. Live matches never touch it.
type SQLiteArchive struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS matches (
	room_id    TEXT PRIMARY KEY,
	room_code  TEXT NOT NULL,
	room_name  TEXT NOT NULL,
	turns      INTEGER NOT NULL,
	winner     TEXT,
	standings  TEXT NOT NULL,
	finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS match_events (
	room_id   TEXT NOT NULL,
	sequence  INTEGER NOT NULL,
	payload   TEXT NOT NULL,
	PRIMARY KEY (room_id, sequence)
);
`

func OpenSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func (a *SQLiteArchive) SaveMatch(st *game.State, events []game.Event, standings []game.Standing) error {
	standingsJSON, err := json.Marshal(standings)
	if err != nil {
		return err
	}
	winner := ""
	if st.Winner != nil {
		winner = st.Winner.Name
	}

	tx, err := a.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO matches (room_id, room_code, room_name, turns, winner, standings) VALUES (?, ?, ?, ?, ?, ?)`,
		st.RoomID, st.RoomCode, st.RoomName, st.TurnNumber, winner, string(standingsJSON),
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO match_events (room_id, sequence, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(st.RoomID, ev.Sequence, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// MatchEvents loads the archived event log for a finished match in sequence
// order.
func (a *SQLiteArchive) MatchEvents(roomID string) ([]game.Event, error) {
	rows, err := a.db.Query(
		`SELECT payload FROM match_events WHERE room_id = ? ORDER BY sequence`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var ev game.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
