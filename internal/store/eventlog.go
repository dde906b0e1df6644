package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"agentboard/internal/model"

	_ "modernc.org/sqlite"
)

const eventDBFileName = "events.sqlite"

// EventLog is an append-only audit trail of tree mutations and save
// failures, kept in SQLite next to the project files. It is advisory: a
// failed append never blocks the mutation it describes.
type EventLog struct {
	Path string
}

func (s Store) EventLog() *EventLog {
	return &EventLog{Path: filepath.Join(s.Dir, eventDBFileName)}
}

func (l *EventLog) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", l.Path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database
	// is locked" flakiness when a CLI invocation races the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		ts_unixms INTEGER NOT NULL,
		type TEXT NOT NULL,
		file TEXT NOT NULL,
		node_id TEXT,
		payload_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unixms);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Append records one event. Event types in use: node.create, node.rename,
// node.delete, node.cut, node.paste, node.move, board.apply, save.failed,
// run.agent.
func (l *EventLog) Append(typ, file, nodeID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return fmt.Errorf("missing event type")
	}
	ctx := context.Background()
	db, err := l.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	id, err := newEventID()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events(event_id, ts_unixms, type, file, node_id, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().UnixMilli(), typ, file, strings.TrimSpace(nodeID), string(pb))
	return err
}

// AppendBestEffort logs an event without propagating failures; the log is
// advisory and must never block an edit. Safe on a nil receiver.
func (l *EventLog) AppendBestEffort(typ, file, nodeID string, payload any) {
	if l == nil {
		return
	}
	_ = l.Append(typ, file, nodeID, payload)
}

// Tail returns the most recent events in chronological order. limit <= 0
// returns everything.
func (l *EventLog) Tail(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, ts_unixms, type, file, node_id, payload_json FROM events ORDER BY ts_unixms DESC, event_id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var ev model.Event
		var node sql.NullString
		var payloadJSON string
		if err := rows.Scan(&ev.ID, &ev.TSMs, &ev.Type, &ev.File, &node, &payloadJSON); err != nil {
			return nil, err
		}
		if node.Valid {
			ev.NodeID = node.String
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		ev.Payload = payload
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse into chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}

func newEventID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("ev-%x", b), nil
}
