// Copyright (c) tkc17.

package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"

	_ "modernc.org/sqlite"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sample_id TEXT NOT NULL,
	iface TEXT NOT NULL,
	sampled_at INTEGER NOT NULL,
	connected INTEGER NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_sampled_at ON samples(sampled_at);
`

// Archive keeps recent samples in a local SQLite database to back the
// samples API. Timestamps are stored as unix microseconds and the full
// sample is kept as a JSON payload so free-form statistics survive
// round trips unchanged.
type Archive struct {
	db   *sql.DB
	path string
}

// NewArchive opens or creates the archive database.
func NewArchive(ctx context.Context, path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	// busy_timeout avoids transient locked errors from concurrent readers.
	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err = db.ExecContext(ctx, archiveSchema); err != nil {
		db.Close()
		return nil, err
	}
	util.FileLogger().Infof(ctx, "Archiving samples to %s", path)
	return &Archive{db: db, path: path}, nil
}

// Name returns the recorder name used in logs.
func (archive *Archive) Name() string {
	return "archive"
}

// Path returns the database file path.
func (archive *Archive) Path() string {
	return archive.path
}

// Record stores one sample.
func (archive *Archive) Record(ctx context.Context, sample *model.Sample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	connected := 0
	if sample.Connected {
		connected = 1
	}
	_, err = archive.db.ExecContext(
		ctx,
		`INSERT INTO samples(sample_id, iface, sampled_at, connected, payload) VALUES(?, ?, ?, ?, ?)`,
		sample.SampleId,
		sample.Iface,
		sample.SampledAt.UnixMicro(),
		connected,
		string(payload),
	)
	return err
}

// Recent returns up to limit samples ordered from newest to oldest.
func (archive *Archive) Recent(ctx context.Context, limit int) ([]model.Sample, error) {
	rows, err := archive.db.QueryContext(
		ctx,
		`SELECT payload FROM samples ORDER BY sampled_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanSamples(rows)
}

// Since returns up to limit samples taken at or after the given time,
// ordered from oldest to newest.
func (archive *Archive) Since(
	ctx context.Context,
	since time.Time,
	limit int,
) ([]model.Sample, error) {
	rows, err := archive.db.QueryContext(
		ctx,
		`SELECT payload FROM samples WHERE sampled_at >= ? ORDER BY sampled_at ASC, id ASC LIMIT ?`,
		since.UnixMicro(),
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanSamples(rows)
}

// PurgeOlderThan deletes samples taken before the cutoff and returns
// the number of deleted rows.
func (archive *Archive) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := archive.db.ExecContext(
		ctx,
		`DELETE FROM samples WHERE sampled_at < ?`,
		cutoff.UnixMicro(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close closes the database.
func (archive *Archive) Close() error {
	return archive.db.Close()
}

func scanSamples(rows *sql.Rows) ([]model.Sample, error) {
	defer rows.Close()
	samples := []model.Sample{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var sample model.Sample
		if err := json.Unmarshal([]byte(payload), &sample); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
