// Package store archives completed checks.
//
// Expected schema:
//
//	create table misinfo_records (
//	  id             uuid primary key,
//	  created_at     timestamptz not null default now(),
//	  modality       text not null,
//	  original_input text,
//	  result_json    jsonb,
//	  findings_json  jsonb,
//	  status         text not null default 'pending'
//	);
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"misinfo-checker/api/internal/misinfo"
)

type RecordRepo struct{ DB *sql.DB }

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{DB: db} }

// Archive implements misinfo.Archiver.
func (r *RecordRepo) Archive(ctx context.Context, rec misinfo.ArchiveRecord) error {
	resultJS, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("store: marshal result: %w", err)
	}
	findingsJS, err := json.Marshal(rec.Result.Findings)
	if err != nil {
		return fmt.Errorf("store: marshal findings: %w", err)
	}

	const q = `
insert into misinfo_records (id, created_at, modality, original_input, result_json, findings_json, status)
values ($1,$2,$3,$4,$5,$6,$7)`
	_, err = r.DB.ExecContext(ctx, q,
		uuid.New(), time.Now().UTC(), string(rec.Modality), rec.OriginalInput,
		resultJS, findingsJS, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("store: insert record: %w", err)
	}
	return nil
}

// PurgeOlderThan removes old records so the archive does not grow without
// bound.
func (r *RecordRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("store: olderThan must be > 0")
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `delete from misinfo_records where created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
