package store

import (
	"context"
	"fmt"

	"github.com/roach88/faultlog/internal/record"
)

// WriteEntry inserts one error entry inside a single transaction. The write
// either wholly commits and becomes visible, or wholly fails and leaves no
// trace; cancellation before commit rolls back.
//
// Indexed scalar fields are truncated to their documented column widths
// before binding. The detail document is bound untouched. A duplicate
// (application, identity) pair violates the primary key and fails the write.
func (s *Store) WriteEntry(ctx context.Context, e Entry) error {
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write entry: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO `+s.table+`
		(error_id, application, host, error_type, source, message, user_name, status_code, time_utc, all_details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Application,
		record.Clip(e.Host, record.MaxHost),
		record.Clip(e.Type, record.MaxType),
		record.Clip(e.Source, record.MaxSource),
		record.Clip(e.Message, record.MaxMessage),
		record.Clip(e.User, record.MaxUser),
		e.StatusCode,
		e.TimeUTC.UTC().UnixNano(),
		e.AllDetails,
	)
	if err != nil {
		return fmt.Errorf("write entry: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write entry: commit: %w", err)
	}

	return nil
}
