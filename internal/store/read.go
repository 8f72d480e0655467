package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReadEntry retrieves a single entry by (application, identity).
// Returns found=false if no row matches; a record logged under another
// application namespace is never returned even for the same identity.
func (s *Store) ReadEntry(ctx context.Context, application, id string) (Entry, bool, error) {
	if err := s.ready(); err != nil {
		return Entry{}, false, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT error_id, application, host, error_type, source, message, user_name, status_code, time_utc, all_details
		FROM `+s.table+`
		WHERE application = ? AND error_id = ?
	`, application, id)

	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read entry: %w", err)
	}

	return e, true, nil
}

// ReadPage returns one page of entries for an application, most recent first,
// together with the total number of entries in the namespace. The total is
// computed by a window aggregate in the same round trip as the page scan.
//
// A page beyond the tail returns an empty slice; the total then comes from a
// count query, since the window aggregate yields no rows to carry it.
//
// Ties on the timestamp break on error_id descending so page boundaries are
// stable across calls.
func (s *Store) ReadPage(ctx context.Context, application string, offset, limit int) ([]Entry, int, error) {
	if err := s.ready(); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT error_id, application, host, error_type, source, message, user_name, status_code, time_utc, all_details,
		       COUNT(*) OVER () AS total
		FROM `+s.table+`
		WHERE application = ?
		ORDER BY time_utc DESC, error_id DESC
		LIMIT ? OFFSET ?
	`, application, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query page: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	var total int
	for rows.Next() {
		var e Entry
		var ns int64
		if err := rows.Scan(
			&e.ID, &e.Application, &e.Host, &e.Type, &e.Source,
			&e.Message, &e.User, &e.StatusCode, &ns, &e.AllDetails,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan page entry: %w", err)
		}
		e.TimeUTC = time.Unix(0, ns).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate page: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []Entry{}
		total, err = s.Count(ctx, application)
		if err != nil {
			return nil, 0, err
		}
	}

	return entries, total, nil
}

// Count returns the total number of entries in an application namespace.
func (s *Store) Count(ctx context.Context, application string) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM `+s.table+` WHERE application = ?
	`, application).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// scanEntry scans one row into an Entry, converting the stored nanosecond
// timestamp back to a UTC instant.
func scanEntry(scan func(...any) error) (Entry, error) {
	var e Entry
	var ns int64
	if err := scan(
		&e.ID, &e.Application, &e.Host, &e.Type, &e.Source,
		&e.Message, &e.User, &e.StatusCode, &ns, &e.AllDetails,
	); err != nil {
		return Entry{}, err
	}
	e.TimeUTC = time.Unix(0, ns).UTC()
	return e, nil
}
