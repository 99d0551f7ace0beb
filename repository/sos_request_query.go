package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/DInduwara/Flood-management-system/models"
)

// SosRequestFilter narrows List. Zero-valued fields add no predicate;
// set fields are combined with AND.
type SosRequestFilter struct {
	// District matches exactly, ignoring case.
	District string
	Status   models.SosStatus
}

// List returns requests matching f, most recent first (created_at desc, id desc).
func (r *SosRequestRepository) List(ctx context.Context, f SosRequestFilter) ([]models.SosRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var where []string
	var args []any
	if f.District != "" {
		where = append(where, "district = ? COLLATE NOCASE")
		args = append(args, f.District)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + sosColumns + ` FROM sos_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list sos requests", err)
	}
	defer rows.Close()

	out, err := scanSosRequestRows(rows)
	if err != nil {
		return nil, persistErr("list sos requests", err)
	}
	return out, nil
}

// scanSosRequestRows always returns a non-nil slice.
func scanSosRequestRows(rows *sql.Rows) ([]models.SosRequest, error) {
	out := []models.SosRequest{}
	for rows.Next() {
		s, err := scanSosRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
