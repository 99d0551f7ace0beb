package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DInduwara/Flood-management-system/models"
)

const campColumns = `id, name, district, location_description, capacity, current_occupancy, needs, is_active, created_at, updated_at`

// ReliefCampRepository persists the relief camp directory.
type ReliefCampRepository struct {
	db   *sql.DB
	opts options
}

func NewReliefCampRepository(db *sql.DB, opts ...Option) *ReliefCampRepository {
	return &ReliefCampRepository{db: db, opts: buildOptions(opts)}
}

// Create inserts a camp. The caller decides IsActive; decoded payloads default it to true.
func (r *ReliefCampRepository) Create(ctx context.Context, c *models.ReliefCamp) (*models.ReliefCamp, error) {
	if c == nil {
		return nil, errors.New("relief camp is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	now := formatTime(r.opts.now())
	res, err := r.db.ExecContext(ctx, `INSERT INTO relief_camps (name, district, location_description, capacity, current_occupancy, needs, is_active, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?,?)`,
		c.Name, c.District, c.LocationDescription, c.Capacity, c.CurrentOccupancy, c.Needs, c.IsActive, now, now)
	if err != nil {
		return nil, persistErr("create relief camp", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistErr("create relief camp", err)
	}
	out, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, persistErr("create relief camp", fmt.Errorf("created row not found: id=%d", id))
	}
	return out, err
}

func (r *ReliefCampRepository) GetByID(ctx context.Context, id int64) (*models.ReliefCamp, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()
	c, err := scanReliefCamp(r.db.QueryRowContext(ctx, `SELECT `+campColumns+` FROM relief_camps WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistErr("get relief camp", err)
	}
	return c, nil
}

// ListActive returns active camps ordered by district (binary collation), then id.
func (r *ReliefCampRepository) ListActive(ctx context.Context) ([]models.ReliefCamp, error) {
	return r.list(ctx, "list active relief camps", `SELECT `+campColumns+` FROM relief_camps WHERE is_active = 1 ORDER BY district ASC, id ASC`)
}

// ListAll returns every camp, active or not, in the same order as ListActive.
func (r *ReliefCampRepository) ListAll(ctx context.Context) ([]models.ReliefCamp, error) {
	return r.list(ctx, "list relief camps", `SELECT `+campColumns+` FROM relief_camps ORDER BY district ASC, id ASC`)
}

// SetActive flags a camp active or inactive and refreshes updated_at.
func (r *ReliefCampRepository) SetActive(ctx context.Context, id int64, active bool) (*models.ReliefCamp, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE relief_camps SET is_active = ?, updated_at = ? WHERE id = ?`, active, formatTime(r.opts.now()), id)
	if err != nil {
		return nil, persistErr("set relief camp active", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, persistErr("set relief camp active", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ReliefCampRepository) list(ctx context.Context, op, query string) ([]models.ReliefCamp, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, persistErr(op, err)
	}
	defer rows.Close()
	out := []models.ReliefCamp{}
	for rows.Next() {
		c, err := scanReliefCamp(rows)
		if err != nil {
			return nil, persistErr(op, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(op, err)
	}
	return out, nil
}

func scanReliefCamp(sc rowScanner) (*models.ReliefCamp, error) {
	var c models.ReliefCamp
	var createdAt, updatedAt string
	if err := sc.Scan(&c.ID, &c.Name, &c.District, &c.LocationDescription, &c.Capacity, &c.CurrentOccupancy, &c.Needs, &c.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
