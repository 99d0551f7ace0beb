package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DInduwara/Flood-management-system/models"
)

type HelpOfferRepository struct {
	db   *sql.DB
	opts options
}

func NewHelpOfferRepository(db *sql.DB, opts ...Option) *HelpOfferRepository {
	return &HelpOfferRepository{db: db, opts: buildOptions(opts)}
}

// Create inserts a volunteer offer. Offers are never updated afterwards.
func (r *HelpOfferRepository) Create(ctx context.Context, o *models.HelpOffer) (*models.HelpOffer, error) {
	if o == nil {
		return nil, errors.New("help offer is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO help_offers (helper_name, helper_phone, helper_district, support_details, preferred_areas, created_at) VALUES (?,?,?,?,?,?)`,
		o.HelperName, o.HelperPhone, o.HelperDistrict, o.SupportDetails, o.PreferredAreas, formatTime(r.opts.now()))
	if err != nil {
		return nil, persistErr("create help offer", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistErr("create help offer", err)
	}
	out, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, persistErr("create help offer", fmt.Errorf("created row not found: id=%d", id))
	}
	return out, err
}

func (r *HelpOfferRepository) GetByID(ctx context.Context, id int64) (*models.HelpOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()
	var o models.HelpOffer
	var createdAt string
	err := r.db.QueryRowContext(ctx, `SELECT id, helper_name, helper_phone, helper_district, support_details, preferred_areas, created_at FROM help_offers WHERE id = ?`, id).
		Scan(&o.ID, &o.HelperName, &o.HelperPhone, &o.HelperDistrict, &o.SupportDetails, &o.PreferredAreas, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistErr("get help offer", err)
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, persistErr("get help offer", err)
	}
	return &o, nil
}
