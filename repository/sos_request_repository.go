package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DInduwara/Flood-management-system/models"
)

const sosColumns = `id, full_name, phone_number, alternate_phone_number, address, landmark, district, gps_location,
water_level, safe_hours, floor_level, additional_info, needs_food, needs_medicine, need_power, need_water,
phone_battery_percentage, emergency_type, number_of_people, has_children, has_elderly, has_disabled, has_medical,
status, internal_notes, created_at, updated_at`

// SosRequestRepository persists distress reports.
type SosRequestRepository struct {
	db   *sql.DB
	opts options
}

// NewSosRequestRepository creates a new SosRequestRepository.
func NewSosRequestRepository(db *sql.DB, opts ...Option) *SosRequestRepository {
	return &SosRequestRepository{db: db, opts: buildOptions(opts)}
}

// Create inserts a validated request, stamping created_at and updated_at.
// Status defaults to 'new' if empty.
func (r *SosRequestRepository) Create(ctx context.Context, s *models.SosRequest) (*models.SosRequest, error) {
	if s == nil {
		return nil, errors.New("sos request is nil")
	}
	if s.Status == "" {
		s.Status = models.SosStatusNew
	}
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	now := formatTime(r.opts.now())
	res, err := r.db.ExecContext(ctx, `
INSERT INTO sos_requests (
  full_name, phone_number, alternate_phone_number, address, landmark, district, gps_location,
  water_level, safe_hours, floor_level, additional_info, needs_food, needs_medicine, need_power, need_water,
  phone_battery_percentage, emergency_type, number_of_people, has_children, has_elderly, has_disabled, has_medical,
  status, internal_notes, created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.FullName, s.PhoneNumber, s.AlternatePhoneNumber, s.Address, s.Landmark, s.District, s.GPSLocation,
		string(s.WaterLevel), s.SafeHours, s.FloorLevel, s.AdditionalInfo, s.NeedsFood, s.NeedsMedicine, s.NeedPower, s.NeedWater,
		s.PhoneBatteryPercentage, string(s.EmergencyType), s.NumberOfPeople, s.HasChildren, s.HasElderly, s.HasDisabled, s.HasMedical,
		string(s.Status), s.InternalNotes, now, now)
	if err != nil {
		return nil, persistErr("create sos request", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, persistErr("create sos request", err)
	}
	out, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, persistErr("create sos request", fmt.Errorf("created row not found: id=%d", id))
	}
	return out, err
}

// GetByID fetches a request by its ID.
func (r *SosRequestRepository) GetByID(ctx context.Context, id int64) (*models.SosRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+sosColumns+` FROM sos_requests WHERE id = ?`, id)
	s, err := scanSosRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistErr("get sos request", err)
	}
	return s, nil
}

// Update applies an operator change and refreshes updated_at.
// created_at is never touched.
func (r *SosRequestRepository) Update(ctx context.Context, id int64, u models.SosUpdate) (*models.SosRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(r.opts.now())}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.InternalNotes != nil {
		sets = append(sets, "internal_notes = ?")
		args = append(args, *u.InternalNotes)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE sos_requests SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, persistErr("update sos request", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, persistErr("update sos request", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanSosRequest(sc rowScanner) (*models.SosRequest, error) {
	var s models.SosRequest
	var alt sql.NullString
	var battery sql.NullInt64
	var waterLevel, emergencyType, status, createdAt, updatedAt string
	err := sc.Scan(&s.ID, &s.FullName, &s.PhoneNumber, &alt, &s.Address, &s.Landmark, &s.District, &s.GPSLocation,
		&waterLevel, &s.SafeHours, &s.FloorLevel, &s.AdditionalInfo, &s.NeedsFood, &s.NeedsMedicine, &s.NeedPower, &s.NeedWater,
		&battery, &emergencyType, &s.NumberOfPeople, &s.HasChildren, &s.HasElderly, &s.HasDisabled, &s.HasMedical,
		&status, &s.InternalNotes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if alt.Valid {
		v := alt.String
		s.AlternatePhoneNumber = &v
	}
	if battery.Valid {
		v := int(battery.Int64)
		s.PhoneBatteryPercentage = &v
	}
	s.WaterLevel = models.WaterLevel(waterLevel)
	s.EmergencyType = models.EmergencyType(emergencyType)
	s.Status = models.SosStatus(status)
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
