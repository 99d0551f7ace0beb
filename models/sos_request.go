package models

import "time"

// WaterLevel is how high flood water has risen around the reporter.
type WaterLevel string

const (
	WaterLevelNone  WaterLevel = "none"
	WaterLevelAnkle WaterLevel = "ankle"
	WaterLevelKnee  WaterLevel = "knee"
	WaterLevelWaist WaterLevel = "waist"
	WaterLevelChest WaterLevel = "chest"
	WaterLevelRoof  WaterLevel = "roof"
)

// Valid reports whether w is one of the declared water levels.
func (w WaterLevel) Valid() bool {
	switch w {
	case WaterLevelNone, WaterLevelAnkle, WaterLevelKnee, WaterLevelWaist, WaterLevelChest, WaterLevelRoof:
		return true
	}
	return false
}

// Label is the human-readable form shown to coordinators.
func (w WaterLevel) Label() string {
	switch w {
	case WaterLevelNone:
		return "No water"
	case WaterLevelAnkle:
		return "Up to ankle"
	case WaterLevelKnee:
		return "Knee level"
	case WaterLevelWaist:
		return "Waist level"
	case WaterLevelChest:
		return "Above chest"
	case WaterLevelRoof:
		return "At roof level"
	}
	return ""
}

// EmergencyType classifies what kind of help the reporter needs.
type EmergencyType string

const (
	EmergencyTrappedByFlood    EmergencyType = "trapped_by_flood"
	EmergencyEvacuationNeeded  EmergencyType = "evacuation_needed"
	EmergencyMedical           EmergencyType = "medical_emergency"
	EmergencyLandslideRisk     EmergencyType = "landslide_risk"
	EmergencyLandslideOccurred EmergencyType = "landslide_occurred"
	EmergencyOther             EmergencyType = "other"
)

// Valid reports whether e is one of the declared emergency types.
func (e EmergencyType) Valid() bool {
	switch e {
	case EmergencyTrappedByFlood, EmergencyEvacuationNeeded, EmergencyMedical,
		EmergencyLandslideRisk, EmergencyLandslideOccurred, EmergencyOther:
		return true
	}
	return false
}

// Label is the human-readable form shown to coordinators.
func (e EmergencyType) Label() string {
	switch e {
	case EmergencyTrappedByFlood:
		return "Trapped by Flood"
	case EmergencyEvacuationNeeded:
		return "Evacuation Needed"
	case EmergencyMedical:
		return "Medical Emergency"
	case EmergencyLandslideRisk:
		return "Landslide Risk"
	case EmergencyLandslideOccurred:
		return "Landslide Occurred"
	case EmergencyOther:
		return "Other"
	}
	return ""
}

// SosStatus is where a request sits in the rescue workflow.
// Operators may move a request to any status at any time.
type SosStatus string

const (
	SosStatusNew        SosStatus = "new"
	SosStatusVerified   SosStatus = "verified"
	SosStatusInProgress SosStatus = "in_progress"
	SosStatusResolved   SosStatus = "resolved"
	SosStatusDismissed  SosStatus = "dismissed"
)

// Valid reports whether s is one of the declared statuses.
func (s SosStatus) Valid() bool {
	switch s {
	case SosStatusNew, SosStatusVerified, SosStatusInProgress, SosStatusResolved, SosStatusDismissed:
		return true
	}
	return false
}

func (s SosStatus) Label() string {
	switch s {
	case SosStatusNew:
		return "New"
	case SosStatusVerified:
		return "Verified"
	case SosStatusInProgress:
		return "In Progress"
	case SosStatusResolved:
		return "Resolved"
	case SosStatusDismissed:
		return "Dismissed"
	}
	return ""
}

// ParseSosStatus converts a raw query value into a status.
func ParseSosStatus(raw string) (SosStatus, bool) {
	s := SosStatus(raw)
	return s, s.Valid()
}

// SosRequest is one distress report from a flood-affected person.
// It maps to the `sos_requests` table.
type SosRequest struct {
	ID int64 `db:"id" json:"id"`

	FullName             string  `db:"full_name" json:"full_name" validate:"required,max=200"`
	PhoneNumber          string  `db:"phone_number" json:"phone_number" validate:"required,max=15"`
	AlternatePhoneNumber *string `db:"alternate_phone_number" json:"alternate_phone_number" validate:"omitempty,max=15"`

	Address  string `db:"address" json:"address"`
	Landmark string `db:"landmark" json:"landmark" validate:"max=200"`
	District string `db:"district" json:"district" validate:"max=100"`
	// GPSLocation is carried as submitted ("lat,lng"); it is never parsed.
	GPSLocation string `db:"gps_location" json:"gps_location" validate:"max=100"`

	WaterLevel     WaterLevel `db:"water_level" json:"water_level" validate:"omitempty,choice"`
	SafeHours      string     `db:"safe_hours" json:"safe_hours" validate:"max=100"`
	FloorLevel     string     `db:"floor_level" json:"floor_level" validate:"max=10"`
	AdditionalInfo string     `db:"additional_info" json:"additional_info"`

	NeedsFood     bool `db:"needs_food" json:"needs_food"`
	NeedsMedicine bool `db:"needs_medicine" json:"needs_medicine"`
	NeedPower     bool `db:"need_power" json:"need_power"`
	NeedWater     bool `db:"need_water" json:"need_water"`

	PhoneBatteryPercentage *int `db:"phone_battery_percentage" json:"phone_battery_percentage" validate:"omitempty,min=0"`

	EmergencyType  EmergencyType `db:"emergency_type" json:"emergency_type" validate:"omitempty,choice"`
	NumberOfPeople int           `db:"number_of_people" json:"number_of_people" validate:"min=0"`

	HasChildren bool `db:"has_children" json:"has_children"`
	HasElderly  bool `db:"has_elderly" json:"has_elderly"`
	HasDisabled bool `db:"has_disabled" json:"has_disabled"`
	HasMedical  bool `db:"has_medical" json:"has_medical"`

	Status SosStatus `db:"status" json:"status" validate:"required,choice"`
	// InternalNotes is for operators only; see PublicSosRequest.
	InternalNotes string `db:"internal_notes" json:"internal_notes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PublicSosRequest is the view of an SosRequest returned to unauthenticated callers.
// Fields are listed explicitly so that operator-only data is never exposed by accident.
type PublicSosRequest struct {
	ID                     int64         `json:"id"`
	FullName               string        `json:"full_name"`
	PhoneNumber            string        `json:"phone_number"`
	AlternatePhoneNumber   *string       `json:"alternate_phone_number"`
	Address                string        `json:"address"`
	Landmark               string        `json:"landmark"`
	District               string        `json:"district"`
	GPSLocation            string        `json:"gps_location"`
	WaterLevel             WaterLevel    `json:"water_level"`
	SafeHours              string        `json:"safe_hours"`
	FloorLevel             string        `json:"floor_level"`
	AdditionalInfo         string        `json:"additional_info"`
	NeedsFood              bool          `json:"needs_food"`
	NeedsMedicine          bool          `json:"needs_medicine"`
	NeedPower              bool          `json:"need_power"`
	NeedWater              bool          `json:"need_water"`
	PhoneBatteryPercentage *int          `json:"phone_battery_percentage"`
	EmergencyType          EmergencyType `json:"emergency_type"`
	NumberOfPeople         int           `json:"number_of_people"`
	HasChildren            bool          `json:"has_children"`
	HasElderly             bool          `json:"has_elderly"`
	HasDisabled            bool          `json:"has_disabled"`
	HasMedical             bool          `json:"has_medical"`
	Status                 SosStatus     `json:"status"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

// Public returns the caller-facing view of r.
func (r *SosRequest) Public() PublicSosRequest {
	return PublicSosRequest{
		ID:                     r.ID,
		FullName:               r.FullName,
		PhoneNumber:            r.PhoneNumber,
		AlternatePhoneNumber:   r.AlternatePhoneNumber,
		Address:                r.Address,
		Landmark:               r.Landmark,
		District:               r.District,
		GPSLocation:            r.GPSLocation,
		WaterLevel:             r.WaterLevel,
		SafeHours:              r.SafeHours,
		FloorLevel:             r.FloorLevel,
		AdditionalInfo:         r.AdditionalInfo,
		NeedsFood:              r.NeedsFood,
		NeedsMedicine:          r.NeedsMedicine,
		NeedPower:              r.NeedPower,
		NeedWater:              r.NeedWater,
		PhoneBatteryPercentage: r.PhoneBatteryPercentage,
		EmergencyType:          r.EmergencyType,
		NumberOfPeople:         r.NumberOfPeople,
		HasChildren:            r.HasChildren,
		HasElderly:             r.HasElderly,
		HasDisabled:            r.HasDisabled,
		HasMedical:             r.HasMedical,
		Status:                 r.Status,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

// SosUpdate carries an operator's change to an existing request.
// Nil fields are left untouched.
type SosUpdate struct {
	Status        *SosStatus `json:"status,omitempty" validate:"omitnil,choice"`
	InternalNotes *string    `json:"internal_notes,omitempty"`
}
