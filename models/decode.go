package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired   = "This field is required."
	msgBlank      = "This field may not be blank."
	msgNotString  = "Not a valid string."
	msgNotInteger = "A valid integer is required."
	msgNotBoolean = "Must be a valid boolean."
)

// maxExactInt bounds integers accepted from float64 JSON numbers.
const maxExactInt = 1 << 53

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// choice accepts any value whose type declares its own closed set.
	if err := validate.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && c.Valid()
	}); err != nil {
		panic(err)
	}
}

// DecodeSosRequest builds a new SosRequest from a submitted payload.
// Only caller-writable fields are read: id, status, internal_notes and the
// timestamps are ignored and the request always starts as new.
func DecodeSosRequest(raw map[string]any) (*SosRequest, error) {
	p := newPayload(raw)
	r := &SosRequest{
		FullName:               p.text("full_name"),
		PhoneNumber:            p.text("phone_number"),
		AlternatePhoneNumber:   p.optionalText("alternate_phone_number"),
		Address:                p.text("address"),
		Landmark:               p.text("landmark"),
		District:               p.text("district"),
		GPSLocation:            p.text("gps_location"),
		WaterLevel:             WaterLevel(p.text("water_level")),
		SafeHours:              p.text("safe_hours"),
		FloorLevel:             p.text("floor_level"),
		AdditionalInfo:         p.text("additional_info"),
		NeedsFood:              p.boolean("needs_food", false),
		NeedsMedicine:          p.boolean("needs_medicine", false),
		NeedPower:              p.boolean("need_power", false),
		NeedWater:              p.boolean("need_water", false),
		PhoneBatteryPercentage: p.optionalInteger("phone_battery_percentage"),
		EmergencyType:          EmergencyType(p.text("emergency_type")),
		NumberOfPeople:         p.integer("number_of_people", 1),
		HasChildren:            p.boolean("has_children", false),
		HasElderly:             p.boolean("has_elderly", false),
		HasDisabled:            p.boolean("has_disabled", false),
		HasMedical:             p.boolean("has_medical", false),
		Status:                 SosStatusNew,
	}
	if err := p.check(r); err != nil {
		return nil, err
	}
	return r, nil
}

// DecodeHelpOffer builds a new HelpOffer from a submitted payload.
func DecodeHelpOffer(raw map[string]any) (*HelpOffer, error) {
	p := newPayload(raw)
	o := &HelpOffer{
		HelperName:     p.text("helper_name"),
		HelperPhone:    p.text("helper_phone"),
		HelperDistrict: p.text("helper_district"),
		SupportDetails: p.text("support_details"),
		PreferredAreas: p.text("preferred_areas"),
	}
	if err := p.check(o); err != nil {
		return nil, err
	}
	return o, nil
}

// DecodeReliefCamp builds a new ReliefCamp from an operator payload.
// Camps are active unless is_active is given as false.
func DecodeReliefCamp(raw map[string]any) (*ReliefCamp, error) {
	p := newPayload(raw)
	c := &ReliefCamp{
		Name:                p.text("name"),
		District:            p.text("district"),
		LocationDescription: p.text("location_description"),
		Capacity:            p.requiredInteger("capacity"),
		CurrentOccupancy:    p.requiredInteger("current_occupancy"),
		Needs:               p.text("needs"),
		IsActive:            p.boolean("is_active", true),
	}
	if err := p.check(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeSosUpdate reads an operator's partial update of an SosRequest.
// At least one of status or internal_notes must be present.
func DecodeSosUpdate(raw map[string]any) (*SosUpdate, error) {
	p := newPayload(raw)
	u := &SosUpdate{}
	if _, ok := p.lookup("status"); ok {
		s := SosStatus(p.text("status"))
		u.Status = &s
	}
	if _, ok := p.lookup("internal_notes"); ok {
		n := p.text("internal_notes")
		u.InternalNotes = &n
	}
	if u.Status == nil && u.InternalNotes == nil && len(p.errs.Fields) == 0 {
		p.errs.add(NonFieldErrors, "Provide status or internal_notes.")
	}
	if err := p.check(u); err != nil {
		return nil, err
	}
	return u, nil
}

// DecodeCampActivation reads the is_active flag of an operator payload.
func DecodeCampActivation(raw map[string]any) (bool, error) {
	p := newPayload(raw)
	if _, ok := p.lookup("is_active"); !ok {
		p.errs.add("is_active", msgRequired)
		return false, p.errs
	}
	active := p.boolean("is_active", false)
	if err := p.errs.orNil(); err != nil {
		return false, err
	}
	return active, nil
}

// payload reads typed values out of a raw field map, collecting every
// conversion failure instead of stopping at the first.
type payload struct {
	raw     map[string]any
	errs    *ValidationError
	missing map[string]bool
}

func newPayload(raw map[string]any) *payload {
	if raw == nil {
		raw = map[string]any{}
	}
	return &payload{raw: raw, errs: &ValidationError{}, missing: map[string]bool{}}
}

// lookup treats explicit nulls as absent.
func (p *payload) lookup(field string) (any, bool) {
	v, ok := p.raw[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (p *payload) text(field string) string {
	v, ok := p.lookup(field)
	if !ok {
		p.missing[field] = true
		return ""
	}
	s, ok := asString(v)
	if !ok {
		p.errs.add(field, msgNotString)
		return ""
	}
	return strings.TrimSpace(s)
}

func (p *payload) optionalText(field string) *string {
	if _, ok := p.lookup(field); !ok {
		return nil
	}
	s := p.text(field)
	if s == "" {
		return nil
	}
	return &s
}

func (p *payload) boolean(field string, def bool) bool {
	v, ok := p.lookup(field)
	if !ok {
		return def
	}
	b, ok := asBool(v)
	if !ok {
		p.errs.add(field, msgNotBoolean)
		return def
	}
	return b
}

func (p *payload) integer(field string, def int) int {
	v, ok := p.lookup(field)
	if !ok {
		return def
	}
	n, ok := asInt(v)
	if !ok {
		p.errs.add(field, msgNotInteger)
		return def
	}
	return n
}

func (p *payload) requiredInteger(field string) int {
	if _, ok := p.lookup(field); !ok {
		p.errs.add(field, msgRequired)
		return 0
	}
	return p.integer(field, 0)
}

func (p *payload) optionalInteger(field string) *int {
	v, ok := p.lookup(field)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil
	}
	n, ok := asInt(v)
	if !ok {
		p.errs.add(field, msgNotInteger)
		return nil
	}
	return &n
}

// check runs struct rules on v. Fields that already failed conversion keep
// their conversion message only.
func (p *payload) check(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			field := fe.Field()
			if p.errs.Has(field) {
				continue
			}
			p.errs.add(field, p.message(fe))
		}
	}
	return p.errs.orNil()
}

func (p *payload) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if p.missing[fe.Field()] {
			return msgRequired
		}
		return msgBlank
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "choice":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	}
	return "Invalid value."
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	case float64:
		switch t {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	case int:
		switch t {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false
	}
	return int(f), true
}
