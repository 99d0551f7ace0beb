package models

import "time"

// HelpOffer is a volunteer's declaration of available assistance.
// Offers are immutable once created.
type HelpOffer struct {
	ID             int64     `db:"id" json:"id"`
	HelperName     string    `db:"helper_name" json:"helper_name" validate:"required,max=200"`
	HelperPhone    string    `db:"helper_phone" json:"helper_phone" validate:"required,max=32"`
	HelperDistrict string    `db:"helper_district" json:"helper_district" validate:"required,max=100"`
	SupportDetails string    `db:"support_details" json:"support_details" validate:"required"`
	PreferredAreas string    `db:"preferred_areas" json:"preferred_areas"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
