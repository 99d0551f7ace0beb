package models

import (
	"strings"
	"time"
)

// ReliefCamp is a physical shelter or aid distribution point.
// CurrentOccupancy is not bounded by Capacity; camps routinely overflow.
type ReliefCamp struct {
	ID                  int64  `db:"id" json:"id"`
	Name                string `db:"name" json:"name" validate:"required,max=255"`
	District            string `db:"district" json:"district" validate:"required,max=100"`
	LocationDescription string `db:"location_description" json:"location_description" validate:"required,max=255"`
	Capacity            int    `db:"capacity" json:"capacity" validate:"min=0"`
	CurrentOccupancy    int    `db:"current_occupancy" json:"current_occupancy" validate:"min=0"`
	// Needs is a comma separated list, kept as entered.
	Needs     string    `db:"needs" json:"needs"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NeedsList splits Needs into trimmed, non-empty entries.
func (c *ReliefCamp) NeedsList() []string {
	var out []string
	for _, n := range strings.Split(c.Needs, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
