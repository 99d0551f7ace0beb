// Package campfile reads relief camp directories kept as YAML by district coordinators.
//
//	camps:
//	  - name: St. Mary's College
//	    district: Kandy
//	    location_description: Main hall, Peradeniya Rd
//	    capacity: 250
//	    current_occupancy: 180
//	    needs: [drinking water, mats]
package campfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the document root.
type File struct {
	Camps []Entry `yaml:"camps"`
}

// Entry is one camp as written by a coordinator. Needs may be a list or a
// comma-separated string.
type Entry struct {
	Name                string `yaml:"name"`
	District            string `yaml:"district"`
	LocationDescription string `yaml:"location_description"`
	Capacity            *int   `yaml:"capacity"`
	CurrentOccupancy    *int   `yaml:"current_occupancy"`
	Needs               Needs  `yaml:"needs"`
	Active              *bool  `yaml:"is_active"`
}

// Needs accepts either a YAML sequence or a scalar.
type Needs []string

func (n *Needs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*n = splitNeeds(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*n = items
		return nil
	}
	return fmt.Errorf("line %d: needs must be a list or a string", value.Line)
}

func (n Needs) String() string {
	out := make([]string, 0, len(n))
	for _, s := range n {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

// Payload converts the entry into the raw field map accepted by the camp decoder.
// Absent keys stay absent so that the decoder reports them.
func (e Entry) Payload() map[string]any {
	raw := map[string]any{
		"name":                 e.Name,
		"district":             e.District,
		"location_description": e.LocationDescription,
		"needs":                e.Needs.String(),
	}
	if e.Capacity != nil {
		raw["capacity"] = *e.Capacity
	}
	if e.CurrentOccupancy != nil {
		raw["current_occupancy"] = *e.CurrentOccupancy
	}
	if e.Active != nil {
		raw["is_active"] = *e.Active
	}
	return raw
}

// Parse decodes a camp file. Unknown keys are rejected to catch typos.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &File{}, nil
		}
		return nil, fmt.Errorf("parse camp file: %w", err)
	}
	return &f, nil
}

// Load reads and parses the camp file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open camp file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

func splitNeeds(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
