package trip

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoadFile reads and validates a trip JSON document.
func LoadFile(path string) (*Trip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load trip %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a trip document, stamps segment day indexes and validates it.
func Parse(r io.Reader) (*Trip, error) {
	var t Trip
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode trip: %w", err)
	}
	for i := range t.Days {
		for j := range t.Days[i].DrivingRoutes {
			t.Days[i].DrivingRoutes[j].DayIndex = i
		}
	}
	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks required fields, coordinate ranges and id uniqueness.
func Validate(t *Trip) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid trip: %w", err)
	}
	seen := make(map[string]bool)
	for _, d := range t.Days {
		for _, w := range d.Activities {
			if seen[w.ID] {
				return fmt.Errorf("invalid trip %q: duplicate waypoint id %q", t.ID, w.ID)
			}
			seen[w.ID] = true
		}
	}
	groups := make(map[string]bool)
	for _, g := range t.RouteGroups {
		if g.ID == "shared" {
			return fmt.Errorf("invalid trip %q: route group id %q is reserved", t.ID, g.ID)
		}
		if groups[g.ID] {
			return fmt.Errorf("invalid trip %q: duplicate route group id %q", t.ID, g.ID)
		}
		groups[g.ID] = true
	}
	return nil
}
