package routing

import (
	"fmt"
	"strings"
)

// Station represents a stop in the metro network.
// Identity is the Code: two stations with the same code are the same station.
type Station struct {
	Code string `json:"code"` // Unique identifier, e.g. "K1"
	Name string `json:"name"` // Display name
	Line string `json:"line"` // Line the station belongs to
}

func NewStation(code, name, line string) (Station, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Station{}, fmt.Errorf("new station %q: %w", name, ErrEmptyCode)
	}
	return Station{Code: code, Name: name, Line: line}, nil
}

func (s Station) Equal(other Station) bool { return s.Code == other.Code }

func (s Station) Less(other Station) bool { return s.Code < other.Code }

func (s Station) String() string {
	if s.Name == "" {
		return s.Code
	}
	return s.Name
}
