package routing

import "strings"

// Route is an ordered walk from source to destination inclusive
type Route struct {
	Stations      []Station
	Durations     []int // Duration of each traversed connection; len(Durations) == Hops()
	TotalDuration int   // Sum of Durations, in minutes
}

func (r Route) Hops() int {
	if len(r.Stations) == 0 {
		return 0
	}
	return len(r.Stations) - 1
}

func (r Route) Codes() []string {
	codes := make([]string, len(r.Stations))
	for i, s := range r.Stations {
		codes[i] = s.Code
	}
	return codes
}

// Lines returns the lines travelled, collapsing consecutive repeats
func (r Route) Lines() []string {
	lines := make([]string, 0)
	for _, s := range r.Stations {
		if len(lines) == 0 || lines[len(lines)-1] != s.Line {
			lines = append(lines, s.Line)
		}
	}
	return lines
}

// Transfers counts line changes between consecutive stations.
// FewestHops does not minimise this value.
func (r Route) Transfers() int {
	lines := r.Lines()
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}

func (r Route) String() string {
	names := make([]string, len(r.Stations))
	for i, s := range r.Stations {
		names[i] = s.String()
	}
	return strings.Join(names, " -> ")
}
