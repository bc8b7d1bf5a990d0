package routing

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Neighbor is one entry of a station's adjacency list
type Neighbor struct {
	Station  Station `json:"station"`
	Duration int     `json:"durationMin"` // Travel time in minutes
}

// Connection is an undirected edge as it appears in source data
type Connection struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Duration int    `json:"durationMin"`
}

// Network is an undirected multigraph of stations.
// Writers are serialised; searches hold the read lock for their whole run.
type Network struct {
	mu          sync.RWMutex
	stations    map[string]Station    // Station code -> station
	adjacency   map[string][]Neighbor // Station code -> neighbors in insertion order
	order       []string              // Station codes in registration order
	connections int
	frozen      bool
}

func NewNetwork() *Network {
	return &Network{
		stations:  make(map[string]Station),
		adjacency: make(map[string][]Neighbor),
	}
}

func (n *Network) AddStation(code, name, line string) error {
	station, err := NewStation(code, name, line)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return fmt.Errorf("add station %q: %w", station.Code, ErrFrozen)
	}
	if existing, ok := n.stations[station.Code]; ok {
		return fmt.Errorf("add station %q (%s): %w: already registered as %q on %s",
			station.Code, station.Name, ErrDuplicateStation, existing.Name, existing.Line)
	}

	n.stations[station.Code] = station
	n.adjacency[station.Code] = make([]Neighbor, 0)
	n.order = append(n.order, station.Code)
	return nil
}

// AddConnection stores an undirected connection between two registered stations.
// Parallel connections are kept as separate entries.
func (n *Network) AddConnection(codeA, codeB string, duration int) error {
	codeA = strings.TrimSpace(codeA)
	codeB = strings.TrimSpace(codeB)
	if duration < 0 {
		return fmt.Errorf("connect %s -> %s: %w: %d", codeA, codeB, ErrInvalidDuration, duration)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return fmt.Errorf("connect %s -> %s: %w", codeA, codeB, ErrFrozen)
	}
	stationA, ok := n.stations[codeA]
	if !ok {
		return fmt.Errorf("connect %s -> %s: %w %q", codeA, codeB, ErrUnknownStation, codeA)
	}
	stationB, ok := n.stations[codeB]
	if !ok {
		return fmt.Errorf("connect %s -> %s: %w %q", codeA, codeB, ErrUnknownStation, codeB)
	}

	n.adjacency[codeA] = append(n.adjacency[codeA], Neighbor{Station: stationB, Duration: duration})
	n.adjacency[codeB] = append(n.adjacency[codeB], Neighbor{Station: stationA, Duration: duration})
	n.connections++
	return nil
}

// Freeze ends the construction phase. Later mutations fail with ErrFrozen.
func (n *Network) Freeze() {
	n.mu.Lock()
	n.frozen = true
	n.mu.Unlock()
}

func (n *Network) Frozen() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.frozen
}

func (n *Network) Station(code string) (Station, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.station(code)
}

func (n *Network) station(code string) (Station, error) {
	s, ok := n.stations[code]
	if !ok {
		return Station{}, fmt.Errorf("%w %q", ErrUnknownStation, code)
	}
	return s, nil
}

func (n *Network) HasStation(code string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.stations[code]
	return ok
}

// Stations returns every station sorted by code
func (n *Network) Stations() []Station {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Station, 0, len(n.stations))
	for _, s := range n.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Lines groups station codes by line, in registration order
func (n *Network) Lines() map[string][]string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	lines := make(map[string][]string)
	for _, code := range n.order {
		s := n.stations[code]
		lines[s.Line] = append(lines[s.Line], code)
	}
	return lines
}

// NeighborsOf returns a copy of the adjacency list of code, in insertion order
func (n *Network) NeighborsOf(code string) ([]Neighbor, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, err := n.station(code); err != nil {
		return nil, err
	}
	neighbors := n.adjacency[code]
	out := make([]Neighbor, len(neighbors))
	copy(out, neighbors)
	return out, nil
}

func (n *Network) StationCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.stations)
}

func (n *Network) ConnectionCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.connections
}

func (n *Network) HasConnection(codeA, codeB string) bool {
	_, ok := n.ConnectionDuration(codeA, codeB)
	return ok
}

// ConnectionDuration returns the smallest duration among the connections joining a and b
func (n *Network) ConnectionDuration(codeA, codeB string) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.connectionDuration(codeA, codeB)
}

func (n *Network) connectionDuration(codeA, codeB string) (int, bool) {
	best, found := 0, false
	for _, nb := range n.adjacency[codeA] {
		if nb.Station.Code != codeB {
			continue
		}
		if !found || nb.Duration < best {
			best = nb.Duration
			found = true
		}
	}
	return best, found
}

// ValidateRoute checks that every hop of route is a stored connection with
// the recorded duration, and that the durations add up to TotalDuration.
func (n *Network) ValidateRoute(route Route) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(route.Stations) == 0 {
		return fmt.Errorf("validate route: empty route")
	}
	if len(route.Durations) != route.Hops() {
		return fmt.Errorf("validate route: %d durations for %d hops", len(route.Durations), route.Hops())
	}
	total := 0
	for i, s := range route.Stations {
		if _, err := n.station(s.Code); err != nil {
			return fmt.Errorf("validate route: stop %d: %w", i, err)
		}
		if i == 0 {
			continue
		}
		prev := route.Stations[i-1].Code
		d := route.Durations[i-1]
		if !n.hasConnectionOf(prev, s.Code, d) {
			return fmt.Errorf("validate route: no %d min connection between %s and %s", d, prev, s.Code)
		}
		total += d
	}
	if total != route.TotalDuration {
		return fmt.Errorf("validate route: total duration %d does not match hop durations summing to %d",
			route.TotalDuration, total)
	}
	return nil
}

func (n *Network) hasConnectionOf(codeA, codeB string, duration int) bool {
	for _, nb := range n.adjacency[codeA] {
		if nb.Station.Code == codeB && nb.Duration == duration {
			return true
		}
	}
	return false
}

func (n *Network) Connections() []Connection {
	n.mu.RLock()
	defer n.mu.RUnlock()

	// Every connection is stored twice; emit each once by pairing entries per endpoint.
	out := make([]Connection, 0, n.connections)
	seen := make(map[[2]string]int)
	for _, code := range n.order {
		for _, nb := range n.adjacency[code] {
			key := [2]string{code, nb.Station.Code}
			if seen[key] > 0 {
				seen[key]--
				continue
			}
			out = append(out, Connection{From: code, To: nb.Station.Code, Duration: nb.Duration})
			reverse := [2]string{nb.Station.Code, code}
			seen[reverse]++
		}
	}
	return out
}
