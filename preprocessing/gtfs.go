package preprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"metro-route-server/routing"
)

type GTFSStop struct {
	ID   string
	Name string
}

type GTFSRoute struct {
	ID        string
	ShortName string
}

type GTFSTrip struct {
	ID      string
	RouteID string
}

type GTFSStopTime struct {
	TripID       string
	StopID       string
	StopSequence int
	ArrivalSec   int // -1 when absent
	DepartureSec int // -1 when absent
}

type GTFSIndex struct {
	StopsByID       map[string]GTFSStop
	StopOrder       []string // stop_id in file order
	RoutesByID      map[string]GTFSRoute
	TripsByID       map[string]GTFSTrip
	TripOrder       []string                  // trip_id in file order
	StopTimesByTrip map[string][]GTFSStopTime // sorted by StopSequence asc
}

// LoadGTFS builds a minimal in-memory index from a GTFS directory.
// Required files: stops.txt, trips.txt, stop_times.txt. routes.txt is optional.
func LoadGTFS(dir string) (*GTFSIndex, error) {
	idx := &GTFSIndex{
		StopsByID:       make(map[string]GTFSStop),
		RoutesByID:      make(map[string]GTFSRoute),
		TripsByID:       make(map[string]GTFSTrip),
		StopTimesByTrip: make(map[string][]GTFSStopTime),
	}

	// 1) routes.txt
	routesPath := filepath.Join(dir, "routes.txt")
	if _, err := os.Stat(routesPath); err == nil {
		if err := loadRoutes(routesPath, idx); err != nil {
			return nil, err
		}
	} else {
		log.Printf("WARNING: %s not found, lines will use route_id", routesPath)
	}

	// 2) stops.txt
	if err := loadStops(filepath.Join(dir, "stops.txt"), idx); err != nil {
		return nil, err
	}

	// 3) trips.txt
	if err := loadTrips(filepath.Join(dir, "trips.txt"), idx); err != nil {
		return nil, err
	}

	// 4) stop_times.txt
	if err := loadStopTimes(filepath.Join(dir, "stop_times.txt"), idx); err != nil {
		return nil, err
	}

	for tripID := range idx.StopTimesByTrip {
		st := idx.StopTimesByTrip[tripID]
		sort.SliceStable(st, func(i, j int) bool { return st[i].StopSequence < st[j].StopSequence })
		idx.StopTimesByTrip[tripID] = st
	}

	return idx, nil
}

// forEachRow opens a GTFS/CSV file and calls fn with a header-aware getter per row
func forEachRow(path, label string, fn func(line int, get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", label, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", label, err)
	}
	h := headerIndex(header)

	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s row: %w", label, err)
		}
		line++

		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if err := fn(line, get); err != nil {
			return fmt.Errorf("%s line %d: %w", label, line, err)
		}
	}
	return nil
}

func loadRoutes(path string, idx *GTFSIndex) error {
	return forEachRow(path, "routes.txt", func(_ int, get func(string) string) error {
		route := GTFSRoute{ID: get("route_id"), ShortName: get("route_short_name")}
		if route.ID != "" {
			idx.RoutesByID[route.ID] = route
		}
		return nil
	})
}

func loadStops(path string, idx *GTFSIndex) error {
	return forEachRow(path, "stops.txt", func(_ int, get func(string) string) error {
		s := GTFSStop{ID: get("stop_id"), Name: get("stop_name")}
		if s.ID == "" {
			return nil
		}
		if _, ok := idx.StopsByID[s.ID]; !ok {
			idx.StopOrder = append(idx.StopOrder, s.ID)
		}
		idx.StopsByID[s.ID] = s
		return nil
	})
}

func loadTrips(path string, idx *GTFSIndex) error {
	return forEachRow(path, "trips.txt", func(_ int, get func(string) string) error {
		trip := GTFSTrip{ID: get("trip_id"), RouteID: get("route_id")}
		if trip.ID == "" {
			return nil
		}
		if _, ok := idx.TripsByID[trip.ID]; !ok {
			idx.TripOrder = append(idx.TripOrder, trip.ID)
		}
		idx.TripsByID[trip.ID] = trip
		return nil
	})
}

func loadStopTimes(path string, idx *GTFSIndex) error {
	return forEachRow(path, "stop_times.txt", func(_ int, get func(string) string) error {
		tripID := get("trip_id")
		stopID := get("stop_id")
		if tripID == "" || stopID == "" {
			return nil
		}
		seq, err := strconv.Atoi(get("stop_sequence"))
		if err != nil {
			return fmt.Errorf("stop_sequence %q: %w", get("stop_sequence"), err)
		}

		st := GTFSStopTime{
			TripID:       tripID,
			StopID:       stopID,
			StopSequence: seq,
			ArrivalSec:   parseGTFSTime(get("arrival_time")),
			DepartureSec: parseGTFSTime(get("departure_time")),
		}
		idx.StopTimesByTrip[tripID] = append(idx.StopTimesByTrip[tripID], st)
		return nil
	})
}

// parseGTFSTime converts HH:MM:SS (hours may exceed 23) to seconds, -1 if invalid
func parseGTFSTime(v string) int {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return -1
	}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return -1
		}
		if i > 0 && n > 59 {
			return -1
		}
		total = total*60 + n
	}
	return total
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		// strip a UTF-8 BOM left by spreadsheet exports
		m[strings.TrimPrefix(strings.TrimSpace(k), "\ufeff")] = i
	}
	return m
}

func (idx *GTFSIndex) lineOf(trip GTFSTrip) string {
	if r, ok := idx.RoutesByID[trip.RouteID]; ok && r.ShortName != "" {
		return r.ShortName
	}
	return trip.RouteID
}

// BuildNetwork turns the index into a routing network. Consecutive stops of
// every trip become connections; a pair seen in several trips is added once
// with its smallest duration.
func (idx *GTFSIndex) BuildNetwork() (*routing.Network, error) {
	lineByStop := make(map[string]string)
	for _, tripID := range idx.TripOrder {
		trip := idx.TripsByID[tripID]
		for _, st := range idx.StopTimesByTrip[tripID] {
			if _, ok := lineByStop[st.StopID]; !ok {
				lineByStop[st.StopID] = idx.lineOf(trip)
			}
		}
	}

	network := routing.NewNetwork()
	for _, stopID := range idx.StopOrder {
		stop := idx.StopsByID[stopID]
		if err := network.AddStation(stop.ID, stop.Name, lineByStop[stop.ID]); err != nil {
			return nil, err
		}
	}

	type pair struct{ a, b string }
	best := make(map[pair]int)
	order := make([]pair, 0)
	skipped := 0

	for _, tripID := range idx.TripOrder {
		stopTimes := idx.StopTimesByTrip[tripID]
		for i := 1; i < len(stopTimes); i++ {
			prev, cur := stopTimes[i-1], stopTimes[i]
			depart := prev.DepartureSec
			if depart < 0 {
				depart = prev.ArrivalSec
			}
			arrive := cur.ArrivalSec
			if arrive < 0 {
				arrive = cur.DepartureSec
			}
			if depart < 0 || arrive < 0 || arrive < depart {
				skipped++
				continue
			}
			minutes := (arrive - depart + 30) / 60

			key := pair{prev.StopID, cur.StopID}
			if key.b < key.a {
				key = pair{key.b, key.a}
			}
			if d, ok := best[key]; !ok {
				best[key] = minutes
				order = append(order, key)
			} else if minutes < d {
				best[key] = minutes
			}
		}
	}
	if skipped > 0 {
		log.Printf("WARNING: skipped %d GTFS hops with missing or negative times", skipped)
	}

	for _, key := range order {
		if err := network.AddConnection(key.a, key.b, best[key]); err != nil {
			return nil, fmt.Errorf("build network from GTFS: %w", err)
		}
	}

	log.Printf("Built network from GTFS: %d stations, %d connections", network.StationCount(), network.ConnectionCount())
	return network, nil
}
