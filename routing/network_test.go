package routing

import (
	"errors"
	"testing"
)

func TestAddStation(t *testing.T) {
	n := NewNetwork()
	if err := n.AddStation("K1", "Kızılay", "Kırmızı Hat"); err != nil {
		t.Fatalf("AddStation returned error: %v", err)
	}
	if err := n.AddStation(" K2 ", "Ulus", "Kırmızı Hat"); err != nil {
		t.Fatalf("AddStation returned error: %v", err)
	}

	s, err := n.Station("K2")
	if err != nil {
		t.Fatalf("Station(K2) returned error: %v", err)
	}
	if s.Name != "Ulus" || s.Line != "Kırmızı Hat" {
		t.Errorf("unexpected station %+v", s)
	}
	if n.StationCount() != 2 {
		t.Errorf("expected 2 stations, got %d", n.StationCount())
	}
}

func TestAddStationErrors(t *testing.T) {
	n := NewNetwork()
	if err := n.AddStation("K1", "Kızılay", "Kırmızı Hat"); err != nil {
		t.Fatalf("AddStation returned error: %v", err)
	}

	tests := []struct {
		name string
		code string
		want error
	}{
		{"empty code", "", ErrEmptyCode},
		{"blank code", "   ", ErrEmptyCode},
		{"duplicate", "K1", ErrDuplicateStation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := n.AddStation(tc.code, "Other", "Mavi Hat")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	s, _ := n.Station("K1")
	if s.Name != "Kızılay" {
		t.Errorf("duplicate registration overwrote the station: %+v", s)
	}
}

func TestStationUnknown(t *testing.T) {
	n := NewNetwork()
	if _, err := n.Station("X9"); !errors.Is(err, ErrUnknownStation) {
		t.Fatalf("expected ErrUnknownStation, got %v", err)
	}
	if n.HasStation("X9") {
		t.Error("lookup fabricated a station")
	}
	if n.StationCount() != 0 {
		t.Errorf("lookup changed the station count to %d", n.StationCount())
	}
}

func TestAddConnection(t *testing.T) {
	n := NewNetwork()
	mustAddStations(t, n, "A", "B", "C")

	if err := n.AddConnection("A", "B", 4); err != nil {
		t.Fatalf("AddConnection returned error: %v", err)
	}
	if err := n.AddConnection("A", "C", 7); err != nil {
		t.Fatalf("AddConnection returned error: %v", err)
	}
	if err := n.AddConnection("A", "B", 1); err != nil {
		t.Fatalf("AddConnection returned error: %v", err)
	}

	neighbors, err := n.NeighborsOf("A")
	if err != nil {
		t.Fatalf("NeighborsOf returned error: %v", err)
	}
	want := []Neighbor{
		{Station: Station{Code: "B", Name: "B", Line: "L"}, Duration: 4},
		{Station: Station{Code: "C", Name: "C", Line: "L"}, Duration: 7},
		{Station: Station{Code: "B", Name: "B", Line: "L"}, Duration: 1},
	}
	if len(neighbors) != len(want) {
		t.Fatalf("expected %d neighbors, got %v", len(want), neighbors)
	}
	for i := range want {
		if neighbors[i] != want[i] {
			t.Errorf("neighbor %d: expected %+v, got %+v", i, want[i], neighbors[i])
		}
	}

	back, _ := n.NeighborsOf("B")
	if len(back) != 2 || back[0].Station.Code != "A" || back[0].Duration != 4 || back[1].Duration != 1 {
		t.Errorf("reverse adjacency wrong: %+v", back)
	}

	if n.ConnectionCount() != 3 {
		t.Errorf("expected 3 connections, got %d", n.ConnectionCount())
	}
	if d, ok := n.ConnectionDuration("B", "A"); !ok || d != 1 {
		t.Errorf("expected cheapest duration 1, got %d (%v)", d, ok)
	}
	if n.HasConnection("B", "C") {
		t.Error("B and C are not connected")
	}
}

func TestAddConnectionErrors(t *testing.T) {
	n := NewNetwork()
	mustAddStations(t, n, "A", "B")

	tests := []struct {
		name     string
		a, b     string
		duration int
		want     error
	}{
		{"unknown first", "X", "B", 1, ErrUnknownStation},
		{"unknown second", "A", "Y", 1, ErrUnknownStation},
		{"negative duration", "A", "B", -1, ErrInvalidDuration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := n.AddConnection(tc.a, tc.b, tc.duration); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if n.ConnectionCount() != 0 {
		t.Errorf("failed calls stored %d connections", n.ConnectionCount())
	}
	if n.HasStation("X") || n.HasStation("Y") {
		t.Error("failed connection fabricated a station")
	}
	if err := n.AddConnection("A", "B", 0); err != nil {
		t.Errorf("zero duration should be accepted: %v", err)
	}
}

func TestNeighborsOfReturnsCopy(t *testing.T) {
	n := NewNetwork()
	mustAddStations(t, n, "A", "B")
	mustConnect(t, n, "A", "B", 3)

	neighbors, _ := n.NeighborsOf("A")
	neighbors[0].Duration = 99

	again, _ := n.NeighborsOf("A")
	if again[0].Duration != 3 {
		t.Errorf("adjacency list was mutated through NeighborsOf: %+v", again)
	}
	if _, err := n.NeighborsOf("Z"); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("expected ErrUnknownStation, got %v", err)
	}
}

func TestFreeze(t *testing.T) {
	n := NewNetwork()
	mustAddStations(t, n, "A", "B")
	n.Freeze()

	if !n.Frozen() {
		t.Fatal("network should report frozen")
	}
	if err := n.AddStation("C", "C", "L"); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
	if err := n.AddConnection("A", "B", 1); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
}

func TestStationsAndLines(t *testing.T) {
	n := NewNetwork()
	for _, s := range []Station{
		{"M2", "Anıttepe", "Mavi Hat"},
		{"K1", "Kızılay", "Kırmızı Hat"},
		{"M1", "AŞTİ", "Mavi Hat"},
	} {
		if err := n.AddStation(s.Code, s.Name, s.Line); err != nil {
			t.Fatalf("AddStation returned error: %v", err)
		}
	}

	got := n.Stations()
	if len(got) != 3 || got[0].Code != "K1" || got[1].Code != "M1" || got[2].Code != "M2" {
		t.Errorf("stations not sorted by code: %v", got)
	}

	lines := n.Lines()
	if mavi := lines["Mavi Hat"]; len(mavi) != 2 || mavi[0] != "M2" || mavi[1] != "M1" {
		t.Errorf("expected Mavi Hat in registration order, got %v", mavi)
	}
}

func TestConnections(t *testing.T) {
	n := NewNetwork()
	mustAddStations(t, n, "A", "B", "C")
	mustConnect(t, n, "A", "B", 4)
	mustConnect(t, n, "B", "C", 6)
	mustConnect(t, n, "A", "B", 2)
	mustConnect(t, n, "C", "C", 1)

	got := n.Connections()
	if len(got) != 4 {
		t.Fatalf("expected 4 connections, got %v", got)
	}
	total := 0
	for _, c := range got {
		total += c.Duration
	}
	if total != 13 {
		t.Errorf("expected durations summing to 13, got %d (%v)", total, got)
	}
}

func TestValidateRoute(t *testing.T) {
	n := linearNetwork(t)
	mustConnect(t, n, "A", "B", 1)

	tests := []struct {
		name    string
		route   Route
		wantErr bool
	}{
		{"valid", withDurations(routeOf(n, 18, "A", "B", "C", "D"), 4, 6, 8), false},
		{"single station", routeOf(n, 0, "B"), false},
		{"parallel connection", withDurations(routeOf(n, 4, "A", "B"), 4), false},
		{"cheaper parallel connection", withDurations(routeOf(n, 1, "A", "B"), 1), false},
		{"empty", Route{}, true},
		{"fabricated hop", routeOf(n, 12, "A", "C"), true},
		{"unknown station", Route{Stations: []Station{{Code: "Z"}}}, true},
		{"total too small", withDurations(routeOf(n, 3, "A", "B"), 4), true},
		{"total too large", withDurations(routeOf(n, 9, "A", "B"), 4), true},
		{"duration not stored", withDurations(routeOf(n, 5, "A", "B"), 5), true},
		{"missing durations", withDurations(routeOf(n, 4, "A", "B")), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := n.ValidateRoute(tc.route)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func mustAddStations(t *testing.T, n *Network, codes ...string) {
	t.Helper()
	for _, code := range codes {
		if err := n.AddStation(code, code, "L"); err != nil {
			t.Fatalf("AddStation(%s) returned error: %v", code, err)
		}
	}
}

func mustConnect(t *testing.T, n *Network, a, b string, duration int) {
	t.Helper()
	if err := n.AddConnection(a, b, duration); err != nil {
		t.Fatalf("AddConnection(%s, %s) returned error: %v", a, b, err)
	}
}

// linearNetwork builds A-B-C-D with durations 4, 6, 8
func linearNetwork(t *testing.T) *Network {
	t.Helper()
	n := NewNetwork()
	mustAddStations(t, n, "A", "B", "C", "D")
	mustConnect(t, n, "A", "B", 4)
	mustConnect(t, n, "B", "C", 6)
	mustConnect(t, n, "C", "D", 8)
	return n
}

// routeOf builds a route over codes, taking the cheapest stored duration for each hop
func routeOf(n *Network, total int, codes ...string) Route {
	r := Route{TotalDuration: total, Durations: []int{}}
	for i, c := range codes {
		s, err := n.Station(c)
		if err != nil {
			s = Station{Code: c}
		}
		r.Stations = append(r.Stations, s)
		if i > 0 {
			d, _ := n.ConnectionDuration(codes[i-1], c)
			r.Durations = append(r.Durations, d)
		}
	}
	return r
}

func withDurations(r Route, durations ...int) Route {
	r.Durations = durations
	return r
}
