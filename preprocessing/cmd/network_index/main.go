package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"metro-route-server/preprocessing"
	"metro-route-server/routing"
)

type networkDump struct {
	Stations    []routing.Station             `json:"stations"`
	Lines       map[string][]string           `json:"lines"`
	Adjacency   map[string][]routing.Neighbor `json:"adjacency"`
	Connections []routing.Connection          `json:"connections"`
	Summary     map[string]int                `json:"summary"`
}

func main() {
	var format, source, out string
	flag.StringVar(&format, "format", preprocessing.FORMAT_CSV, "Network source format: csv, gtfs or sqlite")
	flag.StringVar(&source, "source", "data", "CSV directory, GTFS directory or SQLite file")
	flag.StringVar(&out, "out", "preprocessing/cache/network_index.json", "Path to write JSON dump of the network")
	flag.Parse()

	log.Printf("Loading %s network from %s...", format, source)
	network, err := preprocessing.LoadNetwork(context.Background(), format, source)
	if err != nil {
		log.Fatalf("failed to load network: %v", err)
	}

	dump, err := buildDump(network)
	if err != nil {
		log.Fatalf("failed to build network dump: %v", err)
	}
	if err := writeDump(out, dump); err != nil {
		log.Fatalf("failed to write network dump: %v", err)
	}

	fmt.Printf("Network index written to %s\n", out)
	fmt.Printf("Summary: stations=%d connections=%d lines=%d\n",
		dump.Summary["stations"], dump.Summary["connections"], dump.Summary["lines"])
}

// buildDump collects the stations, adjacency lists and connections of network
func buildDump(network *routing.Network) (networkDump, error) {
	stations := network.Stations()
	adjacency := make(map[string][]routing.Neighbor, len(stations))
	for _, s := range stations {
		neighbors, err := network.NeighborsOf(s.Code)
		if err != nil {
			return networkDump{}, fmt.Errorf("neighbors of %s: %w", s.Code, err)
		}
		adjacency[s.Code] = neighbors
	}

	lines := network.Lines()
	return networkDump{
		Stations:    stations,
		Lines:       lines,
		Adjacency:   adjacency,
		Connections: network.Connections(),
		Summary: map[string]int{
			"stations":    network.StationCount(),
			"connections": network.ConnectionCount(),
			"lines":       len(lines),
		},
	}, nil
}

func writeDump(out string, dump networkDump) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", out, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&dump); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
