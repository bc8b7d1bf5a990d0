package preprocessing

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	"metro-route-server/routing"
)

// LoadCSV builds a network from stations.csv (code,name,line) and
// connections.csv (from,to,duration) in dir. Rows are applied in file order.
func LoadCSV(dir string) (*routing.Network, error) {
	network := routing.NewNetwork()

	err := forEachRow(filepath.Join(dir, "stations.csv"), "stations.csv", func(_ int, get func(string) string) error {
		return network.AddStation(get("code"), get("name"), get("line"))
	})
	if err != nil {
		return nil, err
	}

	err = forEachRow(filepath.Join(dir, "connections.csv"), "connections.csv", func(_ int, get func(string) string) error {
		from, to := get("from"), get("to")
		if from == "" || to == "" {
			return fmt.Errorf("missing endpoint (from=%q to=%q)", from, to)
		}
		duration, err := strconv.Atoi(get("duration"))
		if err != nil {
			return fmt.Errorf("duration %q: %w", get("duration"), err)
		}
		return network.AddConnection(from, to, duration)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded network from %s: %d stations, %d connections", dir, network.StationCount(), network.ConnectionCount())
	return network, nil
}
