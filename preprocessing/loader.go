package preprocessing

import (
	"context"
	"fmt"
	"strings"

	"metro-route-server/routing"
)

const (
	FORMAT_CSV    = "csv"
	FORMAT_GTFS   = "gtfs"
	FORMAT_SQLITE = "sqlite"
)

// LoadNetwork builds a network from source according to format
func LoadNetwork(ctx context.Context, format, source string) (*routing.Network, error) {
	switch strings.ToLower(format) {
	case FORMAT_CSV, "":
		return LoadCSV(source)
	case FORMAT_GTFS:
		idx, err := LoadGTFS(source)
		if err != nil {
			return nil, fmt.Errorf("failed to load GTFS: %w", err)
		}
		return idx.BuildNetwork()
	case FORMAT_SQLITE:
		return LoadSQLite(ctx, source)
	default:
		return nil, fmt.Errorf("unknown network format %q", format)
	}
}
