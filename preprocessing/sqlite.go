package preprocessing

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"metro-route-server/routing"

	_ "modernc.org/sqlite"
)

const (
	stationsQuery    = `SELECT code, name, line FROM stations ORDER BY rowid`
	connectionsQuery = `SELECT from_code, to_code, duration FROM connections ORDER BY rowid`
)

// LoadSQLite reads the stations and connections tables of a SQLite database
func LoadSQLite(ctx context.Context, dbPath string) (*routing.Network, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	network, err := ReadNetwork(ctx, db)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded network from SQLite %s: %d stations, %d connections",
		dbPath, network.StationCount(), network.ConnectionCount())
	return network, nil
}

// ReadNetwork builds a network from an open database handle
func ReadNetwork(ctx context.Context, db *sql.DB) (*routing.Network, error) {
	network := routing.NewNetwork()

	rows, err := db.QueryContext(ctx, stationsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code, name, line sql.NullString
		if err := rows.Scan(&code, &name, &line); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		if err := network.AddStation(code.String, name.String, line.String); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stations: %w", err)
	}
	rows.Close()

	conns, err := db.QueryContext(ctx, connectionsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer conns.Close()

	for conns.Next() {
		var from, to string
		var duration int
		if err := conns.Scan(&from, &to, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		if err := network.AddConnection(from, to, duration); err != nil {
			return nil, err
		}
	}
	if err := conns.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	return network, nil
}
