package routing

import (
	"context"
	"fmt"
	"log"
)

type frontierItem struct {
	station   Station
	path      []Station
	durations []int
	duration  int
}

func extendPath(path []Station, next Station) []Station {
	out := make([]Station, len(path), len(path)+1)
	copy(out, path)
	return append(out, next)
}

func extendDurations(durations []int, next int) []int {
	out := make([]int, len(durations), len(durations)+1)
	copy(out, durations)
	return append(out, next)
}

// FewestHops finds a route with the fewest connections between source and
// destination using breadth-first search. Durations are ignored for the search
// but summed into the returned route. found is false when no route exists.
func (n *Network) FewestHops(ctx context.Context, source, destination string) (Route, bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	start, err := n.station(source)
	if err != nil {
		return Route{}, false, fmt.Errorf("fewest hops %s -> %s: %w", source, destination, err)
	}
	if _, err := n.station(destination); err != nil {
		return Route{}, false, fmt.Errorf("fewest hops %s -> %s: %w", source, destination, err)
	}

	queue := []frontierItem{{station: start, path: []Station{start}, durations: []int{}}}
	visited := make(map[string]bool)
	expansions := 0

	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return Route{}, false, fmt.Errorf("fewest hops %s -> %s: %w", source, destination, err)
		}

		current := queue[head]
		queue[head] = frontierItem{}

		if current.station.Code == destination {
			log.Printf("BFS %s -> %s: %d hops after %d expansions", source, destination, len(current.path)-1, expansions)
			return Route{Stations: current.path, Durations: current.durations, TotalDuration: current.duration}, true, nil
		}
		if visited[current.station.Code] {
			continue
		}
		visited[current.station.Code] = true
		expansions++

		for _, nb := range n.adjacency[current.station.Code] {
			if visited[nb.Station.Code] {
				continue
			}
			queue = append(queue, frontierItem{
				station:   nb.Station,
				path:      extendPath(current.path, nb.Station),
				durations: extendDurations(current.durations, nb.Duration),
				duration:  current.duration + nb.Duration,
			})
		}
	}

	log.Printf("BFS %s -> %s: no route after %d expansions", source, destination, expansions)
	return Route{}, false, nil
}
