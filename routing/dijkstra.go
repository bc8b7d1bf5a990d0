package routing

import (
	"container/heap"
	"context"
	"fmt"
	"log"
)

type PriorityQueueItem struct {
	Duration  int
	Station   Station
	Path      []Station
	Durations []int // Per-hop durations along Path
	seq       int   // Push order, last tie-break
	Index     int
}

// PriorityQueue orders items by accumulated duration, then by station code
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Duration != pq[j].Duration {
		return pq[i].Duration < pq[j].Duration
	}
	if !pq[i].Station.Equal(pq[j].Station) {
		return pq[i].Station.Less(pq[j].Station)
	}
	return pq[i].seq < pq[j].seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// FastestRoute finds the route with the smallest total duration using a
// uniform-cost search. found is false when no route exists.
func (n *Network) FastestRoute(ctx context.Context, source, destination string) (Route, bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	start, err := n.station(source)
	if err != nil {
		return Route{}, false, fmt.Errorf("fastest route %s -> %s: %w", source, destination, err)
	}
	if _, err := n.station(destination); err != nil {
		return Route{}, false, fmt.Errorf("fastest route %s -> %s: %w", source, destination, err)
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &PriorityQueueItem{Duration: 0, Station: start, Path: []Station{start}, Durations: []int{}, seq: seq})

	visited := make(map[string]bool)
	pops := 0

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Route{}, false, fmt.Errorf("fastest route %s -> %s: %w", source, destination, err)
		}

		current := heap.Pop(pq).(*PriorityQueueItem)
		pops++

		if current.Station.Code == destination {
			log.Printf("Dijkstra %s -> %s: %d min, %d hops after %d pops",
				source, destination, current.Duration, len(current.Path)-1, pops)
			return Route{Stations: current.Path, Durations: current.Durations, TotalDuration: current.Duration}, true, nil
		}
		if visited[current.Station.Code] {
			continue
		}
		visited[current.Station.Code] = true

		for _, nb := range n.adjacency[current.Station.Code] {
			if visited[nb.Station.Code] {
				continue
			}
			seq++
			heap.Push(pq, &PriorityQueueItem{
				Duration:  current.Duration + nb.Duration,
				Station:   nb.Station,
				Path:      extendPath(current.Path, nb.Station),
				Durations: extendDurations(current.Durations, nb.Duration),
				seq:       seq,
			})
		}
	}

	log.Printf("Dijkstra %s -> %s: no route after %d pops", source, destination, pops)
	return Route{}, false, nil
}
