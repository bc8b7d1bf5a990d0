package routing

import (
	"github.com/google/uuid"
)

const (
	KIND_FEWEST_HOPS = "fewest-hops"
	KIND_FASTEST     = "fastest"
)

type RouteRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type RouteStep struct {
	From        Station `json:"from"`
	To          Station `json:"to"`
	DurationMin int     `json:"durationMin"`
	Line        string  `json:"line"`
	Transfer    bool    `json:"transfer"`
}

// Response consumed by the map and console clients
type RouteResponse struct {
	RequestID        string      `json:"requestId"`
	Kind             string      `json:"kind"`
	Found            bool        `json:"found"`
	Stations         []Station   `json:"stations"`
	Steps            []RouteStep `json:"steps"`
	Hops             int         `json:"hops"`
	Transfers        int         `json:"transfers"`
	Lines            []string    `json:"lines"`
	TotalDurationMin int         `json:"totalDurationMin"`
	Description      string      `json:"description"`
}

// PrepareResponse shapes a search result for clients. Step durations are the
// ones the search traversed, so they always add up to TotalDurationMin.
func PrepareResponse(kind string, route Route, found bool) RouteResponse {
	resp := RouteResponse{
		RequestID: uuid.NewString(),
		Kind:      kind,
		Found:     found,
		Stations:  make([]Station, 0),
		Steps:     make([]RouteStep, 0),
		Lines:     make([]string, 0),
	}
	if !found {
		resp.Description = "no route"
		return resp
	}

	resp.Stations = append(resp.Stations, route.Stations...)
	resp.Hops = route.Hops()
	resp.Transfers = route.Transfers()
	resp.Lines = route.Lines()
	resp.TotalDurationMin = route.TotalDuration
	resp.Description = route.String()

	for i := 1; i < len(route.Stations); i++ {
		from, to := route.Stations[i-1], route.Stations[i]
		d := 0
		if i-1 < len(route.Durations) {
			d = route.Durations[i-1]
		}
		resp.Steps = append(resp.Steps, RouteStep{
			From:        from,
			To:          to,
			DurationMin: d,
			Line:        to.Line,
			Transfer:    from.Line != to.Line,
		})
	}
	return resp
}
