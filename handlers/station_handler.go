package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"metro-route-server/routing"

	"github.com/gorilla/mux"
)

type StationHandler struct {
	network *routing.Network
}

func NewStationHandler(network *routing.Network) *StationHandler {
	return &StationHandler{
		network: network,
	}
}

type LineResponse struct {
	Line     string   `json:"line"`
	Stations []string `json:"stations"`
}

func (h *StationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/stations", h.ListStations).Methods("GET")
	router.HandleFunc("/stations/{code}", h.GetStation).Methods("GET")
	router.HandleFunc("/stations/{code}/neighbors", h.GetNeighbors).Methods("GET")
	router.HandleFunc("/lines", h.ListLines).Methods("GET")
}

func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations := h.network.Stations()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stations": stations,
		"count":    len(stations),
	})
}

func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	station, err := h.network.Station(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

func (h *StationHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	neighbors, err := h.network.NeighborsOf(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station":   code,
		"neighbors": neighbors,
		"count":     len(neighbors),
	})
}

func (h *StationHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	byLine := h.network.Lines()
	lines := make([]LineResponse, 0, len(byLine))
	for line, codes := range byLine {
		lines = append(lines, LineResponse{Line: line, Stations: codes})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Line < lines[j].Line })

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"count": len(lines),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, routing.ErrUnknownStation) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
