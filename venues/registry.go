package venues

import (
	"fmt"
	"sort"
)

// Coordinates is a stadium location
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Registry maps team codes to stadium coordinates.
// Built once at startup and never mutated afterwards.
type Registry struct {
	stadiums map[string]Coordinates
}

// NewRegistry creates a registry seeded with every NFL stadium.
// Teams sharing a stadium (NYG/NYJ, LAC/LA) carry the same coordinates.
func NewRegistry() *Registry {
	return &Registry{
		stadiums: map[string]Coordinates{
			"BAL": {39.278088, -76.623322},
			"BUF": {42.773773, -78.787460},
			"CAR": {35.225845, -80.853607},
			"CHI": {41.862366, -87.617256},
			"CIN": {39.096306, -84.516846},
			"CLE": {41.506054, -81.699548},
			"DEN": {39.744129, -105.020828},
			"GB":  {44.501308, -88.062317},
			"JAX": {30.323471, -81.636528},
			"KC":  {39.048786, -94.484566},
			"MIA": {25.957960, -80.239311},
			"NYG": {40.813778, -74.074310},
			"NYJ": {40.813778, -74.074310},
			"NE":  {42.091, -71.264},
			"PHI": {39.900898, -75.168098},
			"PIT": {40.446903, -80.015823},
			"SF":  {37.403158, -121.969831},
			"SEA": {47.595097, -122.332245},
			"TB":  {27.975958, -82.503693},
			"TEN": {36.166479, -86.771290},
			"WAS": {38.90778, -76.86444},
			"ARI": {33.527283, -112.263275},
			"DAL": {32.747841, -97.093628},
			"ATL": {33.755489, -84.401993},
			"DET": {42.340115, -83.046341},
			"HOU": {29.684860, -95.411667},
			"IND": {39.759991, -86.163712},
			"LV":  {36.090794, -115.183952},
			"LAC": {33.953587, -118.339630},
			"LA":  {33.953587, -118.339630},
			"MIN": {44.973774, -93.258736},
			"NO":  {29.951439, -90.081970},
		},
	}
}

// Lookup returns the stadium coordinates for a team code.
// Every team on the schedule must be registered; an unknown code is an error.
func (r *Registry) Lookup(team string) (Coordinates, error) {
	coords, exists := r.stadiums[team]
	if !exists {
		return Coordinates{}, fmt.Errorf("no venue coordinates for team %q", team)
	}
	return coords, nil
}

// Teams returns all registered team codes, sorted
func (r *Registry) Teams() []string {
	teams := make([]string, 0, len(r.stadiums))
	for team := range r.stadiums {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}
