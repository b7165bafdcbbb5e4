package api

import (
	"encoding/json"

	"github.com/matzehuels/chordviz/pkg/diagram"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// Request is the body of POST /v1/layout and POST /v1/render.
//
// Exactly one of Matrix and Observations is set. Observations are rows of
// raw measurements, one column per name, correlated on the server.
type Request struct {
	Names        []string        `json:"names,omitempty"`
	Matrix       [][]float64     `json:"matrix,omitempty"`
	Observations [][]float64     `json:"observations,omitempty"`
	Options      json.RawMessage `json:"options,omitempty"` // pipeline.Options, over the defaults
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	MatrixHash string          `json:"matrix_hash"`
	Layout     diagram.Layout  `json:"layout"`
	Warnings   []string        `json:"warnings,omitempty"`
	Stats      StatsResponse   `json:"stats"`
	Cached     bool            `json:"cached"`
	Options    *ResolvedColors `json:"options,omitempty"`
}

// ResolvedColors echoes the node colors in layout order, so that a client
// can render the returned layout later with the same colors.
type ResolvedColors struct {
	Colors []string `json:"colors"`
}

// StatsResponse reports what the pipeline did.
type StatsResponse struct {
	Variables       int `json:"variables"`
	Nodes           int `json:"nodes"`
	Chords          int `json:"chords"`
	CrossingsBefore int `json:"crossings_before"`
	CrossingsAfter  int `json:"crossings_after"`
}

func statsResponse(s pipeline.Stats) StatsResponse {
	return StatsResponse{
		Variables:       s.Variables,
		Nodes:           s.Nodes,
		Chords:          s.Chords,
		CrossingsBefore: s.CrossingsBefore,
		CrossingsAfter:  s.CrossingsAfter,
	}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Uptime  string `json:"uptime"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code
	Message string `json:"message"` // human-readable message
	Code    int    `json:"code"`    // HTTP status
}
