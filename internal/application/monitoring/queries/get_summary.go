package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring"
	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

// GetSummaryQuery asks for the current aggregates of the tracked history
type GetSummaryQuery struct {
	// IncludeReadings adds the held readings, oldest first
	IncludeReadings bool
}

// SummaryResponse is the report-friendly view of a summary.
// Min, Max and Mean are nil when no readings are held.
type SummaryResponse struct {
	Count          int       `json:"count" yaml:"count"`
	Capacity       int       `json:"capacity" yaml:"capacity"`
	MinLitres      *float64  `json:"min_litres" yaml:"min_litres"`
	MaxLitres      *float64  `json:"max_litres" yaml:"max_litres"`
	MeanLitres     *float64  `json:"mean_litres" yaml:"mean_litres"`
	ReferenceMax   float64   `json:"reference_max_litres" yaml:"reference_max_litres"`
	Accepted       uint64    `json:"accepted" yaml:"accepted"`
	Rejected       uint64    `json:"rejected" yaml:"rejected"`
	ReadingsLitres []float64 `json:"readings_litres,omitempty" yaml:"readings_litres,omitempty"`

	Summary fuel.Summary `json:"-" yaml:"-"`
}

// GetSummaryHandler answers GetSummaryQuery from a tracker
type GetSummaryHandler struct {
	tracker *monitoring.Tracker
}

// NewGetSummaryHandler creates a new get summary handler
func NewGetSummaryHandler(tracker *monitoring.Tracker) *GetSummaryHandler {
	return &GetSummaryHandler{tracker: tracker}
}

// Handle executes the get summary query
func (h *GetSummaryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSummaryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	summary := h.tracker.Snapshot()
	stats := h.tracker.Stats()

	response := &SummaryResponse{
		Count:        summary.Count,
		Capacity:     fuel.HistoryCapacity,
		ReferenceMax: fuel.MaxLevel.Litres(),
		Accepted:     stats.Accepted,
		Rejected:     stats.Rejected(),
		Summary:      summary,
	}
	if summary.HasData {
		response.MinLitres = litresPtr(summary.Min)
		response.MaxLitres = litresPtr(summary.Max)
		response.MeanLitres = litresPtr(summary.Mean)
	}
	if query.IncludeReadings {
		readings := h.tracker.Readings()
		response.ReadingsLitres = make([]float64, len(readings))
		for i, level := range readings {
			response.ReadingsLitres[i] = level.Litres()
		}
	}

	return response, nil
}

func litresPtr(level fuel.Level) *float64 {
	v := level.Litres()
	return &v
}
