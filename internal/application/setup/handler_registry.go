package setup

import (
	"reflect"

	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring/commands"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring/queries"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	tracker *monitoring.Tracker
}

// NewHandlerRegistry creates a new handler registry. A nil tracker is
// replaced by a fresh empty one.
func NewHandlerRegistry(tracker *monitoring.Tracker) *HandlerRegistry {
	if tracker == nil {
		tracker = monitoring.NewTracker()
	}
	return &HandlerRegistry{tracker: tracker}
}

// Tracker returns the tracker shared by the registered handlers
func (r *HandlerRegistry) Tracker() *monitoring.Tracker {
	return r.tracker
}

// RegisterMonitoringHandlers registers:
//   - RecordReadingsCommand → RecordReadingsHandler
//   - GetSummaryQuery → GetSummaryHandler
func (r *HandlerRegistry) RegisterMonitoringHandlers(m common.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&commands.RecordReadingsCommand{}),
		commands.NewRecordReadingsHandler(r.tracker),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&queries.GetSummaryQuery{}),
		queries.NewGetSummaryHandler(r.tracker),
	); err != nil {
		return err
	}

	return nil
}

// CreateConfiguredMediator creates a mediator with all handlers registered
// and the given middlewares installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...common.Middleware) (common.Mediator, error) {
	m := common.NewMediator()
	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := r.RegisterMonitoringHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
