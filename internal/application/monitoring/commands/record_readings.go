package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/fuelmon-go/internal/application/common"
	"github.com/andrescamacho/fuelmon-go/internal/application/monitoring"
	"github.com/andrescamacho/fuelmon-go/internal/domain/fuel"
)

// RecordReadingsCommand feeds raw millilitre sensor readings into the tracker
type RecordReadingsCommand struct {
	// BatchID tags log lines for this run; generated when empty
	BatchID  string
	Readings []string
	// Strict stops at the first rejected reading and fails the command
	Strict bool
}

// RejectedReading describes a reading that failed validation
type RejectedReading struct {
	Index  int
	Input  string
	Kind   fuel.ErrorKind
	Reason string
}

// RecordReadingsResponse summarises one ingest run
type RecordReadingsResponse struct {
	BatchID  string
	Accepted int
	Rejected []RejectedReading
}

// RecordReadingsHandler validates readings and records the valid ones
type RecordReadingsHandler struct {
	tracker *monitoring.Tracker
}

// NewRecordReadingsHandler creates a new record readings handler
func NewRecordReadingsHandler(tracker *monitoring.Tracker) *RecordReadingsHandler {
	return &RecordReadingsHandler{tracker: tracker}
}

// Handle executes the record readings command
func (h *RecordReadingsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecordReadingsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	batchID := cmd.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	logger := common.LoggerFromContext(ctx).WithField("batch", batchID)
	response := &RecordReadingsResponse{BatchID: batchID}

	for i, raw := range cmd.Readings {
		if err := ctx.Err(); err != nil {
			return response, err
		}

		level, err := fuel.ParseMillilitres(raw)
		if err != nil {
			rejected := RejectedReading{
				Index:  i,
				Input:  raw,
				Kind:   kindOf(err),
				Reason: err.Error(),
			}
			h.tracker.Reject(rejected.Kind)
			response.Rejected = append(response.Rejected, rejected)

			logger.WithFields(logrus.Fields{
				"index": i,
				"input": raw,
				"kind":  rejected.Kind.String(),
			}).Warn("Rejected fuel reading")

			if cmd.Strict {
				return response, fmt.Errorf("reading %d rejected: %w", i+1, err)
			}
			continue
		}

		h.tracker.Record(level)
		response.Accepted++
		logger.WithField("level", level.String()).Debug("Recorded fuel reading")
	}

	return response, nil
}

func kindOf(err error) fuel.ErrorKind {
	var levelErr *fuel.LevelError
	if errors.As(err, &levelErr) {
		return levelErr.Kind
	}
	return fuel.KindInvalid
}
