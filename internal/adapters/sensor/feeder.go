package sensor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// IngestFunc hands a batch of raw readings to the application
type IngestFunc func(ctx context.Context, readings []string) error

// Feeder delivers readings to an IngestFunc, optionally paced like a
// sampling sensor
type Feeder struct {
	ingest  IngestFunc
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewFeeder creates a feeder. perSecond <= 0 delivers each batch in one call;
// otherwise readings are delivered one at a time at that rate.
func NewFeeder(ingest IngestFunc, perSecond float64, logger *logrus.Entry) *Feeder {
	f := &Feeder{ingest: ingest, logger: logger}
	if perSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return f
}

// Feed delivers readings and returns the first ingest error
func (f *Feeder) Feed(ctx context.Context, readings []string) error {
	if len(readings) == 0 {
		return nil
	}
	if f.limiter == nil {
		return f.ingest(ctx, readings)
	}

	for _, reading := range readings {
		if err := f.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if err := f.ingest(ctx, []string{reading}); err != nil {
			return err
		}
	}
	return nil
}

// Follow feeds the readings already in path, then keeps feeding readings
// appended to it until ctx ends. Only newline-terminated lines are read; a
// trailing partial line waits until the writer finishes it. A file that
// shrinks is treated as replaced and fed again from the start.
func (f *Feeder) Follow(ctx context.Context, path string) error {
	contents, err := NewFileWatcher(path).Watch(ctx)
	if err != nil {
		return err
	}

	offset := 0 // bytes of complete lines already fed
	for data := range contents {
		if len(data) < offset {
			f.logger.WithField("file", path).Info("Readings file was replaced, reading from the start")
			offset = 0
		}

		end := bytes.LastIndexByte(data[offset:], '\n')
		if end < 0 {
			continue
		}
		chunk := data[offset : offset+end+1]
		offset += end + 1

		readings, err := ReadReadings(bytes.NewReader(chunk))
		if err != nil {
			return err
		}
		if len(readings) > 0 {
			f.logger.WithFields(logrus.Fields{"file": path, "readings": len(readings)}).Debug("New readings in file")
		}
		if err := f.Feed(ctx, readings); err != nil {
			return err
		}
	}

	return ctx.Err()
}
