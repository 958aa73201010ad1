package service

import (
	"context"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/models"
)

type loggingProgressSink struct{}

// NewLoggingProgressSink returns a ProgressSink that writes every event to
// the logger carried by the context.
func NewLoggingProgressSink() ProgressSink {
	return loggingProgressSink{}
}

func (loggingProgressSink) Report(ctx context.Context, event models.ProgressEvent) {
	e := logger.FromContext(ctx).Debug().
		Str("phase", string(event.Phase)).
		Int("done", event.Done).
		Int("total", event.Total)
	if event.TableID != "" {
		e = e.Str("table_id", event.TableID)
	}
	if event.Percent >= 0 {
		e = e.Float64("percent", event.Percent)
	}
	e.Msg(event.Message)
}

// progressStep builds an event with the completion percentage of done out
// of total, or -1 when total is unknown.
func progressStep(phase models.ProgressPhase, tableID, message string, done, total int) models.ProgressEvent {
	percent := -1.0
	if total > 0 {
		percent = 100 * float64(done) / float64(total)
	}
	return models.ProgressEvent{
		Phase:   phase,
		TableID: tableID,
		Message: message,
		Done:    done,
		Total:   total,
		Percent: percent,
	}
}
