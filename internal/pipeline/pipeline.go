package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/Houeta/address-mapper/internal/geocoding"
	"github.com/Houeta/address-mapper/internal/metrics"
	"github.com/Houeta/address-mapper/internal/models"
)

// ProgressFunc is invoked after each record with the number of records done
// so far and the total. Progress is reported through this callback instead of
// shared state so that concurrent runs stay independent.
type ProgressFunc func(done, total int)

// unreachableThreshold is the number of consecutive transport failures after
// which the run is flagged with a service-unavailable warning. Remaining
// records are still attempted and individually marked Failed.
const unreachableThreshold = 3

// Pipeline drives parsed address records through the geocoding provider,
// collecting one result per record. It holds no per-run state; every Run
// builds a fresh report, so overlapping runs do not interfere.
type Pipeline struct {
	log          *slog.Logger       // Logger for logging pipeline activities
	provider     geocoding.Provider // Geocoding provider for external lookups
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking pipeline performance
}

// New creates a new Pipeline around the given provider.
func New(log *slog.Logger, provider geocoding.Provider, providerName string, mts *metrics.Metrics) *Pipeline {
	return &Pipeline{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      mts,
	}
}

// Run geocodes records strictly in input order, one provider call per record,
// and returns a finalized report. Every input record produces exactly one
// result; a Failed result never aborts the run. The loop is deliberately
// sequential: the shared lookup service is rate limited, so parallel dispatch
// would only queue on the same limiter.
func (p *Pipeline) Run(ctx context.Context, records []models.AddressRecord, onProgress ProgressFunc) *models.PipelineReport {
	report := models.NewPipelineReport()
	report.State = models.StateRunning

	p.metrics.RunsStarted.Inc()
	p.metrics.ActiveRuns.Inc()
	defer p.metrics.ActiveRuns.Dec()

	total := len(records)
	p.log.InfoContext(ctx, "Pipeline run started", "records", total, "provider", p.providerName)

	transportErrStreak := 0
	for i, rec := range records {
		report.Append(p.geocodeRecord(ctx, rec, &transportErrStreak))

		if transportErrStreak >= unreachableThreshold && report.Warning == "" {
			report.Warning = "geocoding service appears to be unreachable; remaining records are still attempted"
			p.log.WarnContext(ctx, "Sustained failures reaching the geocoding provider",
				"consecutive_errors", transportErrStreak, "provider", p.providerName)
		}

		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	report.State = models.StateCompleted
	p.log.InfoContext(ctx, "Pipeline run completed",
		"records", total,
		"succeeded", len(report.Succeeded()),
		"failed", len(report.Failed()),
	)

	return report
}

// geocodeRecord resolves a single record to a result. Lookup failures are
// returned as Failed results, never as errors; only the transport-failure
// streak crosses record boundaries, via the streak pointer.
func (p *Pipeline) geocodeRecord(ctx context.Context, rec models.AddressRecord, streak *int) models.GeocodeResult {
	if rec.Empty() {
		p.metrics.RecordsProcessed.WithLabelValues("failure").Inc()
		return models.GeocodeResult{
			Record:      rec,
			Status:      models.StatusFailed,
			ErrorDetail: "address fields are all empty",
		}
	}

	address := rec.FullAddress()

	startTime := time.Now()
	coords, err := p.provider.Geocode(ctx, address)
	p.metrics.RequestSeconds.WithLabelValues(p.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		p.metrics.RecordsProcessed.WithLabelValues("failure").Inc()
		p.metrics.APIErrors.Inc()

		if geocoding.IsNoMatch(err) {
			*streak = 0
		} else {
			*streak++
		}

		p.log.ErrorContext(ctx, "Failed to geocode record",
			"account_id", rec.AccountID, "address", address, "error", err)

		return models.GeocodeResult{
			Record:      rec,
			Status:      models.StatusFailed,
			ErrorDetail: err.Error(),
		}
	}

	*streak = 0
	p.metrics.RecordsProcessed.WithLabelValues("success").Inc()
	p.log.DebugContext(ctx, "Record geocoded",
		"account_id", rec.AccountID, "lat", coords.Latitude, "lon", coords.Longitude)

	return models.GeocodeResult{
		Record:      rec,
		Coordinates: coords,
		Status:      models.StatusSuccess,
	}
}
