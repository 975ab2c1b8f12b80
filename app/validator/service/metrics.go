package service

import (
	"context"

	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/instrument/syncint64"
)

var (
	validatorMeter       = global.MeterProvider().Meter("proofdao_validator_meter")
	validationsCounter   syncint64.Counter
	degradedCounter      syncint64.Counter
	parseFallbackCounter syncint64.Counter
	batchesCounter       syncint64.Counter
)

func init() {
	vc, err := validatorMeter.SyncInt64().Counter(
		"validator.validations.counter",
		instrument.WithUnit("1"),
		instrument.WithDescription("completed submission validations"),
	)
	if err != nil {
		panic(err)
	}
	validationsCounter = vc

	dc, err := validatorMeter.SyncInt64().Counter(
		"validator.degraded.counter",
		instrument.WithUnit("1"),
		instrument.WithDescription("batch items degraded by inference failures"),
	)
	if err != nil {
		panic(err)
	}
	degradedCounter = dc

	pc, err := validatorMeter.SyncInt64().Counter(
		"validator.parse_fallback.counter",
		instrument.WithUnit("1"),
		instrument.WithDescription("evaluator responses replaced by fallbacks"),
	)
	if err != nil {
		panic(err)
	}
	parseFallbackCounter = pc

	bc, err := validatorMeter.SyncInt64().Counter(
		"validator.batches.counter",
		instrument.WithUnit("1"),
		instrument.WithDescription("completed validation batches"),
	)
	if err != nil {
		panic(err)
	}
	batchesCounter = bc
}

func countValidation(ctx context.Context) { validationsCounter.Add(ctx, 1) }
func countDegraded(ctx context.Context)   { degradedCounter.Add(ctx, 1) }
func parseFallbacks(ctx context.Context)  { parseFallbackCounter.Add(ctx, 1) }
func countBatch(ctx context.Context)      { batchesCounter.Add(ctx, 1) }
