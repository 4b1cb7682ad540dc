// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

// Metered records run count, produced items, duration and errors of a stage
// on the global meter provider.
func Metered(metricName string, stageFunc StageFunc) StageFunc {
	return func(ctx context.Context) (int, error) {
		startTime := time.Now()
		meter := otel.GetMeterProvider().Meter(instrumentationName)

		runs, _ := meter.Int64Counter(metricName + ".count")
		items, _ := meter.Int64Counter(metricName + ".items")
		duration, _ := meter.Float64Histogram(metricName + ".duration")

		runs.Add(ctx, 1)
		n, err := stageFunc(ctx)
		items.Add(ctx, int64(n))
		duration.Record(ctx, time.Since(startTime).Seconds())

		if err != nil {
			errorCounter, _ := meter.Int64Counter(metricName + ".errors")
			errorCounter.Add(ctx, 1)
		}
		return n, err
	}
}
