// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Traced runs a stage inside a span with the given operation name. The span
// records the number of items produced and any error.
func Traced(operationName string, stageFunc StageFunc) StageFunc {
	return func(ctx context.Context) (int, error) {
		tracer := otel.Tracer(instrumentationName)
		ctx, span := tracer.Start(ctx, operationName)
		defer span.End()

		n, err := stageFunc(ctx)
		span.SetAttributes(attribute.Int("items", n))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return n, err
	}
}

// InstallStdoutTracer makes the global tracer provider export every span to
// w as indented JSON. The returned function flushes pending spans and must be
// called before exit.
func InstallStdoutTracer(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
