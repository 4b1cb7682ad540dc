// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package telemetry wraps pipeline stages with OpenTelemetry spans and
// metrics and with structured logging through the global zap logger.
package telemetry

import "context"

// StageFunc runs one stage and reports how many items, such as graphs or
// files, it produced.
type StageFunc func(ctx context.Context) (int, error)

const instrumentationName = "github.com/Ksenia-C/dataset-generation"
