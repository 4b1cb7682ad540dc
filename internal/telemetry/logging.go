// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logged logs the start and completion of a stage on the global logger.
func Logged(operationName string, stageFunc StageFunc) StageFunc {
	return func(ctx context.Context) (int, error) {
		logger := zap.L()
		logger.Debug("Starting stage", zap.String("stage", operationName))

		startTime := time.Now()
		n, err := stageFunc(ctx)
		duration := time.Since(startTime)

		if err != nil {
			logger.Error("Stage failed",
				zap.String("stage", operationName),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Info("Stage completed",
				zap.String("stage", operationName),
				zap.Int("items", n),
				zap.Duration("duration", duration))
		}
		return n, err
	}
}
