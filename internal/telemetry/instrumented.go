// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

// Instrumented combines Logged, Metered and Traced. The span is outermost so
// that log records and metrics fall inside it.
func Instrumented(operationName string, stageFunc StageFunc) StageFunc {
	return Traced(operationName, Metered(operationName, Logged(operationName, stageFunc)))
}
