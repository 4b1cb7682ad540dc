// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package taskdag

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const (
	ErrCycleDetected = cerr.Error("cycle detected in task graph")
	ErrInvalidNode   = cerr.Error("invalid task id")
)
