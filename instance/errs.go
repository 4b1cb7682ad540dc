// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package instance

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const (
	ErrInvalidCCR     = cerr.Error("computation to communication ratio must be positive")
	ErrUnknownPattern = cerr.Error("unknown connection pattern")
)
