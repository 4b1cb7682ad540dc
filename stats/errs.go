// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package stats

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const (
	ErrDistributionExhausted = cerr.Error("distribution exhausted")
	ErrMalformedStore        = cerr.Error("malformed statistics store")
)
