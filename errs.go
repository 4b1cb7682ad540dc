// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dataset

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const ErrInvalidConfig = cerr.Error("invalid configuration")
