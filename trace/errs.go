// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import "github.com/Ksenia-C/dataset-generation/internal/cerr"

const ErrMalformedRecord = cerr.Error("malformed trace record")
