// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package instance expands a task graph into an instance graph: every task
// becomes InstanceCount parallel instances and every dependency becomes a set
// of transfers between the instances of the two tasks. Transfer sizes are
// chosen so that total computation over total communication equals a fixed
// computation to communication ratio (CCR).
package instance
