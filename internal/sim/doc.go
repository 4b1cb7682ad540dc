// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim generates random workflow graphs shaped like the ones found in
// cluster traces, for use in property tests. A graph is built level by level:
// every task past the first level depends on at least one task of the level
// right above it, so a graph drawn with n levels always has a critical path
// of exactly n. Further dependencies on earlier levels, instance counts and
// run times are drawn according to a set of configuration parameters.
package sim
