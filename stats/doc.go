// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package stats collects empirical distributions of structural quantities
// from a population of workflow graphs and samples them back.
//
// Every distribution is keyed by the critical path length of the graph it was
// observed in and by its size bucket ("part", node count divided by critical
// path length); per-level statistics add the level and a metric name.
// Sampling is an empirical bootstrap: a value is drawn uniformly from the
// stored observations. When the requested key has no observations the
// nearest populated key is used instead, so sparse combinations still yield
// a value. Only when nothing at all is recorded does sampling fail with
// [ErrDistributionExhausted].
package stats
