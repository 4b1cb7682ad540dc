// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dataset runs the stages that turn a cluster trace into a dataset of
// synthetic workflow graphs:
//
//	from_csv -> form -> pure -> task -> ins
//
// from_csv reads batch task records into a population of job graphs. form
// splits a population by graph shape. pure fits the statistics model of one
// population and keeps a sample of its graphs as examples. task synthesizes
// graphs from the model and ins expands every task graph of a working
// directory into an instance graph. plot renders the fitted statistics.
//
// A working directory holds the model under stats/, task graphs under tasks/,
// instance graphs under inss/ and a manifest.yaml describing the last stage
// run in it.
package dataset
