// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package synth grows synthetic workflow graphs from a fitted statistics
// model.
//
// Every graph starts from a seed chain of one task per level, which fixes the
// critical path at the sampled length. The remaining tasks are placed and
// wired by one of three strategies:
//
//   - [StrategyForward] grows children breadth first from the first level,
//     drawing fan-out counts per level.
//   - [StrategyBackward] grows parents breadth first from the last level,
//     drawing fan-in counts per level.
//   - [StrategyLevel] draws a level for every task up front and then links
//     each level to the next one.
//
// Instance counts and flops are drawn last, in topological order, so that a
// task's instance count can be derived from its parents' counts.
package synth
