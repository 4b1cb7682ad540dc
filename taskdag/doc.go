// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package taskdag holds the workflow graph model shared by the fit and
// synthesis phases: tasks with ordered dependency lists, instance counts and
// cost. It computes per-task levels and the critical path length, classifies
// graphs by shape, and reads and writes graphs as JSON documents and DOT
// drawings.
package taskdag
