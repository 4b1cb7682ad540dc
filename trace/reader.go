// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package trace

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Ksenia-C/dataset-generation/taskdag"
)

const minFields = 7

const (
	fieldTaskName = iota
	fieldInstanceNum
	fieldJobName
	fieldTaskType
	fieldStatus
	fieldStartTime
	fieldEndTime
)

// record is one parsed row.
type record struct {
	task  taskdag.Task
	id    int // -1 if the name declares no id
	deps  []int
	order int
}

// ReadFile reads the trace at path.
func ReadFile(path string) (taskdag.Population, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pop, err := ReadTasks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pop, nil
}

// ReadTasks reads batch task records and returns one graph per job. A header
// row starting with "task_name" is skipped. Within a job, tasks with an id
// come first in id order, followed by independent tasks in input order.
// Dependencies on ids the job does not have are dropped, as are repeated ids.
func ReadTasks(r io.Reader) (taskdag.Population, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	jobs := make(map[string][]record)
	for n := 0; ; n++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		line, _ := cr.FieldPos(0)
		if n == 0 && len(fields) > 0 && fields[0] == "task_name" {
			continue
		}
		rec, job, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}
		rec.order = len(jobs[job])
		jobs[job] = append(jobs[job], rec)
	}

	pop := make(taskdag.Population, len(jobs))
	for job, recs := range jobs {
		pop[job] = buildGraph(recs)
	}
	return pop, nil
}

func parseRecord(fields []string) (record, string, error) {
	if len(fields) < minFields {
		return record{}, "", fmt.Errorf("%d fields, expected at least %d", len(fields), minFields)
	}
	job := fields[fieldJobName]
	if job == "" {
		return record{}, "", errors.New("empty job name")
	}
	instances, err := parseNumber(fields[fieldInstanceNum])
	if err != nil {
		return record{}, "", fmt.Errorf("instance_num: %w", err)
	}
	start, err := parseNumber(fields[fieldStartTime])
	if err != nil {
		return record{}, "", fmt.Errorf("start_time: %w", err)
	}
	end, err := parseNumber(fields[fieldEndTime])
	if err != nil {
		return record{}, "", fmt.Errorf("end_time: %w", err)
	}
	rec := record{
		task: taskdag.Task{
			Name:          fields[fieldTaskName],
			InstanceCount: uint64(max(instances, 0)),
			StartTime:     start,
			EndTime:       end,
		},
	}
	rec.id, rec.deps = ParseName(rec.task.Name)
	return rec, job, nil
}

// parseNumber accepts integers and decimals such as "12.0"; an empty field
// is 0.
func parseNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// ParseName extracts the id and dependency ids from a task name of the form
// <letters><id>_<dep>_<dep>... It returns id -1 and no dependencies for any
// other name.
func ParseName(name string) (id int, deps []int) {
	prefix := strings.TrimLeftFunc(name, func(r rune) bool {
		return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
	})
	if len(prefix) == len(name) || prefix == "" {
		return -1, nil
	}
	parts := strings.Split(prefix, "_")
	ids := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return -1, nil
		}
		ids[i] = v
	}
	return ids[0], ids[1:]
}

func buildGraph(recs []record) *taskdag.Graph {
	slices.SortStableFunc(recs, func(a, b record) int {
		switch {
		case a.id < 0 && b.id < 0:
			return cmp.Compare(a.order, b.order)
		case a.id < 0:
			return 1
		case b.id < 0:
			return -1
		}
		return cmp.Compare(a.id, b.id)
	})

	g := taskdag.New(len(recs))
	index := make(map[int]int, len(recs))
	kept := recs[:0]
	for _, rec := range recs {
		if rec.id >= 0 {
			if _, dup := index[rec.id]; dup {
				continue
			}
			index[rec.id] = g.Len()
		}
		// Dependencies are wired once every id is known.
		g.Tasks = append(g.Tasks, rec.task)
		kept = append(kept, rec)
	}
	for child, rec := range kept {
		for _, d := range rec.deps {
			parent, ok := index[d]
			if !ok {
				continue
			}
			// A task naming itself as a dependency is dropped like an
			// unknown id.
			_ = g.AddDependency(child, parent)
		}
	}
	return g
}
