// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package synth

import (
	"slices"

	"github.com/Ksenia-C/dataset-generation/stats"
	"github.com/gammazero/deque"
)

// growForward visits tasks breadth first from the top of the seed chain and
// gives each a drawn number of new children on the next level. Seed tasks
// join the queue one level at a time, after the tasks grown on the level
// above them. Tasks left over once the queue drains get a random parent.
func (b *builder) growForward() error {
	next := b.cp
	var queue deque.Deque[int]
	queue.PushBack(0)
	lastSeed := 0
	for queue.Len() > 0 && next < len(b.level) {
		cur := queue.PopFront()
		lv := b.level[cur]
		if (lv != lastSeed || queue.Len() == 0) && lastSeed+1 < b.cp {
			lastSeed++
			queue.PushBack(lastSeed)
		}
		if lv == b.cp-1 {
			continue
		}
		count, err := b.drawCount(lv, stats.MetricFanOut)
		if err != nil {
			return err
		}
		if b.isSeed(cur) && count > 0 {
			// The seed successor is already a child.
			count--
		}
		for ; count > 0 && next < len(b.level); count-- {
			b.place(next, lv+1)
			if err := b.graph.AddDependency(next, cur); err != nil {
				return err
			}
			queue.PushBack(next)
			next++
		}
	}
	if b.cp < 2 {
		return b.placeSources(next)
	}
	for ; next < len(b.level); next++ {
		l, err := b.drawLevel(1, b.cp-1)
		if err != nil {
			return err
		}
		above := b.byLevel[l-1]
		parent := above[b.rng.IntN(len(above))]
		b.place(next, l)
		if err := b.graph.AddDependency(next, parent); err != nil {
			return err
		}
	}
	return nil
}

// growBackward mirrors growForward: it starts from the bottom of the seed
// chain and grows new parents on the level above every visited task.
func (b *builder) growBackward() error {
	next := b.cp
	var queue deque.Deque[int]
	queue.PushBack(b.cp - 1)
	lastSeed := b.cp - 1
	for queue.Len() > 0 && next < len(b.level) {
		cur := queue.PopFront()
		lv := b.level[cur]
		if (lv != lastSeed || queue.Len() == 0) && lastSeed > 0 {
			lastSeed--
			queue.PushBack(lastSeed)
		}
		if lv == 0 {
			continue
		}
		count, err := b.drawCount(lv, stats.MetricFanIn)
		if err != nil {
			return err
		}
		if b.isSeed(cur) && count > 0 {
			// The seed predecessor is already a parent.
			count--
		}
		for ; count > 0 && next < len(b.level); count-- {
			b.place(next, lv-1)
			if err := b.graph.AddDependency(cur, next); err != nil {
				return err
			}
			queue.PushBack(next)
			next++
		}
	}
	if b.cp < 2 {
		return b.placeSources(next)
	}
	for ; next < len(b.level); next++ {
		l, err := b.drawLevel(0, b.cp-2)
		if err != nil {
			return err
		}
		below := b.byLevel[l+1]
		child := below[b.rng.IntN(len(below))]
		b.place(next, l)
		if err := b.graph.AddDependency(child, next); err != nil {
			return err
		}
	}
	return nil
}

// placeSources puts tasks from id next onward on level 0 without edges. It
// is used when the critical path is a single task, leaving no level to link.
func (b *builder) placeSources(next int) error {
	for ; next < len(b.level); next++ {
		b.place(next, 0)
	}
	return nil
}

// linkLevels draws a level for every task outside the seed chain and then
// links each task to a drawn number of distinct random tasks on the next
// level. Edges between two seed tasks are skipped since the chain already
// holds them. Tasks on the last level that end up without a parent get a
// random one.
func (b *builder) linkLevels() error {
	for id := b.cp; id < len(b.level); id++ {
		l, err := b.drawLevel(0, b.cp-1)
		if err != nil {
			return err
		}
		b.place(id, l)
	}
	if b.cp < 2 {
		return nil
	}

	for lv := range b.cp - 1 {
		for _, parent := range b.byLevel[lv] {
			count, err := b.drawCount(lv, stats.MetricFanOut)
			if err != nil {
				return err
			}
			children := b.pick(b.byLevel[lv+1], max(count, 1))
			for _, child := range children {
				if b.isSeed(parent) && b.isSeed(child) {
					continue
				}
				if err := b.graph.AddDependency(child, parent); err != nil {
					return err
				}
			}
		}
	}

	first := b.cp - 1
	if b.config.ConnectOrphans {
		first = 1
	}
	for lv := first; lv < b.cp; lv++ {
		above := b.byLevel[lv-1]
		for _, id := range b.byLevel[lv] {
			if len(b.graph.Tasks[id].Dependencies) > 0 {
				continue
			}
			if err := b.graph.AddDependency(id, above[b.rng.IntN(len(above))]); err != nil {
				return err
			}
		}
	}
	return nil
}

// pick returns min(k, len(ids)) distinct elements of ids in random order.
func (b *builder) pick(ids []int, k int) []int {
	ids = slices.Clone(ids)
	k = min(k, len(ids))
	for i := range k {
		j := i + b.rng.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k]
}
