// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs segmented jobs on a fixed set of goroutines.
//
// A Pool is created once and reused, so transcoding many large buffers does
// not pay for goroutine spawning on every call.
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	segs := workerpool.Segments(len(src), 3, 96<<10)
//	pool.Each(segs, func(s workerpool.Segment) {
//	    process(src[s.Start:s.End])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Segment is one contiguous range [Start, End) of a larger input.
type Segment struct {
	Index      int
	Start, End int
}

// Len returns End - Start.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Segments splits [0, n) into consecutive segments of size elements. size is
// rounded down to a multiple of align (and to at least align), so every
// segment except possibly the last starts and ends on an align boundary.
func Segments(n, align, size int) []Segment {
	if n <= 0 {
		return nil
	}
	align = max(align, 1)
	size = max(align, size/align*align)

	segs := make([]Segment, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		segs = append(segs, Segment{
			Index: len(segs),
			Start: start,
			End:   min(start+size, n),
		})
	}
	return segs
}

// Pool is a persistent set of workers. It is safe for concurrent use, but
// Close must not race with Each.
type Pool struct {
	numWorkers int
	jobs       chan job
	closeOnce  sync.Once
	closed     atomic.Bool
}

type job struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool with numWorkers goroutines, or GOMAXPROCS when
// numWorkers <= 0. The workers live until Close.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan job, numWorkers),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for j := range p.jobs {
		j.run()
		j.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers once pending jobs finish. It may be called more
// than once. A closed pool still runs Each, sequentially on the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.jobs)
	})
}

// Each calls fn once for every segment and returns when all calls are done.
// Workers claim segments in order through an atomic cursor, so uneven
// segments still balance out.
func (p *Pool) Each(segs []Segment, fn func(Segment)) {
	workers := min(p.numWorkers, len(segs))
	if workers == 0 {
		return
	}
	if workers == 1 || p.closed.Load() {
		for _, s := range segs {
			fn(s)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.jobs <- job{
			run: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= len(segs) {
						return
					}
					fn(segs[i])
				}
			},
			done: &wg,
		}
	}
	wg.Wait()
}
