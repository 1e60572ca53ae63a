/*
Copyright © 2025 Benny Powers

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package engine is the orchestrator: it owns the seed/process/export/cleanup
// phases over a PackageIndex backend, backed by a ContentsStore/DataStore
// pair and a media pool.
package engine

import (
	"errors"
	"runtime"
	"sync"
)

// WorkerCount computes max(min(hardware_concurrency, 6),
// ceil(0.60 * hardware_concurrency)), capping parallelism on large machines
// while still using most of the cores on small ones.
func WorkerCount() int {
	n := runtime.NumCPU()
	capped := n
	if capped > 6 {
		capped = 6
	}
	scaled := (n*60 + 99) / 100 // ceil(0.60 * n)
	if scaled > capped {
		return scaled
	}
	return capped
}

// PackageBatchProcessor runs a function over a set of packages with a
// bounded worker pool, using the channel-of-jobs + sync.WaitGroup pattern
// generalized to arbitrary package-keyed work units.
type PackageBatchProcessor[T any] struct {
	numWorkers int
}

// NewPackageBatchProcessor builds a batch processor bounded by WorkerCount,
// or fewer when there are fewer items than workers.
func NewPackageBatchProcessor[T any]() *PackageBatchProcessor[T] {
	return &PackageBatchProcessor[T]{numWorkers: WorkerCount()}
}

// ChunkSize computes the work-unit sizing for a phase: extract phase chunks
// are max(10, min(100, total/processors/10)); seed phase chunks are
// min(30, processors*2). Callers pick which by naming the phase.
func ChunkSize(phase string, total, processors int) int {
	if processors <= 0 {
		processors = 1
	}
	switch phase {
	case "seed":
		c := processors * 2
		if c > 30 {
			return 30
		}
		return c
	default: // "extract" and all others use the extract-phase sizing
		c := total / processors / 10
		if c > 100 {
			return 100
		}
		if c < 10 {
			return 10
		}
		return c
	}
}

// Run fans items out across the worker pool in phase-sized chunks (see
// ChunkSize): each worker pulls a chunk at a time and runs fn over every
// item in it, rather than pulling one item per channel receive. fn's own
// side effects (store writes, buffer appends) must do their own locking;
// Run only aggregates errors with errors.Join.
func (p *PackageBatchProcessor[T]) Run(phase string, items []T, fn func(T) error) error {
	if len(items) == 0 {
		return nil
	}
	numWorkers := p.numWorkers
	if numWorkers > len(items) {
		numWorkers = len(items)
	}

	chunkSize := ChunkSize(phase, len(items), numWorkers)
	var chunks [][]T
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	if numWorkers > len(chunks) {
		numWorkers = len(chunks)
	}

	jobs := make(chan []T, len(chunks))
	for _, chunk := range chunks {
		jobs <- chunk
	}
	close(jobs)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				for _, item := range chunk {
					if err := fn(item); err != nil {
						mu.Lock()
						errs = append(errs, err)
						mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
