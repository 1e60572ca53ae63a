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

package store

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/nsf/jsondiff"
)

// StatEntry is one statistics row: Time orders entries, Suite/Section key
// a deduplication window, and Payload is the entry's remaining fields (n,
// counts, etc.) carried opaquely. A zero Suite and Section marks a
// checkpoint barrier that resets the window.
type StatEntry struct {
	Time    int64
	Suite   string
	Section string
	Payload json.RawMessage
}

// StatisticsStore tracks statistics rows and deduplicates consecutive
// same-key entries with identical payloads.
type StatisticsStore struct {
	mu      sync.Mutex
	entries []StatEntry
}

// NewStatisticsStore returns an empty in-memory statistics log. The log is
// not written to the data store; it lasts as long as this value does.
func NewStatisticsStore() *StatisticsStore {
	return &StatisticsStore{}
}

// Add appends one statistics entry.
func (s *StatisticsStore) Add(entry StatEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// Entries returns a snapshot of the current log: in insertion order, and
// in time order once CleanupStatistics has run.
func (s *StatisticsStore) Entries() []StatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StatEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// CleanupStatistics sorts entries by time and, within consecutive entries
// sharing a (suite, section) key, drops the earlier of two entries whose
// payloads are semantically identical JSON. Entries without suite/section
// are checkpoint barriers: they always survive and reset the
// deduplication window that follows them.
func (s *StatisticsStore) CleanupStatistics() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.entries, func(i, j int) bool { return s.entries[i].Time < s.entries[j].Time })

	type windowKey struct{ suite, section string }
	last := map[windowKey]int{} // key -> index in kept, of the most recent entry for that key

	kept := make([]StatEntry, 0, len(s.entries))
	dropped := map[int]bool{}
	for _, e := range s.entries {
		if e.Suite == "" && e.Section == "" {
			kept = append(kept, e)
			last = map[windowKey]int{}
			continue
		}
		key := windowKey{e.Suite, e.Section}
		if prevIdx, ok := last[key]; ok && samePayload(kept[prevIdx].Payload, e.Payload) {
			dropped[prevIdx] = true // the earlier of the two identical entries goes
		}
		kept = append(kept, e)
		last[key] = len(kept) - 1
	}
	out := make([]StatEntry, 0, len(kept))
	for i, e := range kept {
		if !dropped[i] {
			out = append(out, e)
		}
	}
	s.entries = out
}

// samePayload reports semantic JSON equality using jsondiff, so that
// key-order churn in the extractor's encoder never produces spurious
// non-duplicate entries.
func samePayload(a, b json.RawMessage) bool {
	diff, _ := jsondiff.Compare(a, b, &jsondiff.Options{})
	return diff == jsondiff.FullMatch
}
