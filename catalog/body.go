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

package catalog

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizerOnce builds bluemonday's strict policy lazily; upstream
// metainfo/desktop-entry text is untrusted input, so every component
// document is scrubbed before it joins the body buffer.
var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

func strictSanitizer() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.StrictPolicy()
	})
	return sanitizer
}

// Sanitize strips any markup from doc and guarantees the result is valid
// UTF-8.
func Sanitize(doc []byte) []byte {
	return []byte(strictSanitizer().SanitizeBytes(doc))
}

// Body accumulates sanitised component documents under a mutex, each
// export buffer guarded by its own lock.
type Body struct {
	mu  sync.Mutex
	buf []byte
}

// Append sanitises doc and adds it to the body buffer.
func (b *Body) Append(doc []byte) {
	clean := Sanitize(doc)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, clean...)
	if len(clean) > 0 && clean[len(clean)-1] != '\n' {
		b.buf = append(b.buf, '\n')
	}
}

// Bytes returns the accumulated body.
func (b *Body) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// CIDIndex accumulates the cid -> gcid map under a mutex.
type CIDIndex struct {
	mu  sync.Mutex
	m   map[string]string
}

// NewCIDIndex returns an empty cid->gcid index.
func NewCIDIndex() *CIDIndex {
	return &CIDIndex{m: map[string]string{}}
}

// Set records cid -> gcid.
func (c *CIDIndex) Set(cid, gcid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[cid] = gcid
}

// Map returns a copy of the accumulated index.
func (c *CIDIndex) Map() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// HintsBuffer accumulates hint JSON entries as a comma-separated array
// body.
type HintsBuffer struct {
	mu      sync.Mutex
	entries [][]byte
}

// Append adds a raw JSON-encoded hints entry.
func (h *HintsBuffer) Append(entry []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
}

// Render produces the `[\n<entries>\n]\n` document.
func (h *HintsBuffer) Render() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := []byte("[\n")
	for i, e := range h.entries {
		out = append(out, e...)
		if i != len(h.entries)-1 {
			out = append(out, ',')
		}
		out = append(out, '\n')
	}
	out = append(out, "]\n"...)
	return out
}
