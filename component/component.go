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

// Package component holds the types an extractor (an external black box)
// produces per package: Component, GCID, and GeneratorResult. The engine
// only consumes these; it never constructs component metadata itself
// beyond a handful of synthetic cases.
package component

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GCID is a global component ID: a content-addressed identifier under which
// a component's media is stored in the pool. Its first path segment is the
// plain component ID (cid).
type GCID string

// CID returns the plain component id: the first path segment of the gcid.
func (g GCID) CID() string {
	parts := strings.SplitN(string(g), "/", 2)
	return parts[0]
}

// NewGCID derives a global component id from a component's cid and the
// sha256 digest of its serialized content: the gcid's first path segment
// is always its plain component id.
func NewGCID(cid string, content []byte) GCID {
	sum := sha256.Sum256(content)
	return GCID(cid + "/" + hex.EncodeToString(sum[:])[:16])
}

// Component is one application/component entry extracted from a package.
type Component struct {
	ID      string
	GCID    GCID
	Kind    string // e.g. "desktop-application", "font", "codec"
	Name    map[string]string
	Summary map[string]string
	Doc     []byte // the serialized metadata document (XML or YAML fragment)
}

// Hint is a structured issue note attached to a pkid.
type Hint struct {
	Tag         string            `json:"tag"`
	Severity    string            `json:"severity"`
	Explanation string            `json:"explanation,omitempty"`
	Vars        map[string]string `json:"vars,omitempty"`
}

// GeneratorResult is produced per package by the extractor. Invariant:
// every Component has a GCID derived from its content digest.
type GeneratorResult struct {
	Pkid       string
	Components []Component
	Hints      []Hint
}

// ComponentsCount and HintsCount are used in the per-package log line.
func (r GeneratorResult) ComponentsCount() int { return len(r.Components) }
func (r GeneratorResult) HintsCount() int      { return len(r.Hints) }

// GCIDs returns the gcid of each component in this result, one per
// component in component order; duplicates are not removed.
func (r GeneratorResult) GCIDs() []GCID {
	out := make([]GCID, 0, len(r.Components))
	for _, c := range r.Components {
		out = append(out, c.GCID)
	}
	return out
}
