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

package engine

import (
	"fmt"
	"strings"
	"sync"

	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex"
	"asgen.dev/asgen/store"
)

// IconHandler implements extractor.IconHandler: one instance is built per
// (suite, section, arch) call to ProcessSuiteSection ("iconh =
// IconHandler(cstore, pool, getIconCandidatePackages(...), suite.iconTheme)").
// It lazily scans the candidate package set for icon payloads under the
// configured theme's size directories (no pixmaps directory is scanned),
// then stages located bytes so the
// engine can materialize them into the media pool once a component's real
// gcid is known (icon content doesn't participate in a component's content
// digest, so ResolveIcon cannot address the pool directly).
type IconHandler struct {
	pool       *store.MediaPool
	candidates map[string]pkgindex.Package
	theme      string
	sizeTags   []string

	once  sync.Once
	mu    sync.Mutex
	index map[string]map[string][]byte // cid -> sizeTag -> icon bytes
}

// NewIconHandler builds an icon handler over candidates keyed by pkid,
// searching under iconTheme (falling back to "hicolor" when unset) for the
// cached size tags in sizePolicy.
func NewIconHandler(pool *store.MediaPool, candidates map[string]pkgindex.Package, iconTheme string, sizePolicy []config.IconSizeConfig) *IconHandler {
	if iconTheme == "" {
		iconTheme = "hicolor"
	}
	var tags []string
	for _, sz := range sizePolicy {
		if sz.Cached() {
			tags = append(tags, sz.SizeTag())
		}
	}
	return &IconHandler{pool: pool, candidates: candidates, theme: iconTheme, sizeTags: tags}
}

// ResolveIcon implements extractor.IconHandler: reports whether an icon
// named cid was found among the candidate packages, for any configured
// size. Builds its scan index on first use.
func (h *IconHandler) ResolveIcon(pkid, cid string) bool {
	h.once.Do(h.buildIndex)

	h.mu.Lock()
	sizes, ok := h.index[cid]
	h.mu.Unlock()
	return ok && len(sizes) > 0
}

// StagedIcons returns the icon bytes discovered for cid, keyed by size tag,
// for the engine to write into the media pool under the component's real
// gcid once extraction assigns one.
func (h *IconHandler) StagedIcons(cid string) map[string][]byte {
	h.once.Do(h.buildIndex)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index[cid]
}

func (h *IconHandler) buildIndex() {
	h.mu.Lock()
	h.index = map[string]map[string][]byte{}
	h.mu.Unlock()

	for _, sizeTag := range h.sizeTags {
		dims := strings.SplitN(strings.SplitN(sizeTag, "@", 2)[0], "x", 2)
		if len(dims) != 2 {
			continue
		}
		prefix := fmt.Sprintf("/usr/share/icons/%s/%sx%s/apps/", h.theme, dims[0], dims[1])
		for _, pkg := range h.candidates {
			contents, err := pkg.Contents()
			if err != nil {
				continue
			}
			for _, path := range contents {
				if !strings.HasPrefix(path, prefix) {
					continue
				}
				cid := cidFromIconPath(path)
				data, err := pkg.GetFileData(path)
				if err != nil || len(data) == 0 {
					continue
				}
				h.mu.Lock()
				sizes, ok := h.index[cid]
				if !ok {
					sizes = map[string][]byte{}
					h.index[cid] = sizes
				}
				sizes[sizeTag] = data
				h.mu.Unlock()
			}
		}
	}
}

func cidFromIconPath(path string) string {
	base := path[strings.LastIndex(path, "/")+1:]
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return base
}
