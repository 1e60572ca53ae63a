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
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"asgen.dev/asgen/component"
	"asgen.dev/asgen/store"
)

// Extension returns the metadata file extension for a format ("xml" or
// "yml").
func (f Format) Extension() string {
	if f == FormatYAML {
		return "yml"
	}
	return "xml"
}

// PackageExport is the subset of a package's stored generator result the
// export phase needs: its gcids (keyed by cid via GCID.CID()), the
// serialized component documents to append to the body, and its hints.
type PackageExport struct {
	Pkid  string
	GCIDs []component.GCID
	Docs  [][]byte
	Hints []component.Hint
}

// ExportResult carries the artifacts produced by ExportMetadata. The
// engine's icon tarball export does not use it; it re-reads the data store.
type ExportResult struct {
	CIDIndex map[string]string
}

// ExportMetadata assembles the
// head/body/tail document, the cid->gcid index, and the hints document for
// one (suite,section,arch) tuple, writing all compressed variants under
// outDir. When pool/suiteMediaDir are non-nil/non-empty, each package's
// gcids are materialized into the suite's media directory (hardlinked when
// immutable).
func ExportMetadata(
	outDir, arch string,
	format Format,
	head HeadOptions,
	pkgs []PackageExport,
	pool *store.MediaPool,
	suiteMediaDir string,
	immutable bool,
) (ExportResult, error) {
	body := &Body{}
	cidIndex := NewCIDIndex()
	hints := &HintsBuffer{}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, pkg := range pkgs {
		if len(pkg.GCIDs) == 0 {
			continue
		}
		wg.Add(1)
		go func(pkg PackageExport) {
			defer wg.Done()
			for _, doc := range pkg.Docs {
				body.Append(doc)
			}
			for _, gcid := range pkg.GCIDs {
				cidIndex.Set(gcid.CID(), string(gcid))
				if pool != nil && suiteMediaDir != "" {
					if err := pool.ExportToSuite(gcid, suiteMediaDir, immutable); err != nil {
						recordErr(fmt.Errorf("exporting media for %s: %w", gcid, err))
					}
				}
			}
			for _, hint := range pkg.Hints {
				raw, err := json.Marshal(hintEntry{Pkid: pkg.Pkid, Hint: hint})
				if err != nil {
					recordErr(err)
					continue
				}
				hints.Append(raw)
			}
		}(pkg)
	}
	wg.Wait()
	if firstErr != nil {
		return ExportResult{}, firstErr
	}

	doc := append([]byte(BuildHead(format, head)), body.Bytes()...)
	if tail := Tail(format); tail != "" {
		doc = append(doc, []byte(tail)...)
	}

	base := fmt.Sprintf("Components-%s.%s", arch, format.Extension())
	if err := WriteGzip(filepath.Join(outDir, base+".gz"), doc); err != nil {
		return ExportResult{}, err
	}
	if err := WriteXZ(filepath.Join(outDir, base+".xz"), doc); err != nil {
		return ExportResult{}, err
	}

	cidMap := cidIndex.Map()
	cidJSON, err := json.Marshal(cidMap)
	if err != nil {
		return ExportResult{}, err
	}
	if err := WriteGzip(filepath.Join(outDir, fmt.Sprintf("CID-Index-%s.json.gz", arch)), cidJSON); err != nil {
		return ExportResult{}, err
	}

	hintsDoc := hints.Render()
	hintsBase := fmt.Sprintf("Hints-%s.json", arch)
	if err := WriteGzip(filepath.Join(outDir, hintsBase+".gz"), hintsDoc); err != nil {
		return ExportResult{}, err
	}
	if err := WriteXZ(filepath.Join(outDir, hintsBase+".xz"), hintsDoc); err != nil {
		return ExportResult{}, err
	}

	return ExportResult{CIDIndex: cidMap}, nil
}

type hintEntry struct {
	Pkid string          `json:"pkid"`
	Hint component.Hint  `json:"hint"`
}

// WriteHintDefinitions dumps the hint-template registry to
// `hint-definitions.json` at the suite root.
func WriteHintDefinitions(suiteRoot string, templates any) error {
	raw, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	return writePlain(filepath.Join(suiteRoot, "hint-definitions.json"), raw)
}
