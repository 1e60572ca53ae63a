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

// Package store implements the two-tier cache model: ContentsStore keyed
// by pkid (raw package content scan results) and DataStore keyed by pkid
// (extractor GeneratorResult), both backed by github.com/peterbourgon/diskv
// as a first-class persistence layer. diskv gives atomic per-key file
// writes; the sync.RWMutex per store supplies row-level lock discipline
// on top of that.
package store

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv"

	"asgen.dev/asgen/component"
	"asgen.dev/asgen/internal/asgenerr"
)

// keyTransform fans keys out into two-level directories the way diskv's own
// examples do, to keep any one directory from growing unbounded.
func keyTransform(s string) []string {
	clean := strings.ReplaceAll(s, "/", "_")
	if len(clean) < 4 {
		return []string{}
	}
	return []string{clean[0:2], clean[2:4]}
}

func newDiskv(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    keyTransform,
		CacheSizeMax: 64 * 1024 * 1024,
	})
}

// ContentsStore persists the raw file-path listing scanned per package, so
// that a restart never needs to re-open a package whose content listing
// has already been recorded.
type ContentsStore struct {
	mu sync.RWMutex
	dv *diskv.Diskv
}

// NewContentsStore opens (creating if absent) a contents cache rooted at
// basePath/cache/contents.
func NewContentsStore(basePath string) *ContentsStore {
	return &ContentsStore{dv: newDiskv(basePath + "/cache/contents")}
}

type contentsRow struct {
	Pkid     string   `json:"pkid"`
	Contents []string `json:"contents"`
}

// Get returns the cached content listing for pkid, if present.
func (s *ContentsStore) Get(pkid string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, err := s.dv.Read(pkid)
	if err != nil {
		return nil, false, nil //nolint:nilerr // diskv returns an error for missing keys; absence is not failure
	}
	var row contentsRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, false, asgenerr.WrapIndex("", "", "", err)
	}
	return row.Contents, true, nil
}

// Set records the content listing for pkid.
func (s *ContentsStore) Set(pkid string, contents []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(contentsRow{Pkid: pkid, Contents: contents})
	if err != nil {
		return err
	}
	if err := s.dv.Write(pkid, raw); err != nil {
		return asgenerr.WrapStoreWrite("contents write", err)
	}
	return nil
}

// Remove drops the contents row for pkid (used by ForgetPackage).
func (s *ContentsStore) Remove(pkid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dv.Has(pkid) {
		return nil
	}
	return s.dv.Erase(pkid)
}

// RemovePackages drops every contents row in pkids, used by RunCleanup to
// drop rows for packages no longer present in any non-immutable
// suite/section/arch.
func (s *ContentsStore) RemovePackages(pkids []string) error {
	for _, pkid := range pkids {
		if err := s.Remove(pkid); err != nil {
			return err
		}
	}
	return nil
}

// repoInfoRow mirrors pkgindex.RepoInfoStore's map[string]string payload,
// namespaced by suite/section/arch.
type repoInfoRow struct {
	Info map[string]string `json:"info"`
}

func repoInfoKey(suite, section, arch string) string {
	return "repoinfo_" + suite + "_" + section + "_" + arch
}

// GetRepoInfo implements pkgindex.RepoInfoStore.
func (s *ContentsStore) GetRepoInfo(suite, section, arch string) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, err := s.dv.Read(repoInfoKey(suite, section, arch))
	if err != nil {
		return nil, false
	}
	var row repoInfoRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, false
	}
	return row.Info, true
}

// SetRepoInfo implements pkgindex.RepoInfoStore.
func (s *ContentsStore) SetRepoInfo(suite, section, arch string, info map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(repoInfoRow{Info: info})
	if err != nil {
		return
	}
	_ = s.dv.Write(repoInfoKey(suite, section, arch), raw)
}

// Keys lists every pkid currently recorded, for garbage collection.
func (s *ContentsStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.dv.Keys(nil) {
		if strings.HasPrefix(k, "repoinfo_") {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// DataStore persists each package's GeneratorResult, the durable record
// the export phase reads back instead of re-invoking the extractor.
type DataStore struct {
	mu sync.RWMutex
	dv *diskv.Diskv
}

// NewDataStore opens a data cache rooted at basePath/cache/data.
func NewDataStore(basePath string) *DataStore {
	return &DataStore{dv: newDiskv(basePath + "/cache/data")}
}

// dataRow is the persisted unit behind one pkid: the generator result plus
// an ignore flag. A row with Ignored set carries no metadata or gcids,
// only possibly hints.
type dataRow struct {
	Ignored bool                       `json:"ignored"`
	Result  component.GeneratorResult  `json:"result"`
}

func (s *DataStore) writeRow(pkid string, row dataRow) error {
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	if err := s.dv.Write(pkid, raw); err != nil {
		return asgenerr.WrapStoreWrite("data write", err)
	}
	return nil
}

func (s *DataStore) readRow(pkid string) (dataRow, bool, error) {
	raw, err := s.dv.Read(pkid)
	if err != nil {
		return dataRow{}, false, nil //nolint:nilerr
	}
	var row dataRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return dataRow{}, false, asgenerr.WrapIndex("", "", "", err)
	}
	return row, true, nil
}

// AddGeneratorResult persists one package's extraction result, keyed by
// pkid. A prior entry for the same pkid is replaced (version is part of
// pkid, so this is a rewrite of the same version). Clears any previous
// ignore flag: a package re-extracted with real components is no longer
// ignored.
func (s *DataStore) AddGeneratorResult(pkid string, result component.GeneratorResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRow(pkid, dataRow{Ignored: false, Result: result})
}

// SetPackageIgnore records pkid as ignored with no metadata/gcids, the
// seed-phase "not interesting" outcome.
func (s *DataStore) SetPackageIgnore(pkid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRow(pkid, dataRow{Ignored: true})
}

// IsIgnored reports whether pkid was recorded as ignored.
func (s *DataStore) IsIgnored(pkid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok, _ := s.readRow(pkid)
	return ok && row.Ignored
}

// PackageExists reports whether any result (including ignore-only) was
// stored for pkid.
func (s *DataStore) PackageExists(pkid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok, _ := s.readRow(pkid)
	return ok
}

// GetGeneratorResult returns the persisted result for pkid, if present and
// not ignore-only.
func (s *DataStore) GetGeneratorResult(pkid string) (component.GeneratorResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok, err := s.readRow(pkid)
	if err != nil || !ok || row.Ignored {
		return component.GeneratorResult{}, false, err
	}
	return row.Result, true, nil
}

// RemovePackage drops a package's generator result (used by ForgetPackage).
func (s *DataStore) RemovePackage(pkid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dv.Has(pkid) {
		return nil
	}
	return s.dv.Erase(pkid)
}

// RemovePackages drops every generator result in pkids.
func (s *DataStore) RemovePackages(pkids []string) error {
	for _, pkid := range pkids {
		if err := s.RemovePackage(pkid); err != nil {
			return err
		}
	}
	return nil
}

// AllGCIDs returns every component gcid referenced by a live (non-ignored)
// row, used by CleanupCruft to decide which pool directories are orphaned.
func (s *DataStore) AllGCIDs() map[component.GCID]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[component.GCID]bool{}
	for k := range s.dv.Keys(nil) {
		row, ok, err := s.readRow(k)
		if err != nil || !ok {
			continue
		}
		for _, c := range row.Result.Components {
			out[c.GCID] = true
		}
	}
	return out
}

// Keys lists every pkid with a recorded generator result.
func (s *DataStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.dv.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

// HasGCID reports whether any stored result still references gcid. Cleanup
// does not call it; it collects the live set with AllGCIDs instead.
func (s *DataStore) HasGCID(gcid component.GCID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.dv.Keys(nil) {
		row, ok, err := s.readRow(k)
		if err != nil || !ok {
			continue
		}
		for _, c := range row.Result.Components {
			if c.GCID == gcid {
				return true
			}
		}
	}
	return false
}

// GetPkidsMatching returns pkids equal to or prefixed by pattern, used by
// ForgetPackage.
func (s *DataStore) GetPkidsMatching(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for k := range s.dv.Keys(nil) {
		if k == pattern || strings.HasPrefix(k, pattern) {
			out = append(out, k)
		}
	}
	return out
}
