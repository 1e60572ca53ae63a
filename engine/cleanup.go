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
	"os"
	"path/filepath"
	"strings"
	"sync"

	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex"
)

// RunCleanup drops the per-run tmp dir, then removes every store row for
// a pkid no longer present in any non-immutable suite/section/arch, then
// garbage-collects orphaned pool directories and redundant statistics
// entries.
func (e *Engine) RunCleanup() error {
	if err := os.RemoveAll(filepath.Join(e.Config.WorkspaceDir, "tmp")); err != nil {
		return err
	}

	pkidsContents := newStringSet(e.Contents.Keys())
	pkidsData := newStringSet(e.Data.Keys())

	for _, suiteCfg := range e.Config.Suites {
		if suiteCfg.Immutable {
			continue
		}
		for _, section := range suiteCfg.Sections {
			for _, arch := range suiteCfg.Architectures {
				e.subtractLivePkids(pkidsContents, pkidsData, suiteCfg.Name, section, arch)
				if suiteCfg.BaseSuite != "" {
					e.subtractLivePkids(pkidsContents, pkidsData, suiteCfg.BaseSuite, section, arch)
				}
				e.Index.Release()
			}
		}
	}

	var wg sync.WaitGroup
	var contentsErr, dataErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		contentsErr = e.Contents.RemovePackages(pkidsContents.items())
	}()
	go func() {
		defer wg.Done()
		dataErr = e.Data.RemovePackages(pkidsData.items())
	}()
	wg.Wait()
	if contentsErr != nil {
		return contentsErr
	}
	if dataErr != nil {
		return dataErr
	}

	if err := e.Pool.CleanupCruft(e.Data.AllGCIDs()); err != nil {
		return err
	}

	e.Stats.CleanupStatistics()
	return nil
}

func (e *Engine) subtractLivePkids(contents, data *stringSet, suite, section, arch string) {
	pkgs, err := e.Index.PackagesFor(suite, section, arch, false)
	if err != nil {
		return
	}
	for _, pkg := range pkgs {
		pkid := string(pkgindex.PkidOf(pkg))
		contents.remove(pkid)
		data.remove(pkid)
	}
}

// RemoveHintsComponents drops non-ignored data rows for packages present
// in the current index, for every (section, arch) of suiteCfg, then cleans
// up cruft. Parallel over architectures.
func (e *Engine) RemoveHintsComponents(suiteCfg config.SuiteConfig) error {
	for _, section := range suiteCfg.Sections {
		proc := NewPackageBatchProcessor[string]()
		_ = proc.Run("cleanup", suiteCfg.Architectures, func(arch string) error {
			pkgs, err := e.Index.PackagesFor(suiteCfg.Name, section, arch, false)
			if err != nil {
				return nil
			}
			for _, pkg := range pkgs {
				pkid := string(pkgindex.PkidOf(pkg))
				if e.Data.IsIgnored(pkid) {
					continue
				}
				if err := e.Data.RemovePackage(pkid); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return e.Pool.CleanupCruft(e.Data.AllGCIDs())
}

// ForgetPackage removes a pkid (exactly two slashes) from both stores
// directly; anything else is treated as a prefix query via
// GetPkidsMatching.
func (e *Engine) ForgetPackage(identifier string) error {
	var pkids []string
	if strings.Count(identifier, "/") == 2 {
		pkids = []string{identifier}
	} else {
		pkids = e.Data.GetPkidsMatching(identifier)
	}
	if err := e.Contents.RemovePackages(pkids); err != nil {
		return err
	}
	return e.Data.RemovePackages(pkids)
}

// stringSet is a plain, non-concurrent set used only within the single
// sequential RunCleanup pass (its two Remove* calls afterward run in
// parallel against the stores, not against this set).
type stringSet struct {
	m map[string]bool
}

func newStringSet(items []string) *stringSet {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return &stringSet{m: m}
}

func (s *stringSet) remove(item string) { delete(s.m, item) }

func (s *stringSet) items() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	return out
}
