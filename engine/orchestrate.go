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
	"path/filepath"

	"asgen.dev/asgen/extractor"
	"asgen.dev/asgen/internal/asgenerr"
	"asgen.dev/asgen/internal/config"
	"asgen.dev/asgen/pkgindex"
)

// ReportGenerator is the external collaborator the engine calls
// `reportgen`: the HTML report renderer, which this repository treats as
// a black box. The engine only needs these three hooks to drive it.
type ReportGenerator interface {
	ProcessFor(suite, section string, pkgs []pkgindex.Package)
	UpdateIndexPages()
	ExportStatistics()
}

// noopReportGenerator is used when the caller has no report renderer wired
// up.
type noopReportGenerator struct{}

func (noopReportGenerator) ProcessFor(string, string, []pkgindex.Package) {}
func (noopReportGenerator) UpdateIndexPages()                            {}
func (noopReportGenerator) ExportStatistics()                            {}

// ProcessSuiteSection seeds, processes, injects extra metainfo, and
// exports every architecture of one (suite, section), returning whether
// anything changed. publishOnly skips seed/process and only runs export.
func (e *Engine) ProcessSuiteSection(suiteCfg config.SuiteConfig, section string, reportgen ReportGenerator, forced, publishOnly bool) (bool, error) {
	if reportgen == nil {
		reportgen = noopReportGenerator{}
	}

	injMods, err := e.loadInjectedModifications(suiteCfg.Name)
	if err != nil {
		return false, asgenerr.WrapInjectedMods(suiteCfg.Name, err)
	}

	var sectionPkgs []pkgindex.Package
	changed := false

	for _, arch := range suiteCfg.Architectures {
		var pkgs []pkgindex.Package
		if publishOnly {
			fetched, ferr := e.Index.PackagesFor(suiteCfg.Name, section, arch, true)
			if ferr != nil {
				continue // index corruption/I/O: treat as empty
			}
			pkgs = fetched
		} else {
			interesting, serr := e.SeedContentsData(suiteCfg.Name, section, arch, nil, forced)
			if serr != nil {
				e.logf(suiteCfg.Name, section, arch, "seed", serr)
				continue
			}
			if !interesting && !forced {
				continue
			}

			fetched, ferr := e.Index.PackagesFor(suiteCfg.Name, section, arch, true)
			if ferr != nil {
				continue
			}
			pkgs = fetched

			candidates := e.getIconCandidatePackages(suiteCfg, section, arch)
			iconh := NewIconHandler(e.Pool, candidates, suiteCfg.IconTheme, e.Config.IconPolicy)

			if perr := e.ProcessPackages(pkgs, iconh, injMods); perr != nil {
				e.logf(suiteCfg.Name, section, arch, "process", perr)
				continue
			}

			fake, ierr := e.ProcessExtraMetainfoData(suiteCfg, iconh, section, arch, injMods)
			if ierr != nil {
				e.logf(suiteCfg.Name, section, arch, "inject", ierr)
			} else if fake != nil {
				pkgs = append(pkgs, fake)
			}
		}

		if _, eerr := e.ExportMetadata(suiteCfg, section, arch, pkgs, injMods); eerr != nil {
			e.logf(suiteCfg.Name, section, arch, "export", eerr)
			continue
		}

		sectionPkgs = append(sectionPkgs, pkgs...)
		changed = true
	}

	if changed {
		if err := e.ExportIconTarballs(suiteCfg, section, sectionPkgs); err != nil {
			e.logf(suiteCfg.Name, section, "", "export-icons", err)
		}
		reportgen.ProcessFor(suiteCfg.Name, section, sectionPkgs)
	}
	e.Index.Release()
	return changed, nil
}

// getIconCandidatePackages unions the target triple, its baseSuite
// counterpart, and the configured auxiliary sections (across base and
// target suite), each only when present in the suite's configured
// sections. Last write wins on pkid collision.
func (e *Engine) getIconCandidatePackages(suiteCfg config.SuiteConfig, section, arch string) map[string]pkgindex.Package {
	out := map[string]pkgindex.Package{}

	addTriple := func(suite, section, arch string) {
		pkgs, err := e.Index.PackagesFor(suite, section, arch, false)
		if err != nil {
			return
		}
		for _, pkg := range pkgs {
			out[string(pkgindex.PkidOf(pkg))] = pkg
		}
	}

	addTriple(suiteCfg.Name, section, arch)
	if suiteCfg.BaseSuite != "" {
		addTriple(suiteCfg.BaseSuite, section, arch)
	}
	for _, aux := range e.Config.AuxiliarySections {
		if !suiteCfg.HasSection(aux) {
			continue
		}
		addTriple(suiteCfg.Name, aux, arch)
		if suiteCfg.BaseSuite != "" {
			addTriple(suiteCfg.BaseSuite, aux, arch)
		}
	}
	return out
}

// Run processes every section of suiteCfg, then updates report index
// pages and, if anything changed, exports statistics.
func (e *Engine) Run(suiteCfg config.SuiteConfig, reportgen ReportGenerator, forced bool) error {
	anyChanged := false
	for _, section := range suiteCfg.Sections {
		changed, err := e.ProcessSuiteSection(suiteCfg, section, reportgen, forced, false)
		if err != nil {
			return err
		}
		anyChanged = anyChanged || changed
	}
	if reportgen == nil {
		reportgen = noopReportGenerator{}
	}
	reportgen.UpdateIndexPages()
	if anyChanged {
		reportgen.ExportStatistics()
	}
	return nil
}

// RunSection processes a single section of suiteCfg.
func (e *Engine) RunSection(suiteCfg config.SuiteConfig, section string, reportgen ReportGenerator, forced bool) (bool, error) {
	return e.ProcessSuiteSection(suiteCfg, section, reportgen, forced, false)
}

// Publish rebuilds published artifacts from the cache without seeding or
// processing.
func (e *Engine) Publish(suiteCfg config.SuiteConfig, reportgen ReportGenerator) error {
	for _, section := range suiteCfg.Sections {
		if _, err := e.ProcessSuiteSection(suiteCfg, section, reportgen, false, true); err != nil {
			return err
		}
	}
	return nil
}

// ProcessFile bypasses the index by resolving each file to a Package
// directly, groups the results by architecture, and seeds+processes each
// singleton group. Fails if any file cannot be resolved.
func (e *Engine) ProcessFile(suiteCfg config.SuiteConfig, section string, files []string) error {
	byArch := map[string][]pkgindex.Package{}
	for _, file := range files {
		pkg, err := e.Index.PackageForFile(file, suiteCfg.Name, section)
		if err != nil {
			return fmt.Errorf("%w: %s", asgenerr.ErrFileNotResolved, file)
		}
		byArch[pkg.Arch()] = append(byArch[pkg.Arch()], pkg)
	}

	injMods, err := e.loadInjectedModifications(suiteCfg.Name)
	if err != nil {
		return asgenerr.WrapInjectedMods(suiteCfg.Name, err)
	}

	for arch, pkgs := range byArch {
		if _, err := e.SeedContentsData(suiteCfg.Name, section, arch, pkgs, true); err != nil {
			return err
		}
		candidates := e.getIconCandidatePackages(suiteCfg, section, arch)
		iconh := NewIconHandler(e.Pool, candidates, suiteCfg.IconTheme, e.Config.IconPolicy)
		if err := e.ProcessPackages(pkgs, iconh, injMods); err != nil {
			return err
		}
	}
	return nil
}

// loadInjectedModifications loads suite's overrides file from
// <workspace>/overrides/<suite>.yaml. A suite with no such file has no
// removal requests.
func (e *Engine) loadInjectedModifications(suite string) (extractor.InjectedModifications, error) {
	path := filepath.Join(e.Config.WorkspaceDir, "overrides", suite+".yaml")
	return extractor.LoadInjectedModifications(path)
}
